package flipbook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/dailypress/newsroom/internal/pkg/apperr"
	"github.com/dailypress/newsroom/internal/pkg/env"
)

const defaultFileIOURL = "https://file.io"

// FileIOUploader pushes a PDF to file.io and returns the one-shot download
// link. Links expire after the first fetch, which is fine here: Heyzine pulls
// the file exactly once during conversion.
type FileIOUploader struct {
	URL        string
	HTTPClient *http.Client
}

// NewFileIOUploader builds the uploader with its request timeout.
func NewFileIOUploader() *FileIOUploader {
	return &FileIOUploader{
		URL: env.GetEnv("FILEIO_URL", defaultFileIOURL),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type fileIOResponse struct {
	Success bool   `json:"success"`
	Link    string `json:"link"`
	Message string `json:"message"`
}

// Upload sends the file as multipart form data and returns the public link.
func (u *FileIOUploader) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("write upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.URL, &buf)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.HTTPClient.Do(req)
	if err != nil {
		return "", apperr.Upstream("file.io", "upload failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", apperr.Upstream("file.io", "read response", err)
	}

	var parsed fileIOResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &apperr.UpstreamError{
			Service: "file.io",
			Message: fmt.Sprintf("unexpected response (status %d)", resp.StatusCode),
			Detail:  string(body),
			Err:     err,
		}
	}
	if !parsed.Success || parsed.Link == "" {
		return "", &apperr.UpstreamError{
			Service: "file.io",
			Message: "temporary hosting rejected the upload",
			Detail:  string(body),
		}
	}
	return parsed.Link, nil
}
