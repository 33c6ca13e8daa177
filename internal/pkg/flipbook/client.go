// Package flipbook converts a finished magazine PDF into a page-turn web
// viewer via the Heyzine REST API. Heyzine pulls the PDF itself, so the file
// has to be reachable over the public internet; when it is not under the
// public output directory the adapter first pushes it to a temporary file
// host and hands Heyzine that link.
package flipbook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dailypress/newsroom/internal/pkg/apperr"
	"github.com/dailypress/newsroom/internal/pkg/env"
)

const defaultAPIURL = "https://heyzine.com/api1/rest"

// Client talks to the Heyzine conversion API.
type Client struct {
	APIURL   string
	ClientID string
	APIKey   string

	HTTPClient *http.Client
	Uploader   TempUploader
}

// TempUploader pushes a local file to a publicly reachable URL. Used as the
// fallback when the PDF is not already web-served.
type TempUploader interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

// NewClientFromEnv builds a client from HEYZINE_* env keys.
func NewClientFromEnv() *Client {
	return &Client{
		APIURL:   strings.TrimRight(env.GetEnv("HEYZINE_API_URL", defaultAPIURL), "/"),
		ClientID: strings.TrimSpace(env.GetEnv("HEYZINE_CLIENT_ID", "")),
		APIKey:   strings.TrimSpace(env.GetEnv("HEYZINE_API_KEY", "")),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		Uploader: NewFileIOUploader(),
	}
}

type conversionRequest struct {
	PDF      string `json:"pdf"`
	ClientID string `json:"client_id"`
	Title    string `json:"title"`
	PrevNext bool   `json:"prev_next"`
	ShowInfo bool   `json:"show_info"`
	Format   string `json:"format"`
	Quality  string `json:"quality"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

type conversionResponse struct {
	Success   *bool  `json:"success"`
	Code      string `json:"code"`
	Msg       string `json:"msg"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail"`
	PDF       string `json:"pdf"`
}

// Flipbook is the result of a successful conversion.
type Flipbook struct {
	URL       string `json:"flipbookUrl"`
	Thumbnail string `json:"thumbnail"`
	SourcePDF string `json:"pdf"`
}

// Convert submits the public PDF URL to Heyzine and returns the viewer URL.
// Any non-success body, a body without the viewer URL, or a transport error
// surfaces as an UpstreamError with the raw payload attached.
func (c *Client) Convert(ctx context.Context, pdfURL, title string) (*Flipbook, error) {
	if c.ClientID == "" || c.APIKey == "" {
		return nil, apperr.Upstream("heyzine", "HEYZINE_CLIENT_ID / HEYZINE_API_KEY are not configured", nil)
	}

	reqBody := conversionRequest{
		PDF:      pdfURL,
		ClientID: c.ClientID,
		Title:    title,
		PrevNext: true,
		ShowInfo: true,
		Format:   "html5",
		Quality:  "high",
		Width:    1000,
		Height:   700,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal heyzine request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build heyzine request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-cache, no-store, must-revalidate")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, apperr.Upstream("heyzine", "request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, apperr.Upstream("heyzine", "read response", err)
	}

	var parsed conversionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &apperr.UpstreamError{
			Service: "heyzine",
			Message: fmt.Sprintf("unexpected response (status %d)", resp.StatusCode),
			Detail:  string(body),
			Err:     err,
		}
	}

	if parsed.Success != nil && !*parsed.Success {
		msg := fmt.Sprintf("conversion rejected (%s): %s", parsed.Code, parsed.Msg)
		if parsed.Code == "-210" {
			msg = fmt.Sprintf("invalid PDF file: %s. The PDF might be corrupted, password-protected, or not reachable through the provided URL", parsed.Msg)
		}
		return nil, &apperr.UpstreamError{Service: "heyzine", Message: msg, Detail: string(body)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &apperr.UpstreamError{
			Service: "heyzine",
			Message: fmt.Sprintf("status %d", resp.StatusCode),
			Detail:  string(body),
		}
	}
	if parsed.URL == "" {
		return nil, &apperr.UpstreamError{
			Service: "heyzine",
			Message: "flipbook URL missing in response",
			Detail:  string(body),
		}
	}

	return &Flipbook{
		URL:       parsed.URL,
		Thumbnail: parsed.Thumbnail,
		SourcePDF: parsed.PDF,
	}, nil
}
