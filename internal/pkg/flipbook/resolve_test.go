package flipbook

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUploader struct {
	link     string
	err      error
	filename string
	data     []byte
}

func (u *stubUploader) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	u.filename = filename
	u.data = data
	return u.link, u.err
}

func TestResolvePublicURLServedFile(t *testing.T) {
	t.Setenv("PUBLIC_BASE_URL", "https://press.example.com/")

	dir := t.TempDir()
	path := filepath.Join(dir, "DailyNews_2026-08-31.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-"), 0o644))

	c := &Client{HTTPClient: http.DefaultClient, Uploader: &stubUploader{}}
	url, err := c.ResolvePublicURL(context.Background(), path, dir)
	require.NoError(t, err)

	assert.Regexp(t, `^https://press\.example\.com/generated-pdfs/DailyNews_2026-08-31\.pdf\?cb=\d+$`, url)
}

func TestResolvePublicURLMissingBaseURL(t *testing.T) {
	t.Setenv("PUBLIC_BASE_URL", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "mag.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-"), 0o644))

	c := &Client{HTTPClient: http.DefaultClient}
	_, err := c.ResolvePublicURL(context.Background(), path, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PUBLIC_BASE_URL")
}

func TestResolvePublicURLFallbackUpload(t *testing.T) {
	outputDir := t.TempDir()
	elsewhere := t.TempDir()
	path := filepath.Join(elsewhere, "mag.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-payload"), 0o644))

	uploader := &stubUploader{link: "https://file.io/xyz"}
	c := &Client{HTTPClient: http.DefaultClient, Uploader: uploader}

	url, err := c.ResolvePublicURL(context.Background(), path, outputDir)
	require.NoError(t, err)

	assert.Equal(t, "https://file.io/xyz", url)
	assert.Equal(t, "mag.pdf", uploader.filename)
	assert.Equal(t, []byte("%PDF-payload"), uploader.data)
}
