package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailypress/newsroom/internal/pkg/flipbook"
)

func newFlipbookApp(apiURL, outputDir string) *fiber.App {
	client := &flipbook.Client{
		APIURL:     apiURL,
		ClientID:   "client-1",
		APIKey:     "secret",
		HTTPClient: http.DefaultClient,
	}
	fc := NewFlipbookController(client, outputDir)
	app := fiber.New()
	app.Post("/api/flipbook", fc.HandleConvert)
	return app
}

func TestHandleConvert(t *testing.T) {
	t.Setenv("PUBLIC_BASE_URL", "https://press.example.com")

	t.Run("converts a generated magazine", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "DailyNews_2026-08-31.pdf"), validPDFBytes(), 0o644))

		var gotPDFURL string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			gotPDFURL = req["pdf"].(string)
			w.Write([]byte(`{"success":true,"url":"https://heyzine.com/flip-book/abc","thumbnail":"https://heyzine.com/t/abc.jpg"}`))
		}))
		defer srv.Close()

		app := newFlipbookApp(srv.URL, dir)
		resp, body := doJSON(t, app, http.MethodPost, "/api/flipbook", map[string]interface{}{
			"pdfPath": "DailyNews_2026-08-31.pdf",
		})

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "https://heyzine.com/flip-book/abc", body["flipbookUrl"])
		assert.Equal(t, "https://heyzine.com/t/abc.jpg", body["thumbnail"])
		assert.Contains(t, gotPDFURL, "https://press.example.com/generated-pdfs/DailyNews_2026-08-31.pdf?cb=")
	})

	t.Run("missing path", func(t *testing.T) {
		app := newFlipbookApp("http://unused", t.TempDir())
		resp, _ := doJSON(t, app, http.MethodPost, "/api/flipbook", map[string]interface{}{})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown file", func(t *testing.T) {
		app := newFlipbookApp("http://unused", t.TempDir())
		resp, _ := doJSON(t, app, http.MethodPost, "/api/flipbook", map[string]interface{}{
			"pdfPath": "nope.pdf",
		})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("corrupt pdf is stopped before conversion", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.pdf"), []byte("%PDF-"), 0o644))

		called := false
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer srv.Close()

		app := newFlipbookApp(srv.URL, dir)
		resp, _ := doJSON(t, app, http.MethodPost, "/api/flipbook", map[string]interface{}{
			"pdfPath": "broken.pdf",
		})

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.False(t, called, "the converter must never see a corrupt file")
	})

	t.Run("upstream rejection surfaces the payload", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "mag.pdf"), validPDFBytes(), 0o644))

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success":false,"code":"-210","msg":"unreachable"}`))
		}))
		defer srv.Close()

		app := newFlipbookApp(srv.URL, dir)
		resp, body := doJSON(t, app, http.MethodPost, "/api/flipbook", map[string]interface{}{
			"pdfPath": "mag.pdf",
		})

		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		assert.Contains(t, body["message"], "invalid PDF file")
		assert.Contains(t, body["details"], "-210")
	})
}
