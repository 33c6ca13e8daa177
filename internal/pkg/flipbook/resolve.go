package flipbook

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/dailypress/newsroom/internal/pkg/apperr"
	"github.com/dailypress/newsroom/internal/pkg/env"
)

// ResolvePublicURL turns a local PDF path into a URL Heyzine can fetch.
// Files under the served output directory get a PUBLIC_BASE_URL link with a
// cache buster; anything else goes through the temporary-file host fallback.
func (c *Client) ResolvePublicURL(ctx context.Context, fullPath, outputDir string) (string, error) {
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return "", fmt.Errorf("resolve pdf path: %w", err)
	}
	absDir, err := filepath.Abs(outputDir)
	if err != nil {
		return "", fmt.Errorf("resolve output dir: %w", err)
	}

	if filepath.Dir(absPath) == absDir {
		baseURL := strings.TrimRight(env.GetEnv("PUBLIC_BASE_URL", ""), "/")
		if baseURL == "" {
			return "", apperr.Upstream("heyzine",
				"PUBLIC_BASE_URL is not configured; the converter cannot reach local files", nil)
		}
		// Cache buster keeps Heyzine from reusing a previously converted file
		// served under the same name.
		return fmt.Sprintf("%s/generated-pdfs/%s?cb=%d",
			baseURL, filepath.Base(absPath), time.Now().Unix()), nil
	}

	log.Infof("[Flipbook] %s is outside the public directory, using temporary hosting", absPath)
	data, err := os.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("read pdf for upload: %w", err)
	}
	link, err := c.Uploader.Upload(ctx, filepath.Base(absPath), data)
	if err != nil {
		return "", fmt.Errorf("fallback upload failed: %w", err)
	}
	return link, nil
}
