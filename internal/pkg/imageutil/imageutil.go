// Package imageutil normalizes uploaded news images before they hit the
// store. Oversized uploads are downscaled and everything is re-encoded as
// JPEG so the feed can serve one predictable format.
package imageutil

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
)

// maxWidth is the widest an uploaded image is stored at. Magazine pages are
// A4, anything wider only bloats the blob column.
const maxWidth = 1600

const jpegQuality = 85

// Normalize decodes an uploaded image, downscales it to at most maxWidth
// (keeping aspect ratio) and re-encodes it as JPEG.
func Normalize(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	if img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeDataURI strips a data:image/...;base64, prefix and decodes the rest.
// Plain base64 without the prefix is accepted too.
func DecodeDataURI(s string) ([]byte, error) {
	if idx := strings.Index(s, "base64,"); idx >= 0 {
		s = s[idx+len("base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode base64 image: %w", err)
	}
	return data, nil
}

// ToDataURI wraps stored image bytes in the data URI the feed responses use.
// Nil input yields the empty string, never a textual "null".
func ToDataURI(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(data)
}
