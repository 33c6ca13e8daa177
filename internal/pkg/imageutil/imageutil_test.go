package imageutil

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.Set(x, 0, color.RGBA{R: uint8(x % 256), A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestNormalizeReencodesAsJPEG(t *testing.T) {
	out, err := Normalize(pngBytes(t, 40, 30))
	require.NoError(t, err)

	decoded, err := imaging.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 40, decoded.Bounds().Dx())
	assert.Equal(t, 30, decoded.Bounds().Dy())
	// JPEG SOI marker
	assert.Equal(t, []byte{0xff, 0xd8}, out[:2])
}

func TestNormalizeDownscalesWideImages(t *testing.T) {
	out, err := Normalize(pngBytes(t, 2000, 10))
	require.NoError(t, err)

	decoded, err := imaging.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 1600, decoded.Bounds().Dx())
	assert.Equal(t, 8, decoded.Bounds().Dy(), "aspect ratio must be kept")
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	_, err := Normalize([]byte("not an image"))
	assert.Error(t, err)
}

func TestDecodeDataURI(t *testing.T) {
	raw := []byte{1, 2, 3, 4}
	encoded := base64.StdEncoding.EncodeToString(raw)

	withPrefix, err := DecodeDataURI("data:image/png;base64," + encoded)
	require.NoError(t, err)
	assert.Equal(t, raw, withPrefix)

	bare, err := DecodeDataURI(encoded)
	require.NoError(t, err)
	assert.Equal(t, raw, bare)

	_, err = DecodeDataURI("data:image/png;base64,???")
	assert.Error(t, err)
}

func TestToDataURI(t *testing.T) {
	assert.Empty(t, ToDataURI(nil))
	assert.Empty(t, ToDataURI([]byte{}))

	uri := ToDataURI([]byte{0xff, 0xd8})
	assert.True(t, strings.HasPrefix(uri, "data:image/jpeg;base64,"))

	decoded, err := DecodeDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xd8}, decoded)
}
