package utils

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func pngFixture(t *testing.T, w, h int) memFile {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return memFile{bytes.NewReader(buf.Bytes())}
}

func TestProcessImage(t *testing.T) {
	data, contentType, err := ProcessImage(pngFixture(t, 4, 4), "photo.png")
	require.NoError(t, err)
	assert.Equal(t, "image/webp", contentType)

	// The output must be exactly one encoding, nothing prepended.
	require.Greater(t, len(data), 12)
	assert.Equal(t, "RIFF", string(data[:4]))
	assert.Equal(t, "WEBP", string(data[8:12]))
}

func TestProcessImageRejectsGarbage(t *testing.T) {
	_, _, err := ProcessImage(memFile{bytes.NewReader([]byte("not an image"))}, "photo.png")
	assert.Error(t, err)
}
