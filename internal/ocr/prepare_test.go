package ocr_test

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monreader/api/internal/ocr"
)

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestPrepareDownscalesOversizedImage(t *testing.T) {
	t.Parallel()

	data := encodeJPEG(t, 4000, 3000)

	out, mime := ocr.Prepare(data, "image/jpeg", 2048)
	assert.Equal(t, "image/jpeg", mime)

	img, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)

	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	assert.Equal(t, 2048, w)
	// 3000 * 2048 / 4000 = 1536, aspect ratio preserved within rounding.
	assert.Equal(t, 1536, h)
}

func TestPreparePortraitOrientation(t *testing.T) {
	t.Parallel()

	data := encodeJPEG(t, 1000, 5000)

	out, _ := ocr.Prepare(data, "image/jpeg", 2048)

	img, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 2048, img.Bounds().Dy())
	assert.Equal(t, 409, img.Bounds().Dx()) // 1000 * 2048 / 5000
}

func TestPrepareSmallImagePassthrough(t *testing.T) {
	t.Parallel()

	data := encodeJPEG(t, 800, 600)

	out, mime := ocr.Prepare(data, "image/jpeg", 2048)
	assert.Equal(t, "image/jpeg", mime)
	assert.Equal(t, data, out, "images within bounds must not be re-encoded")
}

func TestPrepareKeepsPNGFormat(t *testing.T) {
	t.Parallel()

	img := image.NewRGBA(image.Rect(0, 0, 3000, 1500))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	out, mime := ocr.Prepare(buf.Bytes(), "image/png", 2048)
	assert.Equal(t, "image/png", mime)

	resized, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 2048, resized.Bounds().Dx())
	assert.Equal(t, 1024, resized.Bounds().Dy())
}

func TestPrepareUndecodableInputPassthrough(t *testing.T) {
	t.Parallel()

	data := []byte("not an image at all")
	out, mime := ocr.Prepare(data, "image/jpeg", 2048)
	assert.Equal(t, data, out)
	assert.Equal(t, "image/jpeg", mime)
}
