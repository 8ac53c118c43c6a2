package ocr

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	_ "image/gif"

	_ "golang.org/x/image/webp"
)

const jpegQuality = 90

// Prepare downscales an image whose longer side exceeds maxDim so that it
// fits within maxDim, preserving aspect ratio. It exists purely to keep
// provider payloads within size and latency bounds; it never crops.
//
// The image is re-encoded in its source format where that format is
// writable (JPEG, PNG, BMP, TIFF), otherwise as JPEG. Undecodable input
// and images already within bounds are passed through untouched, along
// with the declared MIME type.
func Prepare(data []byte, mimeType string, maxDim int) ([]byte, string) {
	if maxDim <= 0 {
		return data, mimeType
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data, mimeType
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDim && h <= maxDim {
		return data, mimeType
	}

	var tw, th int
	if w >= h {
		tw = maxDim
		th = h * maxDim / w
	} else {
		th = maxDim
		tw = w * maxDim / h
	}
	if tw < 1 {
		tw = 1
	}
	if th < 1 {
		th = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	var outMime string
	switch format {
	case "png":
		err = png.Encode(&buf, dst)
		outMime = "image/png"
	case "bmp":
		err = bmp.Encode(&buf, dst)
		outMime = "image/bmp"
	case "tiff":
		err = tiff.Encode(&buf, dst, nil)
		outMime = "image/tiff"
	default:
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality})
		outMime = "image/jpeg"
	}
	if err != nil {
		return data, mimeType
	}

	return buf.Bytes(), outMime
}
