package converter

import (
	"bytes"
	"image"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
)

// Codec decodes bitmaps and encodes PNGs. The engine never looks inside
// either binary format itself.
type Codec interface {
	Decode(data []byte) (image.Image, error)
	Normalize(img image.Image) *image.NRGBA
	EncodePNG(w io.Writer, img image.Image) error
}

// ImageCodec decodes with golang.org/x/image/bmp and encodes with image/png.
type ImageCodec struct {
	Compression png.CompressionLevel
}

func (ImageCodec) Decode(data []byte) (image.Image, error) {
	return bmp.Decode(bytes.NewReader(data))
}

// Normalize returns a fresh non-premultiplied RGBA copy anchored at (0,0).
// NRGBA keeps (255,255,255,0) representable, which premultiplied RGBA cannot.
func (ImageCodec) Normalize(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

func (c ImageCodec) EncodePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: c.Compression}
	return enc.Encode(w, img)
}
