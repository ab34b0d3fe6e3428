// Package decode turns page files into bitmaps with a fixed pixel layout.
package decode

import (
	"fmt"
	"image"
	"image/draw"
	"os"

	// Registered formats; the format of each file is sniffed from its header.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Decoder decodes the page stored at path.
type Decoder interface {
	Decode(path string) (*image.NRGBA, error)
}

// Func adapts a function to Decoder.
type Func func(path string) (*image.NRGBA, error)

func (f Func) Decode(path string) (*image.NRGBA, error) { return f(path) }

// File is the Decoder used for pages on disk.
var File Decoder = Func(DecodeFile)

// DecodeFile decodes path and normalises it to non-premultiplied 8-bit RGBA
// with bounds at the origin.
func DecodeFile(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n, nil
	}
	return Normalize(img), nil
}

// Normalize copies img into a new NRGBA bitmap.
func Normalize(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
