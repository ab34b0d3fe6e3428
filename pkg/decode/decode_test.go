package decode

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
}

func TestDecodeFileNormalizes(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4, 3))
	src.SetGray(1, 2, color.Gray{Y: 200})

	path := filepath.Join(t.TempDir(), "00010-000")
	writePNG(t, path, src)

	img, err := File.Decode(path)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 4, 3) {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	if got := img.NRGBAAt(1, 2); got != (color.NRGBA{R: 200, G: 200, B: 200, A: 255}) {
		t.Fatalf("unexpected pixel %v", got)
	}
}

func TestDecodeFileGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "00010-000")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := DecodeFile(path); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestDecodeFileMissing(t *testing.T) {
	if _, err := DecodeFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestNormalizeMovesOrigin(t *testing.T) {
	src := image.NewNRGBA(image.Rect(10, 20, 12, 23))
	src.SetNRGBA(11, 22, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	dst := Normalize(src)
	if dst.Bounds() != image.Rect(0, 0, 2, 3) {
		t.Fatalf("unexpected bounds %v", dst.Bounds())
	}
	if got := dst.NRGBAAt(1, 2); got != (color.NRGBA{R: 1, G: 2, B: 3, A: 255}) {
		t.Fatalf("unexpected pixel %v", got)
	}
}
