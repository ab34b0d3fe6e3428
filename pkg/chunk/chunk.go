// Package chunk splits decoded pages into horizontal slabs no taller than the
// display's texture limit.
package chunk

import (
	"image"
)

// DefaultMaxHeight is the tallest texture most display backends accept.
const DefaultMaxHeight = 16384

// Split returns img unchanged as the only chunk when it fits maxHeight, and
// otherwise ceil(H/maxHeight) chunks of full width, stacked top to bottom.
// Every chunk except the last is exactly maxHeight rows tall. Pixels are
// copied row for row, so each chunk owns a tightly packed buffer whose
// bounds start at the origin.
func Split(img *image.NRGBA, maxHeight int) []*image.NRGBA {
	if maxHeight <= 0 {
		maxHeight = DefaultMaxHeight
	}
	b := img.Bounds()
	h := b.Dy()
	if h <= maxHeight {
		return []*image.NRGBA{img}
	}

	heights := Heights(h, maxHeight)
	chunks := make([]*image.NRGBA, 0, len(heights))
	rowBytes := b.Dx() * 4
	top := 0
	for _, rows := range heights {
		dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), rows))
		for y := 0; y < rows; y++ {
			src := img.PixOffset(b.Min.X, b.Min.Y+top+y)
			copy(dst.Pix[y*dst.Stride:y*dst.Stride+rowBytes], img.Pix[src:src+rowBytes])
		}
		chunks = append(chunks, dst)
		top += rows
	}
	return chunks
}

// Heights returns the row count of each chunk Split would produce for a page
// of height h.
func Heights(h, maxHeight int) []int {
	if maxHeight <= 0 {
		maxHeight = DefaultMaxHeight
	}
	if h <= maxHeight {
		return []int{h}
	}
	out := make([]int, 0, (h+maxHeight-1)/maxHeight)
	for top := 0; top < h; top += maxHeight {
		out = append(out, min(maxHeight, h-top))
	}
	return out
}
