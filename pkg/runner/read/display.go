package read

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"tableflip.dev/viewer/pkg/cache"
)

// texture is a page chunk uploaded to the GPU.
type texture struct {
	img    *ebiten.Image
	filter ebiten.Filter
}

func (t *texture) Size() image.Point { return t.img.Bounds().Size() }

// Release frees the GPU memory now instead of waiting for the finalizer.
func (t *texture) Release() { t.img.Deallocate() }

// display uploads chunks with ebiten. It must only be used from the game
// loop.
type display struct{}

func (display) Upload(_ string, img *image.NRGBA, filter cache.Filter) (cache.Resource, error) {
	f := ebiten.FilterNearest
	if filter == cache.FilterLinear {
		f = ebiten.FilterLinear
	}
	return &texture{img: ebiten.NewImageFromImage(img), filter: f}, nil
}
