// Package read opens the page viewer window for a series.
package read

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"

	"tableflip.dev/viewer/pkg/cache"
	"tableflip.dev/viewer/pkg/cursor"
	"tableflip.dev/viewer/pkg/decode"
	"tableflip.dev/viewer/pkg/store"
)

// Read shows the pages of Series starting at its stored marker.
type Read struct {
	Config store.Config
	Series *store.Series
	Logger *slog.Logger
}

// Do blocks until the window is closed or a fatal error occurs.
func (r *Read) Do(ctx context.Context) error {
	log := r.Logger
	if log == nil {
		log = slog.Default()
	}

	idx, err := r.Series.Index()
	if err != nil {
		return err
	}
	filter, err := cache.ParseFilter(r.Config.Filter())
	if err != nil {
		return err
	}

	pages := cache.New(cache.FromIndex(idx, r.Series.Dir), decode.File, display{}, cache.Options{
		Radius:         r.Config.Radius(),
		MaxChunkHeight: r.Config.MaxChunkHeight(),
		Filter:         filter,
		Logger:         log,
	})
	g := &game{
		ctx:   ctx,
		pages: pages,
		cursor: cursor.New(idx, r.Series, cursor.Options{
			ScrollStep: r.Config.ScrollStep(),
			PanStep:    r.Config.PanStep(),
			ZoomStep:   r.Config.ZoomStep(),
		}),
		input: keyboard{},
		log:   log,
	}

	w, h := r.Config.WindowSize()
	ebiten.SetWindowTitle(fmt.Sprintf("viewer - %s", r.Series.Name))
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	log.Debug("opening series", "series", r.Series.Name, "pages", idx.Len(), "start", idx.Key(idx.Start()))

	err = ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		err = nil
	}
	// Prefetch failures of pages never shown are reported, not fatal.
	if cerr := pages.Close(); cerr != nil {
		log.Warn("prefetch failed", "err", cerr)
	}
	return err
}

type game struct {
	ctx    context.Context
	pages  *cache.Cache
	cursor *cursor.Cursor
	input  cursor.Input
	log    *slog.Logger
}

func (g *game) Update() error {
	if err := g.ctx.Err(); err != nil {
		return ebiten.Termination
	}
	if err := g.pages.Update(g.cursor.Index()); err != nil {
		return err
	}

	before := g.cursor.Index()
	e, _ := g.pages.Entry(before)
	quit, err := g.cursor.Step(g.input, float64(e.Size().Y))
	if err != nil {
		return err
	}
	if quit {
		return ebiten.Termination
	}
	if now := g.cursor.Index(); now != before {
		g.log.Debug("page", "index", now, "key", g.cursor.Key())
		return g.pages.Update(now)
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	e, ok := g.pages.Entry(g.cursor.Index())
	if !ok {
		return
	}
	zoom := g.cursor.Zoom
	width := float64(e.Size().X) * zoom
	left := (float64(screen.Bounds().Dx())-width)/2 - g.cursor.OffsetX

	top := -g.cursor.OffsetY
	for _, r := range e.Chunks {
		t := r.(*texture)
		op := &ebiten.DrawImageOptions{}
		op.Filter = t.filter
		op.GeoM.Scale(zoom, zoom)
		op.GeoM.Translate(left, top)
		screen.DrawImage(t.img, op)
		top += float64(t.Size().Y) * zoom
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
