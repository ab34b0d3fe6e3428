// Package cursor tracks the reading position within a page index along with
// the view transform, and decides when the position is persisted.
package cursor

import (
	"tableflip.dev/viewer/pkg/page"
)

// Saver persists the reading position.
type Saver interface {
	Save(k page.Key) error
}

// SaverFunc adapts a function to Saver.
type SaverFunc func(k page.Key) error

func (f SaverFunc) Save(k page.Key) error { return f(k) }

// Fraction of the stacked page height past which reaching the bottom of the
// last page counts as having read it.
const finishedFraction = 0.9

const (
	minZoom = 0.1
	maxZoom = 16
)

// Options sets the step sizes used by Step. Zero values select the defaults.
type Options struct {
	ScrollStep float64
	PanStep    float64
	ZoomStep   float64
}

func (o Options) withDefaults() Options {
	if o.ScrollStep <= 0 {
		o.ScrollStep = 120
	}
	if o.PanStep <= 0 {
		o.PanStep = 80
	}
	if o.ZoomStep <= 1 {
		o.ZoomStep = 1.25
	}
	return o
}

// Cursor is the current index plus pan, scroll and zoom. Offsets are in
// screen pixels; OffsetY grows as the view moves down the page.
type Cursor struct {
	idx   *page.Index
	saver Saver
	opts  Options

	index   int
	OffsetX float64
	OffsetY float64
	Zoom    float64

	// persisted is set once the current page has been written out.
	persisted bool
}

// New places a cursor on the index's start page. The start page came from
// the stored marker, so it counts as persisted.
func New(idx *page.Index, saver Saver, opts Options) *Cursor {
	return &Cursor{
		idx:       idx,
		saver:     saver,
		opts:      opts.withDefaults(),
		index:     idx.Start(),
		Zoom:      1,
		persisted: true,
	}
}

// Index returns the current position.
func (c *Cursor) Index() int { return c.index }

// Key returns the key of the current page.
func (c *Cursor) Key() page.Key { return c.idx.Key(c.index) }

// Persisted reports whether the current page has been saved.
func (c *Cursor) Persisted() bool { return c.persisted }

// Advance moves to the next page. It reports whether the position changed;
// at the last page it does nothing.
func (c *Cursor) Advance() (bool, error) {
	if c.index >= c.idx.Len()-1 {
		return false, nil
	}
	return true, c.move(c.index + 1)
}

// Retreat moves to the previous page. At the first page it does nothing.
func (c *Cursor) Retreat() (bool, error) {
	if c.index <= 0 {
		return false, nil
	}
	return true, c.move(c.index - 1)
}

func (c *Cursor) move(i int) error {
	c.index = i
	c.ResetView()
	c.persisted = false
	// In list mode the last entry is only marked once it has been scrolled
	// through.
	if c.idx.Mode() == page.ModeList && i == c.idx.Len()-1 {
		return nil
	}
	return c.persist()
}

func (c *Cursor) persist() error {
	if err := c.saver.Save(c.Key()); err != nil {
		return err
	}
	c.persisted = true
	return nil
}

// ResetView restores the identity transform.
func (c *Cursor) ResetView() {
	c.OffsetX, c.OffsetY, c.Zoom = 0, 0, 1
}

// Scroll moves the view down by dy (up when negative), bounded by the page.
// height is the stacked height of the current page before zoom. Scrolling
// past most of the last page persists it once per visit.
func (c *Cursor) Scroll(dy, height float64) error {
	limit := height * c.Zoom
	c.OffsetY = min(max(c.OffsetY+dy, 0), max(limit, 0))

	if c.persisted || c.index != c.idx.Len()-1 {
		return nil
	}
	if c.OffsetY > finishedFraction*limit {
		return c.persist()
	}
	return nil
}

// Pan moves the view sideways.
func (c *Cursor) Pan(dx float64) {
	c.OffsetX += dx
}

// ZoomBy multiplies the zoom factor, keeping it within sane bounds.
func (c *Cursor) ZoomBy(factor float64) {
	if factor <= 0 {
		return
	}
	c.Zoom = min(max(c.Zoom*factor, minZoom), maxZoom)
}
