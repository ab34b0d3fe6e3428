// Package cache keeps the pages around the reading position decoded and
// uploaded to the display, prefetching neighbours in the background.
//
// A Cache is owned by one goroutine (the one driving the display). Background
// workers only decode and split pixels; every upload and release happens on
// the owning goroutine inside Update or Close.
package cache

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"

	"tableflip.dev/viewer/pkg/chunk"
	"tableflip.dev/viewer/pkg/decode"
	"tableflip.dev/viewer/pkg/page"
	"tableflip.dev/viewer/pkg/prefetch"
)

// DefaultRadius is the number of pages kept on each side of the current one.
const DefaultRadius = 2

// Source locates the file of every page.
type Source interface {
	Len() int
	Path(i int) string
}

type series struct {
	idx *page.Index
	dir string
}

func (s series) Len() int          { return s.idx.Len() }
func (s series) Path(i int) string { return s.idx.Path(s.dir, i) }

// FromIndex serves page paths from an index whose entries live in dir.
func FromIndex(idx *page.Index, dir string) Source {
	return series{idx: idx, dir: dir}
}

// Options tune a Cache. Zero values select the defaults.
type Options struct {
	Radius         int
	MaxChunkHeight int
	Filter         Filter
	Logger         *slog.Logger
}

// DecodeError reports a page that could not be decoded.
type DecodeError struct {
	Index int
	Path  string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cache: page %d (%s): %v", e.Index, e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Entry is a realized page: one or more chunks stacked top to bottom.
type Entry struct {
	Chunks []Resource
}

// Size is the width of the widest chunk by the stacked height of all chunks.
func (e *Entry) Size() image.Point {
	var p image.Point
	for _, c := range e.Chunks {
		s := c.Size()
		p.X = max(p.X, s.X)
		p.Y += s.Y
	}
	return p
}

func (e *Entry) release() {
	for _, c := range e.Chunks {
		c.Release()
	}
	e.Chunks = nil
}

// Cache maps page indices to realized entries or pending workers.
type Cache struct {
	src     Source
	decoder decode.Decoder
	display Display

	radius   int
	maxChunk int
	filter   Filter
	log      *slog.Logger

	entries map[int]*Entry
	pending *prefetch.Set[[]*image.NRGBA]
}

// New creates an empty cache.
func New(src Source, dec decode.Decoder, disp Display, opts Options) *Cache {
	if opts.Radius < 0 {
		opts.Radius = 0
	}
	if opts.MaxChunkHeight <= 0 {
		opts.MaxChunkHeight = chunk.DefaultMaxHeight
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Cache{
		src:      src,
		decoder:  dec,
		display:  disp,
		radius:   opts.Radius,
		maxChunk: opts.MaxChunkHeight,
		filter:   opts.Filter,
		log:      opts.Logger,
		entries:  make(map[int]*Entry),
		pending:  prefetch.NewSet[[]*image.NRGBA](),
	}
}

// Window returns the inclusive range of indices kept around current.
func (c *Cache) Window(current int) (lo, hi int) {
	return max(0, current-c.radius), min(c.src.Len()-1, current+c.radius)
}

// Update reconciles the cache against the window around current: entries and
// workers outside it are dropped first, then current is realized (joining its
// worker or decoding in place) and workers are started for missing
// neighbours. On success current always has an entry.
//
// A decode failure of current, or of any worker joined here, is returned.
func (c *Cache) Update(current int) error {
	if current < 0 || current >= c.src.Len() {
		return fmt.Errorf("cache: index %d out of range [0, %d)", current, c.src.Len())
	}
	lo, hi := c.Window(current)
	outside := func(i int) bool { return i < lo || i > hi }

	for i, e := range c.entries {
		if outside(i) {
			e.release()
			delete(c.entries, i)
			c.log.Debug("evicted page", "index", i)
		}
	}

	var errs []error
	for _, i := range c.pending.Indices() {
		if !outside(i) {
			continue
		}
		w, _ := c.pending.Take(i)
		if _, err := w.Join(); err != nil {
			errs = append(errs, c.decodeError(i, err))
		}
		c.log.Debug("discarded prefetch", "index", i)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	if _, ok := c.entries[current]; !ok {
		if err := c.realize(current); err != nil {
			return err
		}
	}

	for i := lo; i <= hi; i++ {
		if i == current {
			continue
		}
		if _, ok := c.entries[i]; ok {
			continue
		}
		if c.pending.Spawn(i, c.task(i)) {
			c.log.Debug("prefetching page", "index", i)
		}
	}
	return nil
}

// Entry returns the realized entry for index i.
func (c *Cache) Entry(i int) (*Entry, bool) {
	e, ok := c.entries[i]
	return e, ok
}

// Pending reports whether a worker for index i is in flight or unclaimed.
func (c *Cache) Pending(i int) bool {
	return c.pending.Has(i)
}

// Realized returns the number of realized entries.
func (c *Cache) Realized() int { return len(c.entries) }

// Close joins every worker and releases every entry. Errors from workers are
// returned joined; all resources are released regardless.
func (c *Cache) Close() error {
	var errs []error
	for _, i := range c.pending.Indices() {
		w, _ := c.pending.Take(i)
		if _, err := w.Join(); err != nil {
			errs = append(errs, c.decodeError(i, err))
		}
	}
	for i, e := range c.entries {
		e.release()
		delete(c.entries, i)
	}
	return errors.Join(errs...)
}

func (c *Cache) realize(i int) error {
	var (
		bufs []*image.NRGBA
		err  error
	)
	if w, ok := c.pending.Take(i); ok {
		c.log.Debug("claiming prefetch", "index", i)
		bufs, err = w.Join()
	} else {
		c.log.Debug("decoding page", "index", i)
		bufs, err = c.task(i)()
	}
	if err != nil {
		return c.decodeError(i, err)
	}

	e := &Entry{Chunks: make([]Resource, 0, len(bufs))}
	for j, buf := range bufs {
		r, err := c.display.Upload(fmt.Sprintf("page-%d-%d", i, j), buf, c.filter)
		if err != nil {
			e.release()
			return fmt.Errorf("cache: upload page %d chunk %d: %w", i, j, err)
		}
		e.Chunks = append(e.Chunks, r)
	}
	c.entries[i] = e
	return nil
}

// task decodes and splits page i. It runs on worker goroutines and touches
// no cache state besides the immutable source and settings.
func (c *Cache) task(i int) func() ([]*image.NRGBA, error) {
	path := c.src.Path(i)
	dec, maxChunk := c.decoder, c.maxChunk
	return func() ([]*image.NRGBA, error) {
		img, err := dec.Decode(path)
		if err != nil {
			return nil, err
		}
		return chunk.Split(img, maxChunk), nil
	}
}

func (c *Cache) decodeError(i int, err error) error {
	return &DecodeError{Index: i, Path: c.src.Path(i), Err: err}
}
