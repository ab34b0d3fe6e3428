// Package check decodes every page of a series up front so broken files are
// found before reading reaches them.
package check

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"golang.org/x/sync/errgroup"

	"tableflip.dev/viewer/pkg/chunk"
	"tableflip.dev/viewer/pkg/decode"
	"tableflip.dev/viewer/pkg/store"
)

// Check decodes each page of Series and works out its chunk layout, at most
// Jobs pages at a time.
type Check struct {
	Series         *store.Series
	Decoder        decode.Decoder
	MaxChunkHeight int
	Jobs           int
	Verbose        bool
	Out            io.Writer
}

// Result is the outcome for one page.
type Result struct {
	Index  int
	File   string
	Width  int
	Height int
	Chunks int
	Err    error
}

func (c *Check) Do(ctx context.Context) error {
	if c.Out == nil {
		c.Out = color.Output
	}
	results, err := c.Run(ctx)
	if err != nil {
		return err
	}

	red := color.New(color.FgRed)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 80
	failed, chunks := 0, 0
	for _, r := range results {
		chunks += r.Chunks
		switch {
		case r.Err != nil:
			failed++
			tbl.AddRow(red.Sprint("FAIL"), r.File, r.Err)
		case c.Verbose:
			tbl.AddRow("ok", r.File, fmt.Sprintf("%dx%d in %d chunk(s)", r.Width, r.Height, r.Chunks))
		}
	}
	if len(tbl.Rows) > 0 {
		_, _ = fmt.Fprintln(c.Out, tbl)
	}
	_, _ = fmt.Fprintf(c.Out, "checked %d pages (%d chunks), %d failed\n", len(results), chunks, failed)

	if failed > 0 {
		return fmt.Errorf("check: %d of %d pages failed to decode", failed, len(results))
	}
	return nil
}

// Run checks every page and returns the results in reading order. Decode
// failures are reported per page; only cancellation aborts the run.
func (c *Check) Run(ctx context.Context) ([]Result, error) {
	idx, err := c.Series.Index()
	if err != nil {
		return nil, err
	}
	dec := c.Decoder
	if dec == nil {
		dec = decode.File
	}
	maxHeight := c.MaxChunkHeight
	if maxHeight <= 0 {
		maxHeight = chunk.DefaultMaxHeight
	}
	jobs := c.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	results := make([]Result, idx.Len())
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i := 0; i < idx.Len(); i++ {
		if gctx.Err() != nil {
			break
		}
		results[i] = Result{Index: i, File: idx.Entry(i).Name}
		path := idx.Path(c.Series.Dir, i)
		r := &results[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			img, err := dec.Decode(path)
			if err != nil {
				r.Err = err
				return nil
			}
			b := img.Bounds()
			r.Width, r.Height = b.Dx(), b.Dy()
			r.Chunks = len(chunk.Split(img, maxHeight))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
