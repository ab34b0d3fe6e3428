package check

import (
	"bytes"
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/viewer/pkg/decode"
	"tableflip.dev/viewer/pkg/store"
)

func testSeries(t *testing.T, names ...string) *store.Series {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "m", "demo")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	cfg := &store.Settings{Markers: filepath.Join(root, "p"), Pages: filepath.Join(root, "m"), Name: "demo"}
	if err := store.NewMarkers(cfg.Markers).Save("demo", "0001-000"); err != nil {
		t.Fatal(err)
	}
	s, err := store.OpenSeries(cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s
}

// tall decodes every page as 2x25, except those named in bad.
func tall(bad ...string) decode.Decoder {
	return decode.Func(func(path string) (*image.NRGBA, error) {
		for _, b := range bad {
			if filepath.Base(path) == b {
				return nil, errors.New("corrupt")
			}
		}
		return image.NewNRGBA(image.Rect(0, 0, 2, 25)), nil
	})
}

func TestRunReportsEveryPage(t *testing.T) {
	s := testSeries(t, "0001-001", "0001-000", "0002-000")
	c := &Check{Series: s, Decoder: tall("0001-001"), MaxChunkHeight: 10, Jobs: 2}

	results, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].File != "0001-000" || results[0].Chunks != 3 || results[0].Height != 25 {
		t.Fatalf("unexpected first result %+v", results[0])
	}
	if results[1].Err == nil {
		t.Fatalf("expected failure for 0001-001")
	}
	if results[2].Err != nil {
		t.Fatalf("unexpected failure %v", results[2].Err)
	}
}

func TestDoFailsOnBrokenPage(t *testing.T) {
	color.NoColor = true
	s := testSeries(t, "0001-000", "0002-000")
	var buf bytes.Buffer
	c := &Check{Series: s, Decoder: tall("0002-000"), Out: &buf}

	if err := c.Do(context.Background()); err == nil {
		t.Fatalf("expected failure")
	}
	out := buf.String()
	if !strings.Contains(out, "FAIL") || !strings.Contains(out, "0002-000") {
		t.Fatalf("expected failing page in output:\n%s", out)
	}
	if !strings.Contains(out, "checked 2 pages (1 chunks), 1 failed") {
		t.Fatalf("unexpected summary:\n%s", out)
	}
}

func TestDoAllGood(t *testing.T) {
	s := testSeries(t, "0001-000")
	var buf bytes.Buffer
	c := &Check{Series: s, Decoder: tall(), Out: &buf, Verbose: true}
	if err := c.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	if !strings.Contains(buf.String(), "2x25 in 1 chunk(s)") {
		t.Fatalf("expected verbose row, got:\n%s", buf.String())
	}
}

func TestRunCancelled(t *testing.T) {
	s := testSeries(t, "0001-000")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (&Check{Series: s, Decoder: tall()}).Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
}
