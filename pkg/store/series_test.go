package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"tableflip.dev/viewer/pkg/page"
)

func testSettings(t *testing.T) *Settings {
	t.Helper()
	root := t.TempDir()
	return &Settings{
		Markers: filepath.Join(root, "p"),
		Pages:   filepath.Join(root, "m"),
		Name:    "series",
	}
}

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestOpenSeriesBadPaths(t *testing.T) {
	cfg := testSettings(t)
	if _, err := OpenSeries(cfg); !errors.Is(err, ErrBadPaths) {
		t.Fatalf("expected bad paths without a marker, got %v", err)
	}

	if err := NewMarkers(cfg.Markers).Save("series", "0001-000"); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenSeries(cfg); !errors.Is(err, ErrBadPaths) {
		t.Fatalf("expected bad paths without a page directory, got %v", err)
	}
}

func TestSeriesIndexAndSave(t *testing.T) {
	cfg := testSettings(t)
	touch(t, filepath.Join(cfg.Pages, "series"), "0001-000.png", "0001-001.png", "0002-000.png")
	if err := NewMarkers(cfg.Markers).Save("series", "0001-001\n"); err != nil {
		t.Fatal(err)
	}

	s, err := OpenSeries(cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	idx, err := s.Index()
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	if idx.Len() != 3 || idx.Start() != 1 {
		t.Fatalf("expected 3 pages starting at 1, got %d at %d", idx.Len(), idx.Start())
	}

	if err := s.Save(idx.Key(2)); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Marker()
	if err != nil {
		t.Fatalf("marker: %v", err)
	}
	if got != "0002-000" {
		t.Fatalf("expected marker 0002-000, got %q", got)
	}
}

func TestSeriesIndexMarkerNotFound(t *testing.T) {
	cfg := testSettings(t)
	touch(t, filepath.Join(cfg.Pages, "series"), "0001-000")
	if err := NewMarkers(cfg.Markers).Save("series", "0009-000"); err != nil {
		t.Fatal(err)
	}
	s, err := OpenSeries(cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := s.Index(); !errors.Is(err, page.ErrNotFound) {
		t.Fatalf("expected page not found, got %v", err)
	}
}
