package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestMarkersSaveLoad(t *testing.T) {
	base := t.TempDir()
	m := NewMarkers(base)

	if m.Has("series") {
		t.Fatalf("expected no marker yet")
	}
	if err := m.Save("series", "0002-000"); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := m.Load("series")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != "0002-000" {
		t.Fatalf("expected 0002-000, got %q", got)
	}

	b, err := os.ReadFile(filepath.Join(base, "series"))
	if err != nil {
		t.Fatalf("marker should be a plain file named after the series: %v", err)
	}
	if string(b) != "0002-000" {
		t.Fatalf("unexpected file contents %q", b)
	}
}

func TestMarkersLoadTrims(t *testing.T) {
	base := t.TempDir()
	if err := os.WriteFile(filepath.Join(base, "series"), []byte("  0001-001\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := NewMarkers(base).Load("series")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != "0001-001" {
		t.Fatalf("expected trimmed marker, got %q", got)
	}
}

func TestMarkersLoadMissing(t *testing.T) {
	_, err := NewMarkers(t.TempDir()).Load("nope")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestMarkersSeries(t *testing.T) {
	m := NewMarkers(t.TempDir())
	for _, s := range []string{"b", "a", "c"} {
		if err := m.Save(s, "00010"); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	got := m.Series(context.Background())
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
