package info

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/viewer/pkg/store"
)

func TestInfo(t *testing.T) {
	color.NoColor = true
	root := t.TempDir()
	cfg := &store.Settings{
		Markers:   filepath.Join(root, "p"),
		Pages:     filepath.Join(root, "m"),
		Name:      "demo",
		Window:    2,
		MaxChunk:  16384,
		Filtering: "nearest",
		Width:     1280,
		Height:    960,
	}
	if err := store.NewMarkers(cfg.Markers).Save("demo", "00010"); err != nil {
		t.Fatal(err)
	}
	if err := store.NewMarkers(cfg.Markers).Save("other", "00010"); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(cfg.Pages, "demo"), 0o755); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := (&Info{Config: cfg, Out: &buf}).Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	out := buf.String()
	for _, want := range []string{cfg.Markers, "1280x960", "nearest", "known series: demo, other"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "(missing)") {
		t.Fatalf("expected marker and page dir to be found:\n%s", out)
	}
}

func TestInfoMissingMarkers(t *testing.T) {
	color.NoColor = true
	root := t.TempDir()
	cfg := &store.Settings{
		Markers: filepath.Join(root, "p"),
		Pages:   filepath.Join(root, "m"),
		Name:    "demo",
	}

	var buf bytes.Buffer
	if err := (&Info{Config: cfg, Out: &buf}).Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	if want := cfg.Markers + " (missing)"; !strings.Contains(buf.String(), want) {
		t.Fatalf("expected %q in output:\n%s", want, buf.String())
	}
}
