package pages

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/viewer/pkg/store"
)

func testSeries(t *testing.T) *store.Series {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "m", "demo")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, n := range []string{"0002-000.png", "0001-000.png", "0001-001.png"} {
		if err := os.WriteFile(filepath.Join(dir, n), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	cfg := &store.Settings{Markers: filepath.Join(root, "p"), Pages: filepath.Join(root, "m"), Name: "demo"}
	if err := store.NewMarkers(cfg.Markers).Save("demo", "0001-001"); err != nil {
		t.Fatal(err)
	}
	s, err := store.OpenSeries(cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s
}

func TestPagesTable(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	p := &Pages{Series: testSeries(t), Out: &buf}
	if err := p.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "demo (paged mode, 3 pages)") {
		t.Fatalf("missing header in:\n%s", out)
	}
	first := strings.Index(out, "0001-000")
	second := strings.Index(out, "0001-001")
	third := strings.Index(out, "0002-000")
	if first < 0 || !(first < second && second < third) {
		t.Fatalf("pages not in reading order:\n%s", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "0001-001") && !strings.HasPrefix(strings.TrimSpace(line), ">") {
			t.Fatalf("expected current page to be marked, got %q", line)
		}
	}
}

func TestPagesJSON(t *testing.T) {
	var buf bytes.Buffer
	p := &Pages{Series: testSeries(t), Out: &buf, JSON: true}
	if err := p.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	var rows []row
	if err := json.Unmarshal(buf.Bytes(), &rows); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(rows) != 3 || !rows[1].Current || rows[1].File != "0001-001.png" {
		t.Fatalf("unexpected rows %+v", rows)
	}
}
