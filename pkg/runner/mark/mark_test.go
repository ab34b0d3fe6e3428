package mark

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/viewer/pkg/page"
	"tableflip.dev/viewer/pkg/store"
)

func testSeries(t *testing.T) *store.Series {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "m", "demo")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, n := range []string{"0001-000.png", "0001-001.png", "0002-000.png"} {
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

func TestMarkShow(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	m := &Mark{Series: testSeries(t), Out: &buf}
	if err := m.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	if got := buf.String(); got != "demo: 0001-001 (page 2 of 3)\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestMarkSet(t *testing.T) {
	color.NoColor = true
	s := testSeries(t)
	var buf bytes.Buffer
	m := &Mark{Series: s, Set: "0002-000", Out: &buf}
	if err := m.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	got, err := s.Marker()
	if err != nil {
		t.Fatal(err)
	}
	if got != "0002-000" {
		t.Fatalf("expected marker 0002-000, got %q", got)
	}
}

func TestMarkSetUnknownPage(t *testing.T) {
	s := testSeries(t)
	m := &Mark{Series: s, Set: "0009-000", Out: &bytes.Buffer{}}
	if err := m.Do(context.Background()); !errors.Is(err, page.ErrNotFound) {
		t.Fatalf("expected page not found, got %v", err)
	}
	if got, _ := s.Marker(); got != "0001-001" {
		t.Fatalf("marker must be unchanged, got %q", got)
	}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestMarkFollow(t *testing.T) {
	color.NoColor = true
	s := testSeries(t)
	out := &syncBuffer{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- (&Mark{Series: s, Follow: true, Out: out}).Do(ctx)
	}()

	deadline := time.Now().Add(2 * time.Second)
	saved := false
	for time.Now().Before(deadline) {
		if !saved && strings.Contains(out.String(), "0001-001") {
			// Give the watcher a moment to subscribe.
			time.Sleep(50 * time.Millisecond)
			if err := s.Markers.Save("demo", "0002-000"); err != nil {
				t.Fatal(err)
			}
			saved = true
		}
		if strings.Contains(out.String(), "0002-000 (page 3 of 3)") {
			cancel()
			if err := <-done; err != nil {
				t.Fatalf("follow: %v", err)
			}
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	cancel()
	t.Fatalf("timed out waiting for followed change, got %q", out.String())
}
