package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Change is emitted by Watch when the marker of a series is rewritten.
type Change struct {
	Series string
	Token  string
	Err    error
}

// Watch streams marker changes for the given series (all series when none
// are given) until ctx is cancelled. Callers should drain the returned
// channel; changes are dropped while the consumer is busy.
func (m *Markers) Watch(ctx context.Context, series ...string) (<-chan Change, error) {
	if err := os.MkdirAll(m.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "store: watcher close: %v\n", err)
			}
		})
	}

	if err := watcher.Add(m.basePath); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: watch %s: %w", m.basePath, err)
	}

	wanted := make(map[string]struct{}, len(series))
	for _, s := range series {
		wanted[s] = struct{}{}
	}

	changes := make(chan Change, 16)

	go func() {
		defer close(changes)
		defer closeWatcher()

		send := func(c Change) {
			select {
			case changes <- c:
			default:
			}
		}
		// The throttle fires on its own goroutine; marker reads and sends
		// stay on this one so nothing sends after close.
		ready := make(chan string)
		fire := func(name string) {
			select {
			case ready <- name:
			case <-ctx.Done():
			}
		}

		throttle := newThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case name := <-ready:
				tok, err := m.Load(name)
				send(Change{Series: name, Token: tok, Err: err})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				send(Change{Err: fmt.Errorf("store: watcher: %w", err)})
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if evt.Op&(fsnotify.Create|fsnotify.Write) == 0 {
					continue
				}
				name := m.seriesForPath(evt.Name)
				if name == "" {
					continue
				}
				if _, ok := wanted[name]; len(wanted) > 0 && !ok {
					continue
				}
				throttle.Enqueue(name, fire)
			}
		}
	}()

	return changes, nil
}

// seriesForPath maps a file directly under the base path to its series.
func (m *Markers) seriesForPath(path string) string {
	rel, err := filepath.Rel(m.basePath, path)
	if err != nil || rel == "." || rel != filepath.Base(rel) {
		return ""
	}
	if rel == tempDir || rel[0] == '.' {
		return ""
	}
	return rel
}

// throttle coalesces bursts of writes to the same marker into one read.
type throttle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]struct{}
	delay   time.Duration
}

func newThrottle(delay time.Duration) *throttle {
	return &throttle{
		delay:   delay,
		pending: make(map[string]struct{}),
	}
}

func (t *throttle) Enqueue(name string, fire func(string)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending[name] = struct{}{}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(fire)
		})
	}
}

func (t *throttle) flush(fire func(string)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[string]struct{})
	t.timer = nil
	t.mu.Unlock()

	for name := range pending {
		fire(name)
	}
}

func (t *throttle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
