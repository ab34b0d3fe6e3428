package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// tempDir receives in-flight writes so a marker is replaced atomically.
const tempDir = ".tmp"

// Markers keeps one position marker per series as a flat file named after
// the series under a base directory.
type Markers struct {
	d        *diskv.Diskv
	basePath string
}

// NewMarkers opens the marker directory at basePath. Nothing is created
// until the first Save.
func NewMarkers(basePath string) *Markers {
	return &Markers{
		d: diskv.New(diskv.Options{
			BasePath: basePath,
			TempDir:  filepath.Join(basePath, tempDir),
			// Markers are rewritten by other processes; never serve stale
			// reads from memory.
			CacheSizeMax: 0,
		}),
		basePath: basePath,
	}
}

// BasePath returns the marker directory.
func (m *Markers) BasePath() string { return m.basePath }

// Path returns the file holding the marker for series.
func (m *Markers) Path(series string) string {
	return filepath.Join(m.basePath, series)
}

// Has reports whether a marker exists for series.
func (m *Markers) Has(series string) bool {
	return m.d.Has(series)
}

// Load returns the stored marker for series with surrounding whitespace
// trimmed.
func (m *Markers) Load(series string) (string, error) {
	b, err := m.d.Read(series)
	if err != nil {
		return "", fmt.Errorf("store: read marker %s: %w", series, err)
	}
	return strings.TrimSpace(string(b)), nil
}

// Save replaces the marker for series.
func (m *Markers) Save(series, token string) error {
	if err := m.d.Write(series, []byte(token)); err != nil {
		return fmt.Errorf("store: write marker %s: %w", series, err)
	}
	return nil
}

// Series lists every series with a marker, sorted by name.
func (m *Markers) Series(ctx context.Context) []string {
	names := make([]string, 0)
	for key := range m.d.Keys(ctx.Done()) {
		// Keys also walks the temp dir; only files at the top level count.
		if strings.HasPrefix(key, ".") || !m.d.Has(key) {
			continue
		}
		names = append(names, key)
	}
	sort.Strings(names)
	return names
}
