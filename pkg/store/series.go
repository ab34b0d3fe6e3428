package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"tableflip.dev/viewer/pkg/page"
)

// ErrBadPaths is returned when a series lacks its marker or page directory.
var ErrBadPaths = errors.New("bad paths")

// Series ties a page directory to its position marker.
type Series struct {
	Name    string
	Dir     string
	Markers *Markers
}

// OpenSeries resolves the series named by cfg. Both the marker file and the
// page directory must already exist.
func OpenSeries(cfg Config) (*Series, error) {
	return OpenNamed(cfg, cfg.Series())
}

// OpenNamed resolves a series by name using the directories of cfg.
func OpenNamed(cfg Config, name string) (*Series, error) {
	s := &Series{
		Name:    name,
		Dir:     filepath.Join(cfg.PagesPath(), name),
		Markers: NewMarkers(cfg.MarkersPath()),
	}
	if !s.Markers.Has(name) {
		return nil, fmt.Errorf("store: no marker at %s: %w", s.Markers.Path(name), ErrBadPaths)
	}
	if fi, err := os.Stat(s.Dir); err != nil || !fi.IsDir() {
		return nil, fmt.Errorf("store: no page directory at %s: %w", s.Dir, ErrBadPaths)
	}
	return s, nil
}

// Marker returns the stored position token.
func (s *Series) Marker() (string, error) {
	return s.Markers.Load(s.Name)
}

// Index lists the page directory and resolves the stored marker in it.
func (s *Series) Index() (*page.Index, error) {
	names, err := page.ReadDir(s.Dir)
	if err != nil {
		return nil, err
	}
	marker, err := s.Marker()
	if err != nil {
		return nil, err
	}
	return page.Build(names, marker)
}

// Save persists k as the position of the series.
func (s *Series) Save(k page.Key) error {
	return s.Markers.Save(s.Name, k.String())
}
