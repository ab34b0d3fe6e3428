// Package mcp provides the Model Context Protocol server integration for the
// viewer: series listing and reading-position control for agents.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/viewer/pkg/page"
	"tableflip.dev/viewer/pkg/store"
)

// Service coordinates the marker and page lookups shared by the MCP server.
type Service struct {
	Config store.Config
}

// ErrSeriesRequired is returned when a call names no series.
var ErrSeriesRequired = errors.New("series name is required")

// SeriesSummary describes a series and where its reader stands.
type SeriesSummary struct {
	Name   string `json:"name"`
	Marker string `json:"marker"`
	Mode   string `json:"mode,omitempty"`
	Index  int    `json:"index"`
	Count  int    `json:"count"`
	Error  string `json:"error,omitempty"`
}

// PageDTO is a transport-friendly projection of an index entry.
type PageDTO struct {
	Index   int    `json:"index"`
	Key     string `json:"key"`
	File    string `json:"file"`
	Current bool   `json:"current,omitempty"`
}

// MarkerDTO reports the stored position of a series.
type MarkerDTO struct {
	Series string `json:"series"`
	Marker string `json:"marker"`
	Mode   string `json:"mode"`
	Index  int    `json:"index"`
	Count  int    `json:"count"`
	File   string `json:"file"`
	AtEnd  bool   `json:"atEnd"`
}

// NewService builds a service over the directories named by cfg.
func NewService(cfg store.Config) *Service {
	return &Service{Config: cfg}
}

// ListSeries summarises every series with a marker. A series whose directory
// cannot be indexed is still listed, with the failure in Error.
func (s *Service) ListSeries(ctx context.Context) ([]SeriesSummary, error) {
	if s.Config == nil {
		return nil, errors.New("config is not set")
	}
	markers := store.NewMarkers(s.Config.MarkersPath())
	names := markers.Series(ctx)

	out := make([]SeriesSummary, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sum := SeriesSummary{Name: name}
		_, idx, err := s.open(name)
		if err != nil {
			sum.Error = err.Error()
			sum.Marker, _ = markers.Load(name)
			out = append(out, sum)
			continue
		}
		sum.Marker = idx.Key(idx.Start()).String()
		sum.Mode = idx.Mode().String()
		sum.Index = idx.Start()
		sum.Count = idx.Len()
		out = append(out, sum)
	}
	return out, nil
}

// ListPages returns the reading order of a series.
func (s *Service) ListPages(ctx context.Context, name string) ([]PageDTO, error) {
	_, idx, err := s.open(name)
	if err != nil {
		return nil, err
	}
	pages := make([]PageDTO, 0, idx.Len())
	for i := 0; i < idx.Len(); i++ {
		e := idx.Entry(i)
		pages = append(pages, PageDTO{
			Index:   i,
			Key:     e.Key.String(),
			File:    e.Name,
			Current: i == idx.Start(),
		})
	}
	return pages, nil
}

// GetMarker resolves the stored marker of a series against its pages.
func (s *Service) GetMarker(ctx context.Context, name string) (*MarkerDTO, error) {
	series, idx, err := s.open(name)
	if err != nil {
		return nil, err
	}
	return markerDTO(series, idx, idx.Start()), nil
}

// SetMarker stores token as the position of a series. The token must name
// one of its pages.
func (s *Service) SetMarker(ctx context.Context, name, token string) (*MarkerDTO, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("marker token is required")
	}
	series, err := s.series(name)
	if err != nil {
		return nil, err
	}
	names, err := page.ReadDir(series.Dir)
	if err != nil {
		return nil, err
	}
	idx, err := page.Build(names, token)
	if err != nil {
		return nil, err
	}
	if err := series.Save(idx.Key(idx.Start())); err != nil {
		return nil, err
	}
	return markerDTO(series, idx, idx.Start()), nil
}

// MoveMarker shifts the position of a series by delta pages, stopping at
// either end.
func (s *Service) MoveMarker(ctx context.Context, name string, delta int) (*MarkerDTO, error) {
	series, idx, err := s.open(name)
	if err != nil {
		return nil, err
	}
	to := min(max(idx.Start()+delta, 0), idx.Len()-1)
	if to != idx.Start() {
		if err := series.Save(idx.Key(to)); err != nil {
			return nil, err
		}
	}
	return markerDTO(series, idx, to), nil
}

func (s *Service) series(name string) (*store.Series, error) {
	if s.Config == nil {
		return nil, errors.New("config is not set")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrSeriesRequired
	}
	if strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return nil, fmt.Errorf("invalid series name %q", name)
	}
	return store.OpenNamed(s.Config, name)
}

func (s *Service) open(name string) (*store.Series, *page.Index, error) {
	series, err := s.series(name)
	if err != nil {
		return nil, nil, err
	}
	idx, err := series.Index()
	if err != nil {
		return series, nil, err
	}
	return series, idx, nil
}

func markerDTO(series *store.Series, idx *page.Index, i int) *MarkerDTO {
	return &MarkerDTO{
		Series: series.Name,
		Marker: idx.Key(i).String(),
		Mode:   idx.Mode().String(),
		Index:  i,
		Count:  idx.Len(),
		File:   idx.Entry(i).Name,
		AtEnd:  i == idx.Len()-1,
	}
}
