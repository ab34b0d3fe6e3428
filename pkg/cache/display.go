package cache

import (
	"fmt"
	"image"
	"strings"
)

// Filter selects how a bitmap is sampled when drawn scaled.
type Filter int

const (
	FilterNearest Filter = iota
	FilterLinear
)

func (f Filter) String() string {
	switch f {
	case FilterLinear:
		return "linear"
	default:
		return "nearest"
	}
}

// ParseFilter reads a filter name as found in configuration.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nearest":
		return FilterNearest, nil
	case "linear":
		return FilterLinear, nil
	}
	return FilterNearest, fmt.Errorf("cache: unknown filter %q", s)
}

// Resource is a bitmap living on the display. Release must be called exactly
// once when the cache drops it.
type Resource interface {
	Size() image.Point
	Release()
}

// Display uploads bitmaps. It is only called from the goroutine owning the
// cache.
type Display interface {
	Upload(name string, img *image.NRGBA, filter Filter) (Resource, error)
}
