// Package mark shows or moves the stored reading position of a series.
package mark

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/viewer/pkg/page"
	"tableflip.dev/viewer/pkg/store"
)

// Mark prints the marker of Series, or replaces it with Set. With Follow it
// keeps printing the marker each time it changes until ctx is done.
type Mark struct {
	Series *store.Series
	Set    string
	Follow bool
	Out    io.Writer
}

func (m *Mark) Do(ctx context.Context) error {
	if m.Out == nil {
		m.Out = color.Output
	}

	if m.Set != "" {
		k, err := m.resolve(m.Set)
		if err != nil {
			return err
		}
		if err := m.Series.Save(k); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(m.Out, "%s marked at %s\n", m.Series.Name, color.GreenString(k.String()))
		return nil
	}

	tok, err := m.Series.Marker()
	if err != nil {
		return err
	}
	if err := m.show(tok); err != nil {
		return err
	}
	if !m.Follow {
		return nil
	}

	changes, err := m.Series.Markers.Watch(ctx, m.Series.Name)
	if err != nil {
		return err
	}
	for c := range changes {
		if c.Err != nil {
			_, _ = fmt.Fprintln(m.Out, color.RedString("error: %v", c.Err))
			continue
		}
		if err := m.show(c.Token); err != nil {
			_, _ = fmt.Fprintln(m.Out, color.RedString("error: %v", err))
		}
	}
	return nil
}

// resolve validates token against the page directory and returns the
// matching key.
func (m *Mark) resolve(token string) (page.Key, error) {
	names, err := page.ReadDir(m.Series.Dir)
	if err != nil {
		return page.Key{}, err
	}
	idx, err := page.Build(names, token)
	if err != nil {
		return page.Key{}, err
	}
	return idx.Key(idx.Start()), nil
}

func (m *Mark) show(token string) error {
	names, err := page.ReadDir(m.Series.Dir)
	if err != nil {
		return err
	}
	idx, err := page.Build(names, token)
	if err != nil {
		_, _ = fmt.Fprintf(m.Out, "%s: %s\n", m.Series.Name, color.YellowString(token))
		return err
	}
	_, _ = fmt.Fprintf(m.Out, "%s: %s (page %d of %d)\n", m.Series.Name,
		color.GreenString(idx.Key(idx.Start()).String()), idx.Start()+1, idx.Len())
	return nil
}
