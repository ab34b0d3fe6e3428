// Package pick is an interactive page picker that moves the stored marker.
package pick

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"tableflip.dev/viewer/pkg/store"
)

// ErrNotTerminal is returned when stdin or stdout is not a terminal.
var ErrNotTerminal = errors.New("pick: needs an interactive terminal")

// Pick runs the picker over Series and saves the chosen page.
type Pick struct {
	Series *store.Series
	Out    io.Writer
}

func (p *Pick) Do(ctx context.Context) error {
	if p.Out == nil {
		p.Out = color.Output
	}
	if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) {
		return ErrNotTerminal
	}

	idx, err := p.Series.Index()
	if err != nil {
		return err
	}
	items := make([]Item, 0, idx.Len())
	for i := 0; i < idx.Len(); i++ {
		e := idx.Entry(i)
		items = append(items, Item{Key: e.Key.String(), File: e.Name})
	}

	title := fmt.Sprintf("%s: %d pages, marked at %s", p.Series.Name, idx.Len(), idx.Key(idx.Start()))
	prog := tea.NewProgram(NewModel(title, items, idx.Start()), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := prog.Run()
	if err != nil {
		return err
	}

	m, ok := final.(Model)
	if !ok {
		return nil
	}
	i, ok := m.Chosen()
	if !ok || i == idx.Start() {
		return nil
	}
	k := idx.Key(i)
	if err := p.Series.Save(k); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(p.Out, "%s marked at %s\n", p.Series.Name, color.GreenString(k.String()))
	return nil
}
