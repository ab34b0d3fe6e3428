// Package pages lists the pages of a series in reading order.
package pages

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/viewer/pkg/store"
)

// Pages prints the page index of Series with the stored position marked.
type Pages struct {
	Series *store.Series
	JSON   bool
	Out    io.Writer
}

type row struct {
	Index   int    `json:"index"`
	Key     string `json:"key"`
	File    string `json:"file"`
	Current bool   `json:"current,omitempty"`
}

func (p *Pages) Do(ctx context.Context) error {
	out := p.Out
	if out == nil {
		out = color.Output
	}

	idx, err := p.Series.Index()
	if err != nil {
		return err
	}

	rows := make([]row, 0, idx.Len())
	for i := 0; i < idx.Len(); i++ {
		e := idx.Entry(i)
		rows = append(rows, row{Index: i, Key: e.Key.String(), File: e.Name, Current: i == idx.Start()})
	}

	if p.JSON {
		b, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, string(b))
		return nil
	}

	bold := color.New(color.Bold)
	here := color.New(color.FgGreen, color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("", bold.Sprint("#"), bold.Sprint("Page"), bold.Sprint("File"))
	for _, r := range rows {
		if r.Current {
			tbl.AddRow(here.Sprint(">"), here.Sprint(r.Index), here.Sprint(r.Key), here.Sprint(r.File))
			continue
		}
		tbl.AddRow("", r.Index, r.Key, r.File)
	}
	tbl.RightAlign(1)

	_, _ = fmt.Fprintf(out, "%s (%s mode, %d pages)\n", bold.Sprint(p.Series.Name), idx.Mode(), idx.Len())
	_, _ = fmt.Fprintln(out, tbl)
	return nil
}
