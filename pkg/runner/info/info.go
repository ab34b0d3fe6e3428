package info

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/viewer/pkg/store"
)

// Info prints the resolved configuration and where markers and pages live.
type Info struct {
	Config store.Config
	Out    io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	if n.Out == nil {
		n.Out = color.Output
	}
	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}
	cfg := n.Config
	bold := color.New(color.Bold)

	if override := os.Getenv(store.ConfigPathEnv); override != "" {
		_, _ = fmt.Fprintf(n.Out, "%s found on env, using %s\n", store.ConfigPathEnv, override)
	} else {
		_, _ = fmt.Fprintf(n.Out, "%s env var not set\n", store.ConfigPathEnv)
	}
	if s, ok := cfg.(*store.Settings); ok && s.File != "" {
		_, _ = fmt.Fprintf(n.Out, "config file: %s\n", s.File)
	}

	markers := store.NewMarkers(cfg.MarkersPath())
	w, h := cfg.WindowSize()

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("markers"), exists(markers.BasePath()))
	tbl.AddRow(bold.Sprint("pages"), cfg.PagesPath())
	tbl.AddRow(bold.Sprint("series"), cfg.Series())
	tbl.AddRow(bold.Sprint("marker file"), exists(markers.Path(cfg.Series())))
	tbl.AddRow(bold.Sprint("page dir"), exists(filepath.Join(cfg.PagesPath(), cfg.Series())))
	tbl.AddRow(bold.Sprint("radius"), cfg.Radius())
	tbl.AddRow(bold.Sprint("max chunk"), cfg.MaxChunkHeight())
	tbl.AddRow(bold.Sprint("filter"), cfg.Filter())
	tbl.AddRow(bold.Sprint("window"), fmt.Sprintf("%dx%d", w, h))
	_, _ = fmt.Fprintln(n.Out, tbl)

	if all := markers.Series(ctx); len(all) > 0 {
		_, _ = fmt.Fprintf(n.Out, "\n%s %s\n", bold.Sprint("known series:"), strings.Join(all, ", "))
	}
	return nil
}

func exists(path string) string {
	if _, err := os.Stat(path); err != nil {
		return color.RedString("%s (missing)", path)
	}
	return path
}
