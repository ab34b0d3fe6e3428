package options

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// LogOptions controls diagnostic logging on stderr.
type LogOptions struct {
	Debug bool
}

func AddLogArgs(cmd *cobra.Command, o *LogOptions) {
	cmd.PersistentFlags().BoolVar(&o.Debug, "debug", false,
		"Log page loading and prefetching to stderr.")
}

// Logger returns a handler writing to f, coloured when f is a terminal.
func (o *LogOptions) Logger(f *os.File) *slog.Logger {
	level := slog.LevelInfo
	if o.Debug {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(f, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    !isatty.IsTerminal(f.Fd()),
	}))
}
