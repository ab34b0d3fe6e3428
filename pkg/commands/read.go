package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"tableflip.dev/viewer/pkg/runner/read"
	"tableflip.dev/viewer/pkg/store"
)

func addRead(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "read",
		Short: "Open the series at its stored position.",
		Long: `Open the series at its stored position.

Keys: right/l/pgdown next page, left/h/pgup previous page, down/j/space and
up/k scroll, a/d pan, +/- zoom, 0 reset the view, q/esc quit.`,
		Example: `
viewer read
viewer read --series my-series --debug
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRead(cmd)
		},
	}

	topLevel.AddCommand(cmd)
}

func runRead(cmd *cobra.Command) error {
	cmd.SilenceUsage = true
	cfg, err := store.LoadConfig()
	if err != nil {
		return err
	}
	s, err := series.Open(cfg)
	if err != nil {
		return err
	}
	r := read.Read{
		Config: cfg,
		Series: s,
		Logger: slog.Default(),
	}
	return r.Do(cmd.Context())
}
