package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/viewer/pkg/commands/options"
	"tableflip.dev/viewer/pkg/decode"
	"tableflip.dev/viewer/pkg/runner/check"
	"tableflip.dev/viewer/pkg/store"
)

func addCheck(topLevel *cobra.Command) {
	co := &options.CheckOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Decode every page to find broken files before reading.",
		Example: `
viewer check
viewer check --jobs 2 --verbose
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, err := store.LoadConfig()
			if err != nil {
				return output.HandleError(err)
			}
			s, err := series.Open(cfg)
			if err != nil {
				return output.HandleError(err)
			}
			c := check.Check{
				Series:         s,
				Decoder:        decode.File,
				MaxChunkHeight: cfg.MaxChunkHeight(),
				Jobs:           co.Jobs,
				Verbose:        co.Verbose,
			}
			return output.HandleError(c.Do(cmd.Context()))
		},
	}

	options.AddCheckArgs(cmd, co)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
