package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/viewer/pkg/commands/options"
	"tableflip.dev/viewer/pkg/runner/pages"
	"tableflip.dev/viewer/pkg/store"
)

func addPages(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "pages",
		Aliases: []string{"ls"},
		Short:   "List the pages of the series in reading order.",
		Example: `
viewer pages
viewer pages --series my-series --json
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
			p := pages.Pages{
				Series: s,
				JSON:   output.JSON,
			}
			return output.HandleError(p.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
