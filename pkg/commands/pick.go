package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/viewer/pkg/runner/pick"
	"tableflip.dev/viewer/pkg/store"
)

func addPick(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Choose the reading position from a list of pages.",
		Example: `
viewer pick
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			s, err := series.Open(cfg)
			if err != nil {
				return err
			}
			p := pick.Pick{Series: s}
			return p.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
