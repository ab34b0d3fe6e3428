package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/viewer/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the configuration and where markers and pages are stored.",
		Example: `
viewer info
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s := info.Info{}
			return s.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
