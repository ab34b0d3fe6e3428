package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/viewer/pkg/page"
	"tableflip.dev/viewer/pkg/runner/mark"
	"tableflip.dev/viewer/pkg/store"
)

func addMark(topLevel *cobra.Command) {
	follow := false

	cmd := &cobra.Command{
		Use:   "mark [page]",
		Short: "Show or move the stored reading position.",
		Long: `Show the stored reading position, or move it to the given page.

The page must exist in the page directory. With --follow the position is
printed again every time it changes, for example while reading.`,
		Example: `
viewer mark
viewer mark 0003-012
viewer mark --follow
`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return pageCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			s, err := series.Open(cfg)
			if err != nil {
				return err
			}
			m := mark.Mark{
				Series: s,
				Follow: follow,
			}
			if len(args) == 1 {
				m.Set = args[0]
			}
			return m.Do(cmd.Context())
		},
	}

	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing the position as it changes.")
	topLevel.AddCommand(cmd)
}

func pageCompletions(toComplete string) []string {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil
	}
	s, err := series.Open(cfg)
	if err != nil {
		return nil
	}
	names, err := page.ReadDir(s.Dir)
	if err != nil {
		return nil
	}
	marker, err := s.Marker()
	if err != nil {
		return nil
	}
	idx, err := page.Build(names, marker)
	if err != nil {
		return nil
	}
	out := make([]string, 0, idx.Len())
	for _, k := range idx.Keys() {
		out = append(out, k.String())
	}
	return out
}
