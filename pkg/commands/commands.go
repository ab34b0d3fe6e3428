package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/viewer/pkg/commands/options"
)

var (
	output  = &options.OutputOptions{}
	logging = &options.LogOptions{}
	series  = &options.SeriesOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "viewer",
		Short: options.Wrap80("Read a series of page images, picking up where you left off."),
		Long: options.Wrap80(`Pages live in <pages>/<series> and the reading position in
<markers>/<series>. Without a subcommand the series is opened for reading.`),
		Args: cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			slog.SetDefault(logging.Logger(os.Stderr))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRead(cmd)
		},
	}

	options.AddLogArgs(cmd, logging)
	options.AddSeriesArg(cmd, series)
	_ = cmd.RegisterFlagCompletionFunc("series", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return seriesCompletions(cmd, toComplete), cobra.ShellCompDirectiveNoFileComp
	})

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addRead(topLevel)
	addPages(topLevel)
	addMark(topLevel)
	addCheck(topLevel)
	addPick(topLevel)
	addInfo(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
