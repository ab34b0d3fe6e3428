package options

import (
	"runtime"

	"github.com/spf13/cobra"
)

// CheckOptions
type CheckOptions struct {
	Jobs    int
	Verbose bool
}

func AddCheckArgs(cmd *cobra.Command, o *CheckOptions) {
	cmd.Flags().IntVarP(&o.Jobs, "jobs", "j", runtime.NumCPU(),
		"Pages to decode in parallel.")
	cmd.Flags().BoolVarP(&o.Verbose, "verbose", "v", false,
		"List every page, not only failures.")
}
