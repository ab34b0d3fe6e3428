package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/viewer/pkg/store"
)

// SeriesOptions picks the series to work on.
type SeriesOptions struct {
	Series string
}

func AddSeriesArg(cmd *cobra.Command, o *SeriesOptions) {
	cmd.PersistentFlags().StringVar(&o.Series, "series", "",
		"Series to use, defaults to the name of the working directory.")
}

// Open resolves the selected series against cfg.
func (o *SeriesOptions) Open(cfg store.Config) (*store.Series, error) {
	if o.Series != "" {
		return store.OpenNamed(cfg, o.Series)
	}
	return store.OpenSeries(cfg)
}
