package cli

import (
	"runlog/internal/di"

	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := di.InitApp(&opts.flags)
			if err != nil {
				return err
			}
			return app.Run()
		},
	}
}
