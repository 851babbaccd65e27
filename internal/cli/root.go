package cli

import (
	"errors"
	"os"
	"runlog/internal/di"
	"runlog/internal/structures"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	flags structures.CliFlags
}

// NewRootCmd builds the runlog command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "runlog",
		Short: "Personal running log",
		Long: `Record runs, plan workouts and look at weekly and monthly totals.

The collection is kept in a single local store. "runlog serve" exposes it
over a small JSON API; every other command works on the store directly.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&opts.flags.ConfigPath, "config", "c", "", "path to the YAML config file")
	root.PersistentFlags().BoolVar(&opts.flags.DebugMode, "debug", false, "enable debug logging")

	root.AddCommand(
		newServeCmd(opts),
		newAddCmd(opts),
		newListCmd(opts),
		newShowCmd(opts),
		newUpdateCmd(opts),
		newDeleteCmd(opts),
		newDuplicateCmd(opts),
		newStatsCmd(opts),
		newImportCmd(opts),
		newExportCmd(opts),
		newResetCmd(opts),
	)
	return root
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// withStore opens the store, runs fn and closes the store so the pending save
// is written before the process exits.
func withStore(opts *rootOptions, fn func(store *di.Store) error) error {
	store, err := di.InitStore(&opts.flags)
	if err != nil {
		return err
	}
	err = fn(store)
	return errors.Join(err, store.Close())
}
