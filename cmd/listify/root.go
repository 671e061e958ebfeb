package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/yukikurage/listify/internal/app"
	"github.com/yukikurage/listify/internal/client"
	"github.com/yukikurage/listify/internal/client/config"
	"github.com/yukikurage/listify/internal/logging"
	"github.com/yukikurage/listify/internal/storage"
)

type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "listify",
		Short:         "Listify - a personal task list",
		Long:          "Listify keeps your tasks in a local store and signs you in to a Listify server.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.listify/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(
		newAddCmd(opts),
		newListCmd(opts),
		newDoneCmd(opts),
		newRenameCmd(opts),
		newRmCmd(opts),
		newDraftCmd(opts),
		newRegisterCmd(opts),
		newLoginCmd(opts),
		newWhoamiCmd(opts),
		newLogoutCmd(opts),
	)
	return rootCmd
}

// withApp opens the configured store, loads the task list and runs fn.
func withApp(cmd *cobra.Command, opts *rootOptions, fn func(ctx context.Context, a *app.App, out io.Writer) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	level := "warn"
	if opts.verbose {
		level = "debug"
	}
	logger, closeLog, err := logging.New(logging.Options{Level: level, Console: cmd.ErrOrStderr()})
	if err != nil {
		return err
	}
	defer closeLog.Close()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	store, closeStore, err := storage.Open(ctx, cfg.StorageConfig())
	if err != nil {
		return err
	}
	defer closeStore()
	logger.Debug("store opened", "backend", cfg.Store, "path", cfg.StorePath)

	a := app.New(store, client.New(cfg.Server, nil), logger)
	if err := a.Load(ctx); err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	return fn(ctx, a, cmd.OutOrStdout())
}
