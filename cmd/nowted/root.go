// ABOUTME: Root command wiring configuration, logging and the notebook.
// ABOUTME: Every subcommand runs against the repository opened here.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/harper/nowted/internal/config"
	"github.com/harper/nowted/internal/logging"
	"github.com/harper/nowted/internal/notebook"
	"github.com/harper/nowted/internal/store"
	"github.com/harper/nowted/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfg      *config.Config
	logger   zerolog.Logger
	dataBase *store.Store
	repo     *notebook.Repository
)

var rootCmd = &cobra.Command{
	Use:   "nowted",
	Short: "Folders and rich-text notes",
	Long: `nowted keeps notes in folders, with a trash for deleted folders and a
short list of recent notes. Notes are plain paragraphs with inline formatting.`,
	Version:       fmt.Sprintf("%s (%s, %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")

		var err error
		if configPath != "" {
			cfg, err = config.LoadFrom(configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		if cmd.Flags().Changed("backend") {
			cfg.Backend, _ = cmd.Flags().GetString("backend")
		}
		if cmd.Flags().Changed("data-dir") {
			cfg.DataDir, _ = cmd.Flags().GetString("data-dir")
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger = logging.New(os.Stderr, cfg.LogLevel)

		if err := os.MkdirAll(cfg.DataDir, 0o750); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
		dataBase, err = store.Open(cfg, logger)
		if err != nil {
			return err
		}
		repo = notebook.New(dataBase, notebook.WithLogger(logger))
		logger.Debug().Str("backend", cfg.Backend).Str("data_dir", cfg.DataDir).Msg("notebook opened")
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if dataBase != nil {
			return dataBase.Close()
		}
		return nil
	},
}

// Execute runs the root command with a context cancelled on SIGINT/SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default $XDG_CONFIG_HOME/nowted/config.yaml)")
	rootCmd.PersistentFlags().String("backend", "", "storage backend (badger|sqlite|charm|memory)")
	rootCmd.PersistentFlags().String("data-dir", "", "data directory")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug|info|warn|error)")
}
