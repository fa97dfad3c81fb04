// ABOUTME: Serve command running the HTTP views, JSON API and websocket feed.
// ABOUTME: Reloads the notebook when another process writes to the data directory.

package main

import (
	"context"

	"github.com/harper/nowted/internal/httpapi"
	"github.com/harper/nowted/internal/store"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Serve the notebook over HTTP. Repository changes stream to websocket clients on /ws.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.HTTPAddr
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		watchStore(ctx)

		server := httpapi.New(repo, logger)
		defer server.Close()
		return server.ListenAndServe(ctx, addr)
	},
}

// watchStore reloads the repository on writes from other processes, for
// backends that live in the data directory.
func watchStore(ctx context.Context) {
	dir := store.WatchPath(cfg)
	if dir == "" {
		return
	}
	go func() {
		if err := store.Watch(ctx, dir, store.DefaultDebounce, logger, repo.Reload); err != nil {
			logger.Warn().Err(err).Str("dir", dir).Msg("watch stopped")
		}
	}()
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config http_addr)")
	rootCmd.AddCommand(serveCmd)
}
