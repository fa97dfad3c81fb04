// ABOUTME: Backend selection from configuration.
// ABOUTME: Maps the configured backend name to a concrete Backend.

package store

import (
	"fmt"
	"path/filepath"

	"github.com/harper/nowted/internal/config"
	"github.com/rs/zerolog"
)

// Open builds the configured backend and wraps it in a Store.
func Open(cfg *config.Config, log zerolog.Logger) (*Store, error) {
	var (
		backend Backend
		err     error
	)
	switch cfg.Backend {
	case config.BackendBadger:
		backend, err = NewBadger(filepath.Join(cfg.DataDir, "badger"), log)
	case config.BackendSQLite:
		backend, err = OpenSQLite(filepath.Join(cfg.DataDir, "nowted.db"))
	case config.BackendCharm:
		backend, err = NewCharm(cfg.CharmHost, WithAutoSync(cfg.AutoSync))
	case config.BackendMemory:
		backend = NewMemory()
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", cfg.Backend, err)
	}
	return New(backend, WithLogger(log)), nil
}

// WatchPath returns the directory whose changes signal writes from other
// processes, or "" when the backend has nothing to watch.
func WatchPath(cfg *config.Config) string {
	switch cfg.Backend {
	case config.BackendBadger:
		return filepath.Join(cfg.DataDir, "badger")
	case config.BackendSQLite:
		return cfg.DataDir
	}
	return ""
}
