// Package backend selects the storage implementation once at process start
// based on configuration, so nothing else branches on the backend type.
package backend

import (
	"fmt"

	"fintrack/internal/config"
	"fintrack/internal/log"
	"fintrack/internal/storage"
	"fintrack/internal/storage/memory"
	"fintrack/internal/storage/sqlite"
)

type Type string

const (
	Memory Type = "memory"
	SQLite Type = "sqlite"
)

func (t Type) IsValid() bool {
	return t == Memory || t == SQLite
}

// CleanupFunc releases backend resources at shutdown.
type CleanupFunc func() error

// Result bundles the selected store with its cleanup function, which may be
// nil when there is nothing to release.
type Result struct {
	Store   storage.Store
	Cleanup CleanupFunc
}

// New creates the store named by the configuration.
func New(cfg *config.Config, logger *log.Logger) (*Result, error) {
	if logger == nil {
		logger = log.New(log.Config{Component: log.ComponentBackend})
	}
	logger = logger.WithComponent(log.ComponentBackend)

	t := Type(cfg.DataBackend)
	switch t {
	case Memory:
		logger.Info("Initialized memory backend")
		return &Result{Store: memory.New()}, nil
	case SQLite:
		store, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		logger.Info("Initialized sqlite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Store: store, Cleanup: store.Close}, nil
	default:
		return nil, fmt.Errorf("invalid backend type: %s", cfg.DataBackend)
	}
}
