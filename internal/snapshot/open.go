package snapshot

import (
	"fmt"

	"backlog/internal/config"
)

// Open returns the backend selected by cfg.Storage.Backend.
func Open(cfg *config.Config) (Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		return OpenSQLite(cfg.SnapshotPath(), cfg.Storage.SnapshotName)
	case config.BackendJSON, "":
		return OpenFile(cfg.SnapshotPath())
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
	}
}
