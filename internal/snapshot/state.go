package snapshot

import (
	"context"
	"errors"
	"slices"

	"backlog/internal/catalog"
)

// DefaultName is the snapshot name used when none is configured.
const DefaultName = "backlog-tracker"

var (
	// ErrLocked indicates another process holds the catalog lock.
	ErrLocked = errors.New("catalog is locked by another process")
	// ErrSchemaMismatch indicates the database schema version doesn't match the expected version.
	ErrSchemaMismatch = errors.New("schema version mismatch")
)

// State is the persisted portion of the catalog.
type State struct {
	Games    []catalog.Game        `json:"games"`
	Metadata catalog.SavedMetadata `json:"gamesMetadata"`
	Filter   catalog.Filter        `json:"filter"`
}

// normalized replaces nil collections so the encoded form is stable.
func (s State) normalized() State {
	if s.Games == nil {
		s.Games = []catalog.Game{}
	}
	for i := range s.Games {
		if s.Games[i].Sources == nil {
			s.Games = slices.Clone(s.Games)
			for j := range s.Games[i:] {
				if s.Games[i+j].Sources == nil {
					s.Games[i+j].Sources = []catalog.GameSource{}
				}
			}
			break
		}
	}
	if s.Metadata == nil {
		s.Metadata = catalog.SavedMetadata{}
	}
	return s
}

// Store loads and saves catalog state.
type Store interface {
	// Load returns the saved state. The boolean is false when nothing has
	// been saved yet, in which case the state is empty.
	Load(ctx context.Context) (State, bool, error)
	// Save replaces the saved state. A failed save leaves the previous
	// snapshot intact.
	Save(ctx context.Context, state State) error
	// Location describes where the snapshot lives, for logs.
	Location() string
	// Close releases the lock and any open handles.
	Close() error
}
