package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"backlog/internal/fileutil"
)

// FileStore keeps the snapshot as an indented JSON document.
type FileStore struct {
	path string
	lock *flock.Flock
}

// OpenFile locks and returns a store for the JSON document at path. The
// document itself is created on the first save.
func OpenFile(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot directory: %w", err)
	}
	lock, err := acquireLock(path)
	if err != nil {
		return nil, err
	}
	return &FileStore{path: path, lock: lock}, nil
}

// Load reads the JSON document.
func (s *FileStore) Load(ctx context.Context) (State, bool, error) {
	if err := ctx.Err(); err != nil {
		return State{}, false, err
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return State{}.normalized(), false, nil
	}
	if err != nil {
		return State{}, false, fmt.Errorf("read snapshot: %w", err)
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return State{}, false, fmt.Errorf("decode snapshot %s: %w", s.path, err)
	}
	return state.normalized(), true, nil
}

// Save writes the document to a temporary file and renames it into place.
func (s *FileStore) Save(ctx context.Context, state State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(state.normalized(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	data = append(data, '\n')
	if err := fileutil.WriteFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Location returns the document path.
func (s *FileStore) Location() string { return s.path }

// Close releases the lock.
func (s *FileStore) Close() error {
	if s == nil {
		return nil
	}
	err := releaseLock(s.lock)
	s.lock = nil
	return err
}
