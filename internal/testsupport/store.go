package testsupport

import (
	"context"
	"errors"
	"testing"

	"backlog/internal/backlog"
	"backlog/internal/catalog"
	"backlog/internal/config"
	"backlog/internal/snapshot"
)

// MustOpenStore opens a backlog.Store backed by the configured snapshot and
// registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *backlog.Store {
	t.Helper()

	snap, err := snapshot.Open(cfg)
	if err != nil {
		t.Fatalf("snapshot.Open: %v", err)
	}
	key, _ := catalog.ParseKey(cfg.Catalog.DedupKey)
	store, err := backlog.Open(context.Background(), backlog.Options{Snapshot: snap, Key: key})
	if err != nil {
		_ = snap.Close()
		t.Fatalf("backlog.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close(context.Background())
	})
	return store
}

// ErrSaveFailed is returned by MemorySnapshot when FailSaves is set.
var ErrSaveFailed = errors.New("snapshot save failed")

// MemorySnapshot is an in-memory snapshot.Store that counts saves and can be
// told to fail them.
type MemorySnapshot struct {
	State     snapshot.State
	Found     bool
	Saves     int
	FailSaves bool
	Closed    bool
}

// Load implements snapshot.Store.
func (m *MemorySnapshot) Load(context.Context) (snapshot.State, bool, error) {
	return m.State, m.Found, nil
}

// Save implements snapshot.Store.
func (m *MemorySnapshot) Save(_ context.Context, state snapshot.State) error {
	if m.FailSaves {
		return ErrSaveFailed
	}
	m.Saves++
	m.State = snapshot.State{
		Games:    append([]catalog.Game(nil), state.Games...),
		Metadata: state.Metadata.Clone(),
		Filter:   state.Filter,
	}
	m.Found = true
	return nil
}

// Location implements snapshot.Store.
func (m *MemorySnapshot) Location() string { return "memory" }

// Close implements snapshot.Store.
func (m *MemorySnapshot) Close() error {
	m.Closed = true
	return nil
}
