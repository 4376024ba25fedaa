package backlog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"backlog/internal/catalog"
	"backlog/internal/logging"
	"backlog/internal/snapshot"
)

var (
	// ErrUnknownGame indicates no game with the given slug is in the catalog.
	ErrUnknownGame = errors.New("unknown game")
	// ErrPersist indicates the snapshot could not be written. The in-memory
	// change was kept and the session continues without persistence.
	ErrPersist = errors.New("persist catalog")
	// ErrNoSelection indicates a note was edited without a selected game.
	ErrNoSelection = errors.New("no game selected")
)

// Options configures a Store.
type Options struct {
	// Snapshot persists state between sessions. Nil keeps the catalog in memory.
	Snapshot snapshot.Store
	Logger   *slog.Logger
	Order    catalog.NameOrder
	Key      catalog.Key
	// Clock stamps status changes. Defaults to time.Now.
	Clock func() time.Time
}

// Store is the single owner of catalog state for a session.
type Store struct {
	games  []catalog.Game
	meta   catalog.SavedMetadata
	filter catalog.Filter
	index  *catalog.StatusIndex

	selected    *catalog.Game
	pendingNote *string

	persist  snapshot.Store
	degraded bool
	order    catalog.NameOrder
	key      catalog.Key
	clock    func() time.Time
	logger   *slog.Logger
}

// Open builds a store from the saved snapshot, or from empty defaults when
// none exists, and indexes it before returning.
func Open(ctx context.Context, opts Options) (*Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	s := &Store{
		meta:    catalog.SavedMetadata{},
		persist: opts.Snapshot,
		order:   opts.Order,
		key:     opts.Key,
		clock:   clock,
		logger:  logging.NewComponentLogger(logger, "store"),
	}

	if s.persist != nil {
		state, found, err := s.persist.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load snapshot: %w", err)
		}
		if found {
			s.games = state.Games
			s.meta = state.Metadata.Clone()
			s.filter = state.Filter
		}
		s.logger.Debug("snapshot loaded",
			logging.String("location", s.persist.Location()),
			logging.Bool("found", found),
			logging.Int("games", len(s.games)),
		)
	}
	if s.meta == nil {
		s.meta = catalog.SavedMetadata{}
	}
	for _, slug := range s.meta.DropInvalidStatuses() {
		logging.WarnWithContext(s.logger, "unknown play status in snapshot; treating as not started", "invalid_status",
			logging.Slug(slug),
			logging.String(logging.FieldImpact, "game listed as "+string(catalog.DefaultStatus)),
		)
	}
	if !s.order.IsSorted(s.games) {
		s.order.Sort(s.games)
	}
	s.index = catalog.NewStatusIndex(s.order)
	s.index.Rebuild(s.games, s.meta)
	return s, nil
}

// Close commits any pending note, flushes a final snapshot and releases the
// persistence backend.
func (s *Store) Close(ctx context.Context) error {
	var errs []error
	if err := s.commitPendingNote(ctx); err != nil {
		errs = append(errs, err)
	}
	if s.persist != nil {
		if !s.degraded {
			if err := s.persist.Save(ctx, s.state()); err != nil {
				errs = append(errs, fmt.Errorf("%w: final flush: %v", ErrPersist, err))
			}
		}
		if err := s.persist.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close snapshot: %w", err))
		}
		s.persist = nil
	}
	return errors.Join(errs...)
}

// Degraded reports whether a snapshot write failed this session. Once
// degraded, the store stops writing and changes live only in memory.
func (s *Store) Degraded() bool { return s.degraded }

func (s *Store) state() snapshot.State {
	return snapshot.State{Games: s.games, Metadata: s.meta, Filter: s.filter}
}

// save writes the current state. A failure degrades the session and is
// returned wrapped in ErrPersist; the in-memory change is not rolled back.
func (s *Store) save(ctx context.Context, op string) error {
	if s.persist == nil || s.degraded {
		return nil
	}
	if err := s.persist.Save(ctx, s.state()); err != nil {
		s.degraded = true
		logging.ErrorWithContext(s.logger, "snapshot write failed; continuing in memory", "persist_failed",
			logging.String("operation", op),
			logging.String("location", s.persist.Location()),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check free space and permissions on the data directory"),
			logging.String(logging.FieldImpact, "changes from this session will not be saved"),
		)
		return fmt.Errorf("%w: %s: %v", ErrPersist, op, err)
	}
	return nil
}
