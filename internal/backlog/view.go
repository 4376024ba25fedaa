package backlog

import (
	"context"
	"fmt"

	"backlog/internal/catalog"
	"backlog/internal/logging"
)

// FilterPatch is a partial filter update. Nil fields are left alone; the
// Clear flags remove a platform or storefront restriction.
type FilterPatch struct {
	Search          *string
	Platform        *catalog.Platform
	Storefront      *catalog.Storefront
	ClearPlatform   bool
	ClearStorefront bool
}

// IndexReader is the read-only view of the status index.
type IndexReader interface {
	Bucket(status catalog.PlayStatus) []catalog.Game
	Counts() map[catalog.PlayStatus]int
	Locate(slug string) (catalog.PlayStatus, bool)
	Len() int
	Version() uint64
}

// Index exposes the status index for reading.
func (s *Store) Index() IndexReader { return s.index }

// Filter returns the active filter.
func (s *Store) Filter() catalog.Filter { return s.filter }

// View returns every status section in display order with the active filter
// applied.
func (s *Store) View() []catalog.Section { return catalog.Project(s.index, s.filter) }

// ViewWith projects the index through filter without touching the saved one.
func (s *Store) ViewWith(filter catalog.Filter) []catalog.Section {
	return catalog.Project(s.index, filter)
}

// UpdateFilter shallow-merges patch into the active filter. The filter is
// persisted so it survives the session.
func (s *Store) UpdateFilter(ctx context.Context, patch FilterPatch) error {
	next := s.filter
	if patch.Search != nil {
		next.Search = *patch.Search
	}
	if patch.ClearPlatform {
		next.Platform = nil
	} else if patch.Platform != nil {
		next.Platform = catalog.Ptr(*patch.Platform)
	}
	if patch.ClearStorefront {
		next.Storefront = nil
	} else if patch.Storefront != nil {
		next.Storefront = catalog.Ptr(*patch.Storefront)
	}
	if filtersEqual(next, s.filter) {
		return nil
	}
	s.filter = next
	return s.save(ctx, "update filter")
}

// ResetFilter clears every filter field.
func (s *Store) ResetFilter(ctx context.Context) error {
	return s.UpdateFilter(ctx, FilterPatch{Search: new(string), ClearPlatform: true, ClearStorefront: true})
}

func filtersEqual(a, b catalog.Filter) bool {
	return a.Search == b.Search && equalPtr(a.Platform, b.Platform) && equalPtr(a.Storefront, b.Storefront)
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Selected returns the selected game, or nil.
func (s *Store) Selected() *catalog.Game {
	if s.selected == nil {
		return nil
	}
	g := *s.selected
	return &g
}

// SetSelectedGame changes the selection. Any pending note for the previous
// selection is committed to its metadata first.
func (s *Store) SetSelectedGame(ctx context.Context, game *catalog.Game) error {
	if s.selected != nil && game != nil && s.selected.Slug == game.Slug {
		return nil
	}
	err := s.commitPendingNote(ctx)
	if game == nil {
		s.selected = nil
		return err
	}
	g := *game
	s.selected = &g
	return err
}

// SetPendingNote stages note text for the selected game. It is written to
// metadata when the selection changes or the store closes.
func (s *Store) SetPendingNote(text string) error {
	if s.selected == nil {
		return ErrNoSelection
	}
	s.pendingNote = &text
	return nil
}

func (s *Store) commitPendingNote(ctx context.Context) error {
	if s.selected == nil || s.pendingNote == nil {
		return nil
	}
	slug, note := s.selected.Slug, *s.pendingNote
	s.pendingNote = nil
	if err := s.UpdateMetadata(ctx, slug, MetadataPatch{Message: &note}); err != nil {
		return fmt.Errorf("commit note for %s: %w", slug, err)
	}
	return nil
}

// CheckConsistency verifies the index against the catalog and metadata and
// that every slug is derived from its name.
func (s *Store) CheckConsistency() error {
	for _, g := range s.games {
		if want := catalog.Slugify(g.Name); g.Slug != want {
			return fmt.Errorf("game %q has slug %q, want %q", g.Name, g.Slug, want)
		}
	}
	if !s.order.IsSorted(s.games) {
		return fmt.Errorf("catalog is not sorted by name")
	}
	if err := s.index.Verify(s.games, s.meta); err != nil {
		logging.WarnWithContext(s.logger, "status index inconsistent", "index_desync", logging.Error(err))
		return err
	}
	return nil
}
