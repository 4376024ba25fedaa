package backlog

import (
	"context"
	"errors"
	"fmt"

	"backlog/internal/catalog"
	"backlog/internal/logging"
)

// MetadataPatch is a partial metadata update. Nil fields are left alone. Play
// status is not patchable here; use SetGamePlayStatus.
type MetadataPatch struct {
	IsFavorite *bool
	Message    *string
}

// SetGamePlayStatus records a new play status for slug, stamps the time of the
// change and moves the game between index buckets. Setting the current status
// again changes nothing.
//
// If the index does not hold the game where its metadata says it should be,
// the desync is logged, the metadata write still happens and the index is
// rebuilt from the catalog.
func (s *Store) SetGamePlayStatus(ctx context.Context, slug string, status catalog.PlayStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid play status %q", status)
	}
	records := s.countRecords(slug)
	if records == 0 {
		return fmt.Errorf("%w: %s", ErrUnknownGame, slug)
	}
	current := s.meta.EffectiveStatus(slug)
	if current == status {
		return nil
	}

	// Records with different names can share a slug; they share metadata and
	// therefore move together.
	var moveErr error
	for i := 0; i < records && moveErr == nil; i++ {
		moveErr = s.index.Move(slug, current, status)
	}

	meta := s.meta[slug].Clone()
	meta.PlayStatus = catalog.Ptr(status)
	if meta.StatusTimes == nil {
		meta.StatusTimes = make(map[catalog.PlayStatus]int64, 1)
	}
	meta.StatusTimes[status] = s.clock().UnixMilli()
	s.meta[slug] = meta

	if errors.Is(moveErr, catalog.ErrNotIndexed) {
		logging.WarnWithContext(s.logger, "game missing from expected status bucket; rebuilding index", "index_desync",
			logging.Slug(slug),
			logging.String("from", string(current)),
			logging.String("to", string(status)),
			logging.Error(moveErr),
		)
		s.index.Rebuild(s.games, s.meta)
	}

	s.logger.Debug("play status changed",
		logging.Slug(slug),
		logging.String("from", string(current)),
		logging.String("to", string(status)),
	)
	return s.save(ctx, "set play status")
}

// UpdateMetadata shallow-merges patch into the metadata for slug, creating
// the entry if needed. A patch that changes nothing is not written.
func (s *Store) UpdateMetadata(ctx context.Context, slug string, patch MetadataPatch) error {
	if _, ok := s.Game(slug); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownGame, slug)
	}
	meta, existed := s.meta[slug]
	meta = meta.Clone()
	changed := !existed && (patch.IsFavorite != nil || patch.Message != nil)
	if patch.IsFavorite != nil && (meta.IsFavorite == nil || *meta.IsFavorite != *patch.IsFavorite) {
		meta.IsFavorite = catalog.Ptr(*patch.IsFavorite)
		changed = true
	}
	if patch.Message != nil && (meta.Message == nil || *meta.Message != *patch.Message) {
		meta.Message = catalog.Ptr(*patch.Message)
		changed = true
	}
	if !changed {
		return nil
	}
	s.meta[slug] = meta
	s.logger.Debug("metadata updated", logging.Slug(slug))
	return s.save(ctx, "update metadata")
}

func (s *Store) countRecords(slug string) int {
	n := 0
	for _, g := range s.games {
		if g.Slug == slug {
			n++
		}
	}
	return n
}

// ToggleFavorite flips the favorite flag and returns the new value.
func (s *Store) ToggleFavorite(ctx context.Context, slug string) (bool, error) {
	if _, ok := s.Game(slug); !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownGame, slug)
	}
	next := !s.meta[slug].Favorite()
	return next, s.UpdateMetadata(ctx, slug, MetadataPatch{IsFavorite: &next})
}

// PruneMetadata drops metadata for slugs that are no longer in the catalog
// and returns how many entries were removed.
func (s *Store) PruneMetadata(ctx context.Context) (int, error) {
	present := make(map[string]struct{}, len(s.games))
	for _, g := range s.games {
		present[g.Slug] = struct{}{}
	}
	pruned := 0
	for slug := range s.meta {
		if _, ok := present[slug]; !ok {
			delete(s.meta, slug)
			pruned++
		}
	}
	if pruned == 0 {
		return 0, nil
	}
	s.logger.Info("orphaned metadata pruned", logging.Int("entries", pruned))
	return pruned, s.save(ctx, "prune metadata")
}

// Metadata returns a copy of all metadata.
func (s *Store) Metadata() catalog.SavedMetadata { return s.meta.Clone() }

// MetadataFor returns a copy of the metadata for slug, zero when absent.
func (s *Store) MetadataFor(slug string) catalog.GameMetadata { return s.meta[slug].Clone() }

// Status returns the effective play status for slug.
func (s *Store) Status(slug string) catalog.PlayStatus { return s.meta.EffectiveStatus(slug) }
