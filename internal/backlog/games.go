package backlog

import (
	"context"
	"slices"

	"backlog/internal/catalog"
	"backlog/internal/logging"
)

// AddResult reports the outcome of AddGames.
type AddResult struct {
	// Games is the full catalog after the merge.
	Games []catalog.Game
	// Added holds the games that were not already in the catalog.
	Added []catalog.Game
}

// AddGames merges incoming into the catalog. When nothing new arrives the
// catalog is left as it was, including sources that would only have been
// unioned into existing games, and nothing is written. The returned Games is
// still the merged catalog.
//
// New games land in the bucket of whatever status their slug already has in
// metadata, which lets a re-imported game pick up its old status and note.
func (s *Store) AddGames(ctx context.Context, incoming []catalog.Game) (AddResult, error) {
	res := catalog.Merge(s.games, incoming, catalog.WithOrder(s.order), catalog.WithKey(s.key))
	if len(res.Added) == 0 {
		s.logger.Debug("no new games in batch", logging.Int("incoming", len(incoming)))
		return AddResult{Games: slices.Clone(res.Merged)}, nil
	}

	s.games = res.Merged
	s.index.Refresh(res.Updated)
	s.index.Insert(res.Added, s.meta)
	s.logger.Info("games added",
		logging.Int("added", len(res.Added)),
		logging.Int("updated", len(res.Updated)),
		logging.Int("total", len(s.games)),
	)
	return AddResult{Games: slices.Clone(res.Merged), Added: res.Added}, s.save(ctx, "add games")
}

// DeleteGame removes every record with slug from the catalog and the index.
// Metadata for the slug is kept. Deleting an unknown slug changes nothing and
// reports false.
func (s *Store) DeleteGame(ctx context.Context, slug string) (bool, error) {
	kept := slices.DeleteFunc(slices.Clone(s.games), func(g catalog.Game) bool { return g.Slug == slug })
	if len(kept) == len(s.games) {
		return false, nil
	}
	removed := len(s.games) - len(kept)
	s.games = kept
	status := s.meta.EffectiveStatus(slug)
	for i := 0; i < removed; i++ {
		if !s.index.Remove(slug, status) {
			logging.WarnWithContext(s.logger, "deleted game missing from index; rebuilding", "index_desync",
				logging.Slug(slug),
				logging.String(logging.FieldStatus, string(status)),
			)
			s.index.Rebuild(s.games, s.meta)
			break
		}
	}
	if s.selected != nil && s.selected.Slug == slug {
		s.selected = nil
		s.pendingNote = nil
	}
	s.logger.Info("game deleted", logging.Slug(slug))
	return true, s.save(ctx, "delete game")
}

// ClearGames empties the catalog and the index. Metadata is kept.
func (s *Store) ClearGames(ctx context.Context) error {
	if len(s.games) == 0 && s.index.Len() == 0 {
		return nil
	}
	cleared := len(s.games)
	s.games = []catalog.Game{}
	s.index.Clear()
	s.selected = nil
	s.pendingNote = nil
	s.logger.Info("catalog cleared", logging.Int("games", cleared))
	return s.save(ctx, "clear games")
}

// Games returns a copy of the catalog in name order.
func (s *Store) Games() []catalog.Game { return slices.Clone(s.games) }

// Len is the number of games in the catalog.
func (s *Store) Len() int { return len(s.games) }

// Game returns the first catalog record with slug.
func (s *Store) Game(slug string) (catalog.Game, bool) {
	i := slices.IndexFunc(s.games, func(g catalog.Game) bool { return g.Slug == slug })
	if i < 0 {
		return catalog.Game{}, false
	}
	return s.games[i], true
}
