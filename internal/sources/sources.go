package sources

import (
	"context"
	"fmt"

	"backlog/internal/catalog"
)

// Adapter fetches one batch of games from a source.
type Adapter func(ctx context.Context) ([]catalog.Game, error)

// FetchError reports that an adapter failed. No games from the attempt may be
// merged.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s import failed: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Wrap returns err as a *FetchError for source. Nil stays nil.
func Wrap(source string, err error) error {
	if err == nil {
		return nil
	}
	return &FetchError{Source: source, Err: err}
}

// IgnoreList drops launcher entries that are not games. Matching is exact.
type IgnoreList struct {
	names map[string]struct{}
}

// NewIgnoreList builds an ignore list from names.
func NewIgnoreList(names []string) IgnoreList {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return IgnoreList{names: set}
}

// Ignored reports whether name is on the list.
func (l IgnoreList) Ignored(name string) bool {
	_, ok := l.names[name]
	return ok
}

// Filter returns games without ignored entries.
func (l IgnoreList) Filter(games []catalog.Game) []catalog.Game {
	if len(l.names) == 0 {
		return games
	}
	out := make([]catalog.Game, 0, len(games))
	for _, g := range games {
		if !l.Ignored(g.Name) {
			out = append(out, g)
		}
	}
	return out
}
