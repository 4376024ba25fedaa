package catalog

import "strings"

// Section is one status group of the projected view.
type Section struct {
	Status PlayStatus
	Title  string
	Games  []Game
}

// Matches reports whether g passes the filter.
func (f Filter) Matches(g Game) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(g.Name), strings.ToLower(f.Search)) {
		return false
	}
	if f.Platform != nil && !g.HasPlatform(*f.Platform) {
		return false
	}
	if f.Storefront != nil && !g.HasStorefront(*f.Storefront) {
		return false
	}
	return true
}

// IsZero reports whether the filter lets every game through.
func (f Filter) IsZero() bool {
	return f.Search == "" && f.Platform == nil && f.Storefront == nil
}

// Project returns the index in display order with the filter applied. Every
// status gets a section, possibly empty, and games keep bucket order.
func Project(index *StatusIndex, filter Filter) []Section {
	sections := make([]Section, 0, len(DisplayOrder))
	for _, s := range DisplayOrder {
		bucket := index.buckets[s]
		games := make([]Game, 0, len(bucket))
		for _, g := range bucket {
			if filter.Matches(g) {
				games = append(games, g)
			}
		}
		sections = append(sections, Section{Status: s, Title: s.Title(), Games: games})
	}
	return sections
}

// PlatformsOf lists the distinct platforms present across games, in
// declaration order.
func PlatformsOf(games []Game) []Platform {
	seen := make(map[Platform]bool)
	for _, g := range games {
		for _, src := range g.Sources {
			seen[src.Platform] = true
		}
	}
	out := make([]Platform, 0, len(seen))
	for _, p := range Platforms {
		if seen[p] {
			out = append(out, p)
		}
	}
	return out
}
