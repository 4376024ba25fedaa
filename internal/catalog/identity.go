package catalog

import (
	"strings"
	"unicode"
)

// Slugify converts a display name into a URL-safe identifier: lowercased,
// whitespace runs become '-', anything outside [A-Za-z0-9_-] is dropped,
// repeated '-' collapse, and leading or trailing '-' are trimmed.
//
// Slugify is idempotent on its own output.
func Slugify(name string) string {
	lower := strings.ToLower(name)
	var b strings.Builder
	b.Grow(len(lower))
	pendingDash := false
	for _, r := range lower {
		switch {
		case isSlugSpace(r) || r == '-':
			pendingDash = true
		case isWordRune(r):
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isSlugSpace matches the whitespace set slugs have always been built with:
// the Unicode space separators plus tab, line breaks, vertical tab, form
// feed and the byte order mark. NEL (U+0085) is not included.
func isSlugSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\u2028', '\u2029', '\uFEFF':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

func isWordRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// NewGame builds a record with its slug derived from name. Adapters must use
// it so slug and name never disagree.
func NewGame(name string, sources ...GameSource) Game {
	return Game{
		Slug:    Slugify(name),
		Name:    name,
		Sources: append([]GameSource(nil), sources...),
	}
}

// Key selects how the merge engine recognizes two records as the same game.
type Key int

const (
	// KeyName matches records by exact name. Names that differ only in
	// punctuation or case remain distinct records that share a slug.
	KeyName Key = iota
	// KeySlug matches records by Slugify(name), so every slug in the catalog
	// is unique.
	KeySlug
)

// ParseKey maps a configuration value ("name", "slug") to a Key.
func ParseKey(value string) (Key, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "name":
		return KeyName, true
	case "slug":
		return KeySlug, true
	}
	return KeyName, false
}

func (k Key) String() string {
	if k == KeySlug {
		return "slug"
	}
	return "name"
}

// DedupKey returns the identity of g under k.
func (k Key) DedupKey(g Game) string {
	if k == KeySlug {
		return Slugify(g.Name)
	}
	return g.Name
}
