package catalog

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// NameOrder sorts games by display name using locale-aware collation.
// The zero value collates with English rules.
type NameOrder struct {
	tag language.Tag
}

// NewNameOrder returns an order collating for tag.
func NewNameOrder(tag language.Tag) NameOrder {
	return NameOrder{tag: tag}
}

// ParseNameOrder parses a BCP 47 locale such as "en" or "de-DE".
func ParseNameOrder(locale string) (NameOrder, error) {
	if strings.TrimSpace(locale) == "" {
		return NameOrder{}, nil
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return NameOrder{}, err
	}
	return NewNameOrder(tag), nil
}

// Locale reports the collation locale.
func (o NameOrder) Locale() language.Tag {
	if o.tag == language.Und {
		return language.English
	}
	return o.tag
}

// collator is not safe for concurrent use; each call builds its own.
func (o NameOrder) collator() *collate.Collator {
	return collate.New(o.Locale())
}

// Compare orders a before b by name. Names that collate equal fall back to
// byte order, then slug, so the result is a total order.
func (o NameOrder) Compare(a, b Game) int {
	return compareWith(o.collator(), a, b)
}

func compareWith(c *collate.Collator, a, b Game) int {
	if cmp := c.CompareString(a.Name, b.Name); cmp != 0 {
		return cmp
	}
	if cmp := strings.Compare(a.Name, b.Name); cmp != 0 {
		return cmp
	}
	return strings.Compare(a.Slug, b.Slug)
}

// Sort sorts games in place.
func (o NameOrder) Sort(games []Game) {
	c := o.collator()
	slices.SortStableFunc(games, func(a, b Game) int { return compareWith(c, a, b) })
}

// IsSorted reports whether games are in non-decreasing order.
func (o NameOrder) IsSorted(games []Game) bool {
	c := o.collator()
	return slices.IsSortedFunc(games, func(a, b Game) int { return compareWith(c, a, b) })
}
