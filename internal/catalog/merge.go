package catalog

import "slices"

// MergeResult is the outcome of folding a batch into a catalog.
type MergeResult struct {
	// Merged is the full catalog after the merge, sorted by name.
	Merged []Game
	// Added holds the incoming records whose key was not already present,
	// in the order they were first seen.
	Added []Game
	// Updated holds existing records whose sources changed, in catalog
	// scan order.
	Updated []Game
}

// MergeOption configures Merge.
type MergeOption func(*mergeConfig)

type mergeConfig struct {
	order NameOrder
	key   Key
}

// WithOrder sets the collation used to sort the merged catalog.
func WithOrder(order NameOrder) MergeOption {
	return func(c *mergeConfig) { c.order = order }
}

// WithKey sets the dedup key. The default is KeyName.
func WithKey(key Key) MergeOption {
	return func(c *mergeConfig) { c.key = key }
}

// Merge folds incoming into existing. The first record seen for a key (with
// existing scanned before incoming) survives; every later record with the same
// key contributes its sources to it. Records that received sources have
// duplicate sources removed. Neither input is modified.
func Merge(existing, incoming []Game, opts ...MergeOption) MergeResult {
	cfg := mergeConfig{key: KeyName}
	for _, opt := range opts {
		opt(&cfg)
	}

	total := len(existing) + len(incoming)
	merged := make([]Game, 0, total)
	firstSeen := make(map[string]int, total)
	touched := make(map[int]struct{})
	var addedAt []int
	var original [][]GameSource

	scan := func(g Game, isNew bool) {
		key := cfg.key.DedupKey(g)
		if idx, ok := firstSeen[key]; ok {
			merged[idx].Sources = append(merged[idx].Sources, g.Sources...)
			touched[idx] = struct{}{}
			return
		}
		if !isNew {
			original = append(original, g.Sources)
		}
		g.Sources = append([]GameSource(nil), g.Sources...)
		firstSeen[key] = len(merged)
		merged = append(merged, g)
		if isNew {
			addedAt = append(addedAt, len(merged)-1)
		}
	}
	for _, g := range existing {
		scan(g, false)
	}
	for _, g := range incoming {
		scan(g, true)
	}

	for idx := range touched {
		merged[idx].Sources = DedupSources(merged[idx].Sources)
	}

	added := make([]Game, 0, len(addedAt))
	for _, idx := range addedAt {
		added = append(added, merged[idx])
	}
	var updated []Game
	for idx := range original {
		if _, ok := touched[idx]; !ok {
			continue
		}
		if !slices.EqualFunc(original[idx], merged[idx].Sources, GameSource.equal) {
			updated = append(updated, merged[idx])
		}
	}

	cfg.order.Sort(merged)
	return MergeResult{Merged: merged, Added: added, Updated: updated}
}

// DedupSources returns sources with value-equal repeats removed, keeping the
// first occurrence of each.
func DedupSources(sources []GameSource) []GameSource {
	out := make([]GameSource, 0, len(sources))
	for _, src := range sources {
		dup := false
		for _, kept := range out {
			if kept.equal(src) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, src)
		}
	}
	return out
}
