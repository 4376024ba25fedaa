package catalog

import (
	"errors"
	"fmt"
	"slices"
)

// ErrNotIndexed reports that a game was not found in the bucket it was
// expected in. The index is stale and should be rebuilt.
var ErrNotIndexed = errors.New("game not indexed under expected status")

// StatusIndex partitions a catalog by effective play status. Every bucket is
// sorted by name. Version increases on every change so callers can detect
// updates cheaply.
type StatusIndex struct {
	order   NameOrder
	buckets map[PlayStatus][]Game
	version uint64
}

// NewStatusIndex returns an empty index with all buckets present.
func NewStatusIndex(order NameOrder) *StatusIndex {
	x := &StatusIndex{order: order}
	x.reset()
	return x
}

func (x *StatusIndex) reset() {
	x.buckets = make(map[PlayStatus][]Game, len(Statuses))
	for _, s := range Statuses {
		x.buckets[s] = []Game{}
	}
}

// Rebuild discards the current contents and re-partitions games. Each bucket
// inherits the relative order of games, which is expected to be sorted.
func (x *StatusIndex) Rebuild(games []Game, meta SavedMetadata) {
	x.reset()
	for _, g := range games {
		s := meta.EffectiveStatus(g.Slug)
		x.buckets[s] = append(x.buckets[s], g)
	}
	for _, s := range Statuses {
		if !x.order.IsSorted(x.buckets[s]) {
			x.order.Sort(x.buckets[s])
		}
	}
	x.version++
}

// Clear empties every bucket.
func (x *StatusIndex) Clear() {
	x.reset()
	x.version++
}

// Move relocates the game with slug from one bucket to another, keeping the
// destination sorted. Moving to the same status is a no-op. If the game is
// not in from, the index is left untouched and ErrNotIndexed is returned.
func (x *StatusIndex) Move(slug string, from, to PlayStatus) error {
	if from == to {
		return nil
	}
	src := x.buckets[from]
	i := indexOfSlug(src, slug)
	if i < 0 {
		return fmt.Errorf("move %q from %q: %w", slug, from, ErrNotIndexed)
	}
	g := src[i]
	x.buckets[from] = slices.Delete(slices.Clone(src), i, i+1)
	x.buckets[to] = x.insertSorted(x.buckets[to], g)
	x.version++
	return nil
}

// Remove deletes the game with slug from the status bucket. It reports
// whether anything was removed.
func (x *StatusIndex) Remove(slug string, status PlayStatus) bool {
	bucket := x.buckets[status]
	i := indexOfSlug(bucket, slug)
	if i < 0 {
		return false
	}
	x.buckets[status] = slices.Delete(slices.Clone(bucket), i, i+1)
	x.version++
	return true
}

// Insert adds games to the buckets matching their effective status and
// re-sorts only the buckets that changed.
func (x *StatusIndex) Insert(games []Game, meta SavedMetadata) {
	if len(games) == 0 {
		return
	}
	changed := make(map[PlayStatus]struct{})
	for _, g := range games {
		s := meta.EffectiveStatus(g.Slug)
		if _, ok := changed[s]; !ok {
			x.buckets[s] = slices.Clone(x.buckets[s])
			changed[s] = struct{}{}
		}
		x.buckets[s] = append(x.buckets[s], g)
	}
	for s := range changed {
		x.order.Sort(x.buckets[s])
	}
	x.version++
}

// Refresh replaces indexed records with the given versions, matched by slug
// and name. Names are unchanged so bucket order is preserved. It returns the
// number of records replaced.
func (x *StatusIndex) Refresh(games []Game) int {
	replaced := 0
	for _, g := range games {
		for _, s := range Statuses {
			bucket := x.buckets[s]
			i := slices.IndexFunc(bucket, func(cur Game) bool { return cur.Slug == g.Slug && cur.Name == g.Name })
			if i < 0 {
				continue
			}
			bucket = slices.Clone(bucket)
			bucket[i] = g
			x.buckets[s] = bucket
			replaced++
			break
		}
	}
	if replaced > 0 {
		x.version++
	}
	return replaced
}

func (x *StatusIndex) insertSorted(bucket []Game, g Game) []Game {
	c := x.order.collator()
	pos, _ := slices.BinarySearchFunc(bucket, g, func(a, b Game) int { return compareWith(c, a, b) })
	out := make([]Game, 0, len(bucket)+1)
	out = append(out, bucket[:pos]...)
	out = append(out, g)
	return append(out, bucket[pos:]...)
}

func indexOfSlug(games []Game, slug string) int {
	return slices.IndexFunc(games, func(g Game) bool { return g.Slug == slug })
}

// Bucket returns a copy of the games with status s.
func (x *StatusIndex) Bucket(s PlayStatus) []Game {
	return slices.Clone(x.buckets[s])
}

// Locate returns the status whose bucket holds slug.
func (x *StatusIndex) Locate(slug string) (PlayStatus, bool) {
	for _, s := range Statuses {
		if indexOfSlug(x.buckets[s], slug) >= 0 {
			return s, true
		}
	}
	return "", false
}

// Counts returns the size of every bucket.
func (x *StatusIndex) Counts() map[PlayStatus]int {
	out := make(map[PlayStatus]int, len(Statuses))
	for _, s := range Statuses {
		out[s] = len(x.buckets[s])
	}
	return out
}

// Len is the total number of indexed games.
func (x *StatusIndex) Len() int {
	n := 0
	for _, bucket := range x.buckets {
		n += len(bucket)
	}
	return n
}

// Version increases every time the index changes.
func (x *StatusIndex) Version() uint64 { return x.version }

// Slugs returns the slugs in each bucket, in bucket order.
func (x *StatusIndex) Slugs() map[PlayStatus][]string {
	out := make(map[PlayStatus][]string, len(Statuses))
	for _, s := range Statuses {
		slugs := make([]string, 0, len(x.buckets[s]))
		for _, g := range x.buckets[s] {
			slugs = append(slugs, g.Slug)
		}
		out[s] = slugs
	}
	return out
}

// Verify checks that the index is exactly the partition of games by effective
// status and that every bucket is sorted.
func (x *StatusIndex) Verify(games []Game, meta SavedMetadata) error {
	if len(x.buckets) != len(Statuses) {
		return fmt.Errorf("index has %d buckets, want %d", len(x.buckets), len(Statuses))
	}
	want := make(map[PlayStatus]map[string]int, len(Statuses))
	for _, g := range games {
		s := meta.EffectiveStatus(g.Slug)
		if want[s] == nil {
			want[s] = make(map[string]int)
		}
		want[s][g.Slug+"\x00"+g.Name]++
	}
	for _, s := range Statuses {
		bucket := x.buckets[s]
		got := make(map[string]int, len(bucket))
		for _, g := range bucket {
			got[g.Slug+"\x00"+g.Name]++
		}
		if len(got) != len(want[s]) {
			return fmt.Errorf("bucket %q holds %d games, want %d", s, len(bucket), countAll(want[s]))
		}
		for k, n := range want[s] {
			if got[k] != n {
				return fmt.Errorf("bucket %q: game %q indexed %d times, want %d", s, displayKey(k), got[k], n)
			}
		}
		if !x.order.IsSorted(bucket) {
			return fmt.Errorf("bucket %q is not sorted by name", s)
		}
	}
	return nil
}

func countAll(m map[string]int) int {
	n := 0
	for _, v := range m {
		n += v
	}
	return n
}

func displayKey(k string) string {
	for i := 0; i < len(k); i++ {
		if k[i] == 0 {
			return k[i+1:]
		}
	}
	return k
}
