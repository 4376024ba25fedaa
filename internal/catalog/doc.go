// Package catalog defines the canonical game record and the pure logic that
// maintains a deduplicated, sorted catalog.
//
// Adapters build Game values through NewGame so the slug is always derived
// from the name. Merge folds a freshly adapted batch into an existing catalog,
// unioning sources of records that share a dedup key. StatusIndex groups the
// catalog by effective play status and is patched incrementally by the store;
// it is a cache over {games, metadata} and Verify checks it against them.
//
// Nothing in this package performs I/O or keeps global state.
package catalog
