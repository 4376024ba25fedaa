// Package backlog owns the in-memory catalog, its metadata, the status index
// and the view filter, and persists a snapshot after every change.
//
// A Store is created once per session with Open, passed explicitly to every
// consumer, and torn down with Close, which flushes a final snapshot and
// releases the persistence lock. Each operation runs to completion before the
// next begins; the store is not safe for concurrent use.
//
// Play status changes only go through SetGamePlayStatus so the index and the
// metadata stay in step. MetadataPatch deliberately has no status field.
//
// Metadata is kept when a game is deleted or the catalog is cleared so that
// notes and statuses survive a later re-import. PruneMetadata drops entries
// for games no longer in the catalog.
package backlog
