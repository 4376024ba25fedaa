// Package snapshot persists the catalog state between sessions.
//
// A snapshot holds exactly the games, their metadata and the active filter.
// The status index is derived data and is never written. Two backends are
// available: a JSON document replaced atomically on every save, and a SQLite
// database holding one row per snapshot name. Both take an advisory file
// lock so only one process owns a catalog at a time.
package snapshot
