// Package sources holds the contract shared by import adapters.
//
// An adapter runs to completion and returns a fully formed batch of canonical
// games, or an error and no games. Records whose name is on the ignore list
// are dropped before the batch is returned.
package sources
