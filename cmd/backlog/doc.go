// Command backlog is the command-line front end for the game backlog catalog.
//
// Every command loads config.toml, opens the catalog snapshot (taking the
// single-owner lock), runs one store operation and closes the store, which
// flushes the snapshot. Imports fetch a complete batch before anything is
// merged, so an interrupted import leaves the catalog unchanged.
package main
