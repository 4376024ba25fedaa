// Package importer runs a source adapter to completion and merges the result
// into the catalog store. Every attempt gets a correlation id for the logs and
// sends exactly one notification, success or failure.
package importer
