// Package preflight provides readiness checks for the paths and services
// backlog depends on.
//
// The CLI "backlog doctor" command runs them and prints one status line per
// check. Checks for optional features (Steam import, ntfy notifications)
// pass with a "not configured" detail when the feature is off.
package preflight
