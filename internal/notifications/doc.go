// Package notifications reports import outcomes via ntfy.
//
// The ntfy implementation publishes to the topic configured in config.toml and
// degrades to a no-op when no topic is set. Callers depend only on Service.
package notifications
