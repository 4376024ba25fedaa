// Package config loads, normalizes, and validates backlog configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// STEAM_API_KEY. The Config type centralizes every knob the CLI and the
// catalog store need so data directories, storage backend, and import
// credentials are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
