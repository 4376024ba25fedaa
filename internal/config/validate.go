package config

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateStorage(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateStorage() error {
	switch c.Storage.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("storage.backend: unsupported value %q (use %q or %q)", c.Storage.Backend, BackendJSON, BackendSQLite)
	}
	if strings.ContainsAny(c.Storage.SnapshotName, `/\`) {
		return errors.New("storage.snapshot_name must not contain path separators")
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if _, err := language.Parse(c.Catalog.Locale); err != nil {
		return fmt.Errorf("catalog.locale: %w", err)
	}
	switch c.Catalog.DedupKey {
	case DedupByName, DedupBySlug:
	default:
		return fmt.Errorf("catalog.dedup_key: unsupported value %q (use %q or %q)", c.Catalog.DedupKey, DedupByName, DedupBySlug)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

// RequireSteam reports whether the Steam import can run with this config.
func (c *Config) RequireSteam() error {
	if c.Steam.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/backlog/config.toml"
		}
		return fmt.Errorf("steam.api_key is required for Steam imports. Set STEAM_API_KEY env var or edit %s (create with 'backlog config init')", defaultPath)
	}
	return nil
}
