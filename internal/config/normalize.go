package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeStorage()
	c.normalizeSteam()
	c.normalizeCatalog()
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(strings.TrimSpace(c.Paths.DataDir)); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeStorage() {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaultBackend
	}
	c.Storage.SnapshotName = strings.TrimSpace(c.Storage.SnapshotName)
	if c.Storage.SnapshotName == "" {
		c.Storage.SnapshotName = defaultSnapshotName
	}
}

func (c *Config) normalizeSteam() {
	c.Steam.APIKey = strings.TrimSpace(c.Steam.APIKey)
	if c.Steam.APIKey == "" {
		if value, ok := os.LookupEnv("STEAM_API_KEY"); ok {
			c.Steam.APIKey = strings.TrimSpace(value)
		}
	}
	c.Steam.BaseURL = strings.TrimRight(strings.TrimSpace(c.Steam.BaseURL), "/")
	if c.Steam.BaseURL == "" {
		c.Steam.BaseURL = defaultSteamBaseURL
	}
	if c.Steam.TimeoutSeconds <= 0 {
		c.Steam.TimeoutSeconds = defaultSteamTimeoutSeconds
	}
}

func (c *Config) normalizeCatalog() {
	c.Catalog.Locale = strings.TrimSpace(c.Catalog.Locale)
	if c.Catalog.Locale == "" {
		c.Catalog.Locale = defaultLocale
	}
	c.Catalog.DedupKey = strings.ToLower(strings.TrimSpace(c.Catalog.DedupKey))
	if c.Catalog.DedupKey == "" {
		c.Catalog.DedupKey = defaultDedupKey
	}
	// Names are matched exactly, so only empty entries are dropped.
	names := c.Catalog.IgnoredNames[:0]
	for _, name := range c.Catalog.IgnoredNames {
		if name != "" {
			names = append(names, name)
		}
	}
	c.Catalog.IgnoredNames = names
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.NtfyTopic == "" {
		if value, ok := os.LookupEnv("BACKLOG_NTFY_TOPIC"); ok {
			c.Notifications.NtfyTopic = strings.TrimSpace(value)
		}
	}
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.MaxSizeMB <= 0 {
		c.Logging.MaxSizeMB = defaultLogMaxSizeMB
	}
	if c.Logging.MaxBackups < 0 {
		c.Logging.MaxBackups = 0
	}
	if c.Logging.MaxAgeDays < 0 {
		c.Logging.MaxAgeDays = 0
	}
}
