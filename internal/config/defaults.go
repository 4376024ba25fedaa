package config

const (
	// BackendJSON stores the snapshot as a single JSON document.
	BackendJSON = "json"
	// BackendSQLite stores the snapshot in a SQLite database.
	BackendSQLite = "sqlite"

	// DedupByName merges records whose display names are identical.
	DedupByName = "name"
	// DedupBySlug merges records whose slugs are identical.
	DedupBySlug = "slug"

	defaultDataDir             = "~/.local/share/backlog"
	defaultLogDir              = "~/.local/share/backlog/logs"
	defaultBackend             = BackendJSON
	defaultSnapshotName        = "backlog-tracker"
	defaultSteamBaseURL        = "https://api.steampowered.com"
	defaultSteamTimeoutSeconds = 15
	defaultLocale              = "en"
	defaultDedupKey            = DedupByName
	defaultNotifyTimeout       = 10
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultLogMaxSizeMB        = 10
	defaultLogMaxBackups       = 3
	defaultLogMaxAgeDays       = 30
)

// DefaultIgnoredNames lists launcher entries that are never games.
var DefaultIgnoredNames = []string{"Galaxy Common Redistributables"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Storage: Storage{
			Backend:      defaultBackend,
			SnapshotName: defaultSnapshotName,
		},
		Steam: Steam{
			BaseURL:        defaultSteamBaseURL,
			TimeoutSeconds: defaultSteamTimeoutSeconds,
		},
		Catalog: Catalog{
			Locale:       defaultLocale,
			DedupKey:     defaultDedupKey,
			IgnoredNames: append([]string(nil), DefaultIgnoredNames...),
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
		},
		Logging: Logging{
			Format:     defaultLogFormat,
			Level:      defaultLogLevel,
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
			MaxAgeDays: defaultLogMaxAgeDays,
		},
	}
}
