package testsupport

import (
	"path/filepath"
	"testing"

	"backlog/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Steam.APIKey = "test"
	cfgVal.Steam.BaseURL = "http://127.0.0.1:0"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithBackend selects the snapshot backend.
func WithBackend(backend string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Storage.Backend = backend
	}
}

// WithDedupKey sets the catalog dedup key.
func WithDedupKey(key string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Catalog.DedupKey = key
	}
}

// WithSteam points the Steam client at baseURL using apiKey.
func WithSteam(baseURL, apiKey string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Steam.BaseURL = baseURL
		b.cfg.Steam.APIKey = apiKey
	}
}

// WithNtfyTopic enables notifications to topic.
func WithNtfyTopic(topic string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Notifications.NtfyTopic = topic
	}
}
