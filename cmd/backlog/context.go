package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"backlog/internal/backlog"
	"backlog/internal/catalog"
	"backlog/internal/config"
	"backlog/internal/logging"
	"backlog/internal/notifications"
	"backlog/internal/snapshot"
	"backlog/internal/sources"
)

type commandContext struct {
	configFlag  *string
	verboseFlag *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		verboseFlag: verboseFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		verbose := c.verboseFlag != nil && *c.verboseFlag
		logger, err := logging.New(logging.OptionsFromConfig(c.config, verbose))
		if err != nil {
			logger = logging.NewNop()
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) notifier() notifications.Service {
	if c.config == nil {
		return notifications.Noop()
	}
	return notifications.NewService(c.config)
}

func (c *commandContext) ignoreList() sources.IgnoreList {
	if c.config == nil {
		return sources.NewIgnoreList(config.DefaultIgnoredNames)
	}
	return sources.NewIgnoreList(c.config.Catalog.IgnoredNames)
}

func (c *commandContext) openStore(ctx context.Context) (*backlog.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	order, err := catalog.ParseNameOrder(cfg.Catalog.Locale)
	if err != nil {
		return nil, fmt.Errorf("catalog locale: %w", err)
	}
	key, ok := catalog.ParseKey(cfg.Catalog.DedupKey)
	if !ok {
		return nil, fmt.Errorf("catalog dedup key: unsupported value %q", cfg.Catalog.DedupKey)
	}
	snap, err := snapshot.Open(cfg)
	if err != nil {
		if errors.Is(err, snapshot.ErrLocked) {
			return nil, fmt.Errorf("%w; is another backlog command running?", err)
		}
		return nil, err
	}
	store, err := backlog.Open(ctx, backlog.Options{
		Snapshot: snap,
		Logger:   c.ensureLogger(),
		Order:    order,
		Key:      key,
	})
	if err != nil {
		_ = snap.Close()
		return nil, err
	}
	return store, nil
}

// withStore opens the catalog, runs fn and closes the catalog. A failed
// close is reported unless fn already failed.
func (c *commandContext) withStore(cmd *cobra.Command, fn func(*backlog.Store) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	runErr := fn(store)
	closeErr := store.Close(context.WithoutCancel(ctx))
	if runErr != nil {
		return runErr
	}
	return closeErr
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
