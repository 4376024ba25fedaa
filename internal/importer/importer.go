package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"backlog/internal/backlog"
	"backlog/internal/catalog"
	"backlog/internal/logging"
	"backlog/internal/notifications"
	"backlog/internal/sources"
)

// Catalog is the part of the store an import needs.
type Catalog interface {
	AddGames(ctx context.Context, incoming []catalog.Game) (backlog.AddResult, error)
}

// Report summarizes one import attempt.
type Report struct {
	Source        string
	CorrelationID string
	Added         []catalog.Game
	Total         int
	Duration      time.Duration
}

// Message is the user-facing summary line.
func (r Report) Message() string {
	return notifications.ImportSummary(len(r.Added), r.Total)
}

// Importer merges adapter batches into a catalog.
type Importer struct {
	catalog  Catalog
	notifier notifications.Service
	logger   *slog.Logger
	newID    func() string
}

// New builds an importer. A nil notifier or logger disables that output.
func New(store Catalog, notifier notifications.Service, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = logging.NewNop()
	}
	if notifier == nil {
		notifier = notifications.Noop()
	}
	return &Importer{
		catalog:  store,
		notifier: notifier,
		logger:   logging.NewComponentLogger(logger, "importer"),
		newID:    uuid.NewString,
	}
}

// Run fetches a batch with adapter and merges it. When the adapter fails or
// ctx ends before it returns, the catalog is not touched and the error comes
// back as a *sources.FetchError. A persistence failure after a successful
// merge is returned alongside a populated report.
func (i *Importer) Run(ctx context.Context, source string, adapter sources.Adapter) (Report, error) {
	report := Report{Source: source, CorrelationID: i.newID()}
	ctx = logging.WithCorrelationID(ctx, report.CorrelationID)
	logger := logging.WithContext(ctx, i.logger).With(logging.String(logging.FieldSource, source))
	notifyCtx := context.WithoutCancel(ctx)
	start := time.Now()

	logger.Info("import started")
	games, err := adapter(ctx)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		var fetchErr *sources.FetchError
		if !errors.As(err, &fetchErr) {
			err = sources.Wrap(source, err)
		}
		report.Duration = time.Since(start)
		logging.ErrorWithContext(logger, "import failed", "import_failed",
			logging.Error(err),
			logging.Duration("duration", report.Duration),
			logging.String(logging.FieldImpact, "catalog unchanged"),
		)
		i.notify(logger, i.notifier.NotifyImportFailed(notifyCtx, source, err))
		return report, err
	}

	res, addErr := i.catalog.AddGames(ctx, games)
	report.Added = res.Added
	report.Total = len(res.Games)
	report.Duration = time.Since(start)
	logger.Info("import finished",
		logging.Int("fetched", len(games)),
		logging.Int("added", len(report.Added)),
		logging.Int("total", report.Total),
		logging.Duration("duration", report.Duration),
	)
	i.notify(logger, i.notifier.NotifyImportCompleted(notifyCtx, source, len(report.Added), report.Total))
	if addErr != nil {
		return report, fmt.Errorf("merge %s import: %w", source, addErr)
	}
	return report, nil
}

func (i *Importer) notify(logger *slog.Logger, err error) {
	if err == nil {
		return
	}
	logging.WarnWithContext(logger, "import notification failed", "notification_failed",
		logging.Error(err),
		logging.String(logging.FieldImpact, "import result was not pushed"),
	)
}
