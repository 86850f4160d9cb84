package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/couchcryptid/agri-weather-dashboard/internal/domain"
	"github.com/couchcryptid/agri-weather-dashboard/internal/observability"
)

// Store is the slice of storage the ingestor needs.
type Store interface {
	EnsureSchema(ctx context.Context) error
	CountForecasts(ctx context.Context) (int64, error)
	InsertForecasts(ctx context.Context, records []domain.ForecastRecord) error
}

// Runner loads the source document into storage exactly once per storage
// lifetime. Idempotent by existence check: a non-empty table makes
// EnsureLoaded a no-op, regardless of content.
type Runner struct {
	store   Store
	logger  *slog.Logger
	metrics *observability.Metrics
	loaded  atomic.Bool
}

// NewRunner creates an ingestion runner.
func NewRunner(store Store, logger *slog.Logger, metrics *observability.Metrics) *Runner {
	return &Runner{store: store, logger: logger, metrics: metrics}
}

// CheckReadiness reports whether the table holds data. The service answers
// dashboard queries only after a successful (or previously completed) load.
func (r *Runner) CheckReadiness(_ context.Context) error {
	if !r.loaded.Load() {
		return errors.New("weather data has not been loaded yet")
	}
	return nil
}

// EnsureLoaded creates the weather table if needed and populates it from the
// source document when empty. All well-formed records are inserted in one
// transaction; entries with missing fields are skipped with a warning.
// Failures are surfaced to the caller but leave no partial table state.
func (r *Runner) EnsureLoaded(ctx context.Context, sourcePath string) error {
	if err := r.store.EnsureSchema(ctx); err != nil {
		return err
	}

	count, err := r.store.CountForecasts(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		r.logger.Info("weather table already populated, skipping ingestion", "rows", count)
		r.metrics.StoredRows.Set(float64(count))
		r.loaded.Store(true)
		return nil
	}

	records, skipped, err := ParseSource(sourcePath)
	if err != nil {
		r.metrics.IngestFailures.Inc()
		return err
	}
	for _, name := range skipped {
		r.logger.Warn("skipping incomplete source entry", "location", name)
	}
	r.metrics.EntriesSkipped.Add(float64(len(skipped)))

	if len(records) == 0 {
		r.metrics.IngestFailures.Inc()
		return fmt.Errorf("%w: no well-formed forecast locations", domain.ErrMalformedSource)
	}

	if err := r.store.InsertForecasts(ctx, records); err != nil {
		r.metrics.IngestFailures.Inc()
		return err
	}

	r.metrics.RowsIngested.Add(float64(len(records)))
	r.metrics.StoredRows.Set(float64(len(records)))
	r.loaded.Store(true)
	r.logger.Info("source document ingested",
		"source", sourcePath,
		"rows", len(records),
		"skipped", len(skipped),
	)
	return nil
}
