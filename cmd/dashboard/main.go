// Command dashboard serves the agri-weather dashboard API. On startup it
// ingests the CWA forecast source document into SQLite (once per storage
// lifetime), then answers filter queries against the enriched dataset.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	httpadapter "github.com/couchcryptid/agri-weather-dashboard/internal/adapter/http"
	"github.com/couchcryptid/agri-weather-dashboard/internal/config"
	"github.com/couchcryptid/agri-weather-dashboard/internal/domain"
	"github.com/couchcryptid/agri-weather-dashboard/internal/enrich"
	"github.com/couchcryptid/agri-weather-dashboard/internal/ingest"
	"github.com/couchcryptid/agri-weather-dashboard/internal/observability"
	"github.com/couchcryptid/agri-weather-dashboard/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	table, err := cfg.CoordinateTable()
	if err != nil {
		logger.Error("failed to load coordinate table", "error", err)
		os.Exit(1)
	}
	resolver := domain.NewStaticResolver(table)

	db, err := store.Open(cfg.SQLitePath, logger)
	if err != nil {
		logger.Error("failed to open store", "error", err, "path", cfg.SQLitePath)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Ingestion failures degrade the service instead of killing it: the
	// server still answers health checks and reports "waiting for data".
	runner := ingest.NewRunner(db, logger, metrics)
	if err := runner.EnsureLoaded(ctx, cfg.SourcePath); err != nil {
		logger.Warn("ingestion failed, serving in degraded state",
			"error", err,
			"source", cfg.SourcePath,
		)
	}

	clock := clockwork.NewRealClock()
	dates := domain.NewCycleSynthesizer(cfg.DateCycleDays, clock)
	enricher := enrich.New(db, resolver, dates, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, enricher, runner, clock, logger, metrics)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := db.Close(); err != nil {
		logger.Error("store close error", "error", err)
	}

	logger.Info("shutdown complete")
}
