// Package http exposes the dashboard API consumed by the browser UI, plus
// health, readiness, and metrics endpoints.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/agri-weather-dashboard/internal/domain"
	"github.com/couchcryptid/agri-weather-dashboard/internal/enrich"
	"github.com/couchcryptid/agri-weather-dashboard/internal/observability"
	"github.com/couchcryptid/agri-weather-dashboard/internal/query"
)

const dateLayout = "2006-01-02"

// Enricher supplies the current enriched snapshot of the store.
type Enricher interface {
	LoadAndEnrich(ctx context.Context) (enrich.Snapshot, error)
}

// ReadinessChecker reports whether the service is ready to serve data.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the dashboard API and operational HTTP endpoints.
type Server struct {
	httpServer *http.Server
	enricher   Enricher
	clock      clockwork.Clock
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer creates an HTTP server with the dashboard API under /api/ and
// /healthz, /readyz, /metrics operational routes.
func NewServer(addr string, enricher Enricher, ready ReadinessChecker, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		enricher: enricher,
		clock:    clock,
		logger:   logger,
		metrics:  metrics,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /api/locations", s.handleLocations)
	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func (s *Server) handleLocations(w http.ResponseWriter, r *http.Request) {
	snap, err := s.enricher.LoadAndEnrich(r.Context())
	if err != nil {
		s.writeLoadError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"locations": snap.Locations})
}

// recordPayload is the wire shape of one enriched record; dates are plain
// calendar days.
type recordPayload struct {
	ID          int64   `json:"id"`
	Location    string  `json:"location"`
	MinTemp     float64 `json:"min_temp"`
	MaxTemp     float64 `json:"max_temp"`
	Description string  `json:"description"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Date        string  `json:"date"`
}

type aggregatesPayload struct {
	AvgMaxTemp float64 `json:"avg_max_temp"`
	AvgMinTemp float64 `json:"avg_min_temp"`
	// Extended metrics, omitted when extended=false.
	GrowingDegreeDays *float64 `json:"growing_degree_days,omitempty"`
	HumidityIndex     *float64 `json:"humidity_index,omitempty"`
}

type dashboardResponse struct {
	Records    []recordPayload    `json:"records"`
	Count      int                `json:"count"`
	NoData     bool               `json:"no_data,omitempty"`
	Aggregates *aggregatesPayload `json:"aggregates,omitempty"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	params, err := s.parseDashboardParams(r)
	if err != nil {
		s.metrics.DashboardRequests.WithLabelValues("bad_request").Inc()
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	snap, err := s.enricher.LoadAndEnrich(r.Context())
	if err != nil {
		s.writeLoadError(w, err)
		return
	}

	filtered := query.Filter(snap.Records, params.start, params.end, params.location)
	if len(filtered) == 0 {
		// No aggregates over an empty selection; the UI shows a
		// "no data for this filter" state instead.
		s.metrics.DashboardRequests.WithLabelValues("no_data").Inc()
		writeJSON(w, http.StatusOK, dashboardResponse{
			Records: []recordPayload{},
			NoData:  true,
		})
		return
	}

	agg, err := query.Aggregate(filtered)
	if err != nil {
		s.metrics.DashboardRequests.WithLabelValues("error").Inc()
		s.logger.Error("aggregate failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to aggregate records"})
		return
	}

	payload := &aggregatesPayload{
		AvgMaxTemp: agg.AvgMaxTemp,
		AvgMinTemp: agg.AvgMinTemp,
	}
	if params.extended {
		payload.GrowingDegreeDays = &agg.GrowingDegreeDays
		payload.HumidityIndex = &agg.HumidityIndex
	}

	records := make([]recordPayload, 0, len(filtered))
	for _, rec := range filtered {
		records = append(records, recordPayload{
			ID:          rec.ID,
			Location:    rec.Location,
			MinTemp:     rec.MinTemp,
			MaxTemp:     rec.MaxTemp,
			Description: rec.Description,
			Lat:         rec.Lat,
			Lon:         rec.Lon,
			Date:        rec.Date.Format(dateLayout),
		})
	}

	s.metrics.DashboardRequests.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, dashboardResponse{
		Records:    records,
		Count:      len(records),
		Aggregates: payload,
	})
}

type dashboardParams struct {
	start    time.Time
	end      time.Time
	location string
	extended bool
}

// parseDashboardParams validates the filter inputs. Absent date bounds
// default to the synthetic window [today, today+2]; a lone bound is
// rejected rather than guessed at.
func (s *Server) parseDashboardParams(r *http.Request) (dashboardParams, error) {
	q := r.URL.Query()

	params := dashboardParams{
		location: q.Get("location"),
		extended: true,
	}
	if params.location == "" {
		params.location = query.AllLocations
	}

	if v := q.Get("extended"); v != "" {
		extended, err := strconv.ParseBool(v)
		if err != nil {
			return dashboardParams{}, fmt.Errorf("invalid extended %q", v)
		}
		params.extended = extended
	}

	startStr, endStr := q.Get("start"), q.Get("end")
	switch {
	case startStr == "" && endStr == "":
		today := midnightUTC(s.clock.Now())
		params.start = today
		params.end = today.AddDate(0, 0, 2)
	case startStr == "" || endStr == "":
		return dashboardParams{}, errors.New("start and end must be given together")
	default:
		start, err := time.ParseInLocation(dateLayout, startStr, time.UTC)
		if err != nil {
			return dashboardParams{}, fmt.Errorf("invalid start date %q", startStr)
		}
		end, err := time.ParseInLocation(dateLayout, endStr, time.UTC)
		if err != nil {
			return dashboardParams{}, fmt.Errorf("invalid end date %q", endStr)
		}
		if end.Before(start) {
			return dashboardParams{}, errors.New("end date before start date")
		}
		params.start, params.end = start, end
	}

	return params, nil
}

// writeLoadError maps enrichment failures to responses: an empty store is
// the degraded "waiting for data" state, anything else is a server error.
func (s *Server) writeLoadError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrEmptyStore) {
		s.metrics.DashboardRequests.WithLabelValues("empty_store").Inc()
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "waiting for data"})
		return
	}
	s.metrics.DashboardRequests.WithLabelValues("error").Inc()
	s.logger.Error("load and enrich failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load records"})
}

func midnightUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
