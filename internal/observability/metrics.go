package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and gauges for the dashboard service.
type Metrics struct {
	RowsIngested   prometheus.Counter
	EntriesSkipped prometheus.Counter
	IngestFailures prometheus.Counter
	StoredRows     prometheus.Gauge

	// Enrichment metrics.
	RecordsDropped prometheus.Counter
	EnrichCache    *prometheus.CounterVec // labels: result={hit,miss}

	// Query metrics.
	DashboardRequests *prometheus.CounterVec // labels: outcome={ok,no_data,empty_store,bad_request,error}
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RowsIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "agri_dashboard",
			Name:      "rows_ingested_total",
			Help:      "Forecast rows written to the weather table at cold start.",
		}),
		EntriesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "agri_dashboard",
			Name:      "source_entries_skipped_total",
			Help:      "Source locations skipped for missing or empty fields.",
		}),
		IngestFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "agri_dashboard",
			Name:      "ingest_failures_total",
			Help:      "Ingestion attempts that failed (missing or malformed source).",
		}),
		StoredRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "agri_dashboard",
			Name:      "stored_rows",
			Help:      "Current number of rows in the weather table.",
		}),
		RecordsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "agri_dashboard",
			Name:      "records_dropped_total",
			Help:      "Stored rows dropped during enrichment for lacking a coordinate match.",
		}),
		EnrichCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agri_dashboard",
			Name:      "enrich_cache_total",
			Help:      "Enrichment cache lookups by result.",
		}, []string{"result"}),
		DashboardRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agri_dashboard",
			Name:      "dashboard_requests_total",
			Help:      "Dashboard API requests by outcome.",
		}, []string{"outcome"}),
	}

	prometheus.MustRegister(
		m.RowsIngested,
		m.EntriesSkipped,
		m.IngestFailures,
		m.StoredRows,
		m.RecordsDropped,
		m.EnrichCache,
		m.DashboardRequests,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RowsIngested:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "agri_dashboard", Name: "rows_ingested_total"}),
		EntriesSkipped:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "agri_dashboard", Name: "source_entries_skipped_total"}),
		IngestFailures:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "agri_dashboard", Name: "ingest_failures_total"}),
		StoredRows:        prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "agri_dashboard", Name: "stored_rows"}),
		RecordsDropped:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "agri_dashboard", Name: "records_dropped_total"}),
		EnrichCache:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "agri_dashboard", Name: "enrich_cache_total"}, []string{"result"}),
		DashboardRequests: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "agri_dashboard", Name: "dashboard_requests_total"}, []string{"outcome"}),
	}
}
