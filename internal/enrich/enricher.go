// Package enrich turns stored forecast rows into the display-ready dataset:
// coordinates joined from the resolver, synthetic dates assigned, and the
// result memoized per storage-content version.
package enrich

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/couchcryptid/agri-weather-dashboard/internal/domain"
	"github.com/couchcryptid/agri-weather-dashboard/internal/observability"
	"github.com/couchcryptid/agri-weather-dashboard/internal/store"
)

// RecordSource is the slice of storage the enricher reads from.
type RecordSource interface {
	ListForecasts(ctx context.Context) ([]domain.ForecastRecord, error)
	Version(ctx context.Context) (store.Version, error)
}

// Snapshot is one enriched view of the store: the surviving records in
// storage order and the location choices for the filter UI.
type Snapshot struct {
	Records []domain.EnrichedRecord
	// Locations holds the distinct locations present in Records, sorted
	// lexicographically. When every row was dropped it instead holds the
	// resolver's full nominal key list, so the filter UI still offers
	// choices with no matching data.
	Locations []string
}

// Enricher loads, joins, and dates stored rows. Safe for concurrent use;
// repeated calls against unchanged storage are served from cache.
type Enricher struct {
	source   RecordSource
	resolver domain.CoordinateResolver
	dates    domain.DateSynthesizer
	logger   *slog.Logger
	metrics  *observability.Metrics

	mu      sync.Mutex
	cached  Snapshot
	version store.Version
	primed  bool
}

// New creates an Enricher over the given storage and strategies.
func New(source RecordSource, resolver domain.CoordinateResolver, dates domain.DateSynthesizer, logger *slog.Logger, metrics *observability.Metrics) *Enricher {
	return &Enricher{
		source:   source,
		resolver: resolver,
		dates:    dates,
		logger:   logger,
		metrics:  metrics,
	}
}

// LoadAndEnrich returns the current snapshot. Zero stored rows yield
// domain.ErrEmptyStore, distinct from a snapshot whose rows were all
// dropped. The snapshot is recomputed only when the storage content version
// (row count + file modification marker) changes.
func (e *Enricher) LoadAndEnrich(ctx context.Context) (Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	version, err := e.source.Version(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	if e.primed && version == e.version {
		e.metrics.EnrichCache.WithLabelValues("hit").Inc()
		return e.cached, nil
	}
	e.metrics.EnrichCache.WithLabelValues("miss").Inc()

	rows, err := e.source.ListForecasts(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	if len(rows) == 0 {
		return Snapshot{}, domain.ErrEmptyStore
	}

	snap := e.enrich(rows)
	e.cached = snap
	e.version = version
	e.primed = true
	return snap, nil
}

func (e *Enricher) enrich(rows []domain.ForecastRecord) Snapshot {
	records := make([]domain.EnrichedRecord, 0, len(rows))
	seen := make(map[string]struct{})
	dropped := 0

	for _, row := range rows {
		coords, ok := e.resolver.Resolve(row.Location)
		if !ok {
			// Expected for locations outside the fixed table; drop, don't fail.
			e.logger.Debug("no coordinate match, dropping row", "location", row.Location)
			dropped++
			continue
		}
		records = append(records, domain.EnrichedRecord{
			ForecastRecord: row,
			Coordinates:    coords,
		})
		seen[row.Location] = struct{}{}
	}
	if dropped > 0 {
		e.metrics.RecordsDropped.Add(float64(dropped))
		e.logger.Info("rows dropped during enrichment", "dropped", dropped, "kept", len(records))
	}

	// Dates are assigned over the dense post-drop positions, so the cycle
	// restarts from a contiguous 0..n-1 indexing.
	for i := range records {
		records[i].Date = e.dates.DateFor(i)
	}

	if len(records) == 0 {
		// Deliberate asymmetry: with nothing surviving, offer the full
		// nominal choice set rather than an empty one.
		return Snapshot{Records: records, Locations: e.resolver.Locations()}
	}

	locations := make([]string, 0, len(seen))
	for name := range seen {
		locations = append(locations, name)
	}
	sort.Strings(locations)
	return Snapshot{Records: records, Locations: locations}
}
