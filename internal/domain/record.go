package domain

import "time"

// ForecastRecord is one persisted row of the weather table: the first-day
// forecast for a single county. Rows are inserted once at ingestion and
// never updated or deleted.
type ForecastRecord struct {
	ID          int64   `json:"id"`
	Location    string  `json:"location"`
	MinTemp     float64 `json:"min_temp"`
	MaxTemp     float64 `json:"max_temp"` // expected >= MinTemp, not enforced
	Description string  `json:"description"`
}

// Coordinates is a WGS-84 latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// EnrichedRecord is the display-ready representation: a stored row joined
// with resolved coordinates and a synthetic date. Derived in memory on every
// load, never persisted. Date is synthetic; see the package documentation.
type EnrichedRecord struct {
	ForecastRecord
	Coordinates
	Date time.Time `json:"date"`
}
