// Package domain models agricultural weather forecast data from the Taiwan
// Central Weather Administration (CWA) open data feed.
//
// # Data Source
//
// Forecasts originate from the CWA agricultural weather forecast dataset
// (F-A0010-001), a single JSON document exported from
// https://opendata.cwa.gov.tw/. The document nests per-county forecasts under
//
//	cwaopendata.resources.resource.data.agrWeatherForecasts.weatherForecasts.location[]
//
// where each location entry carries a locationName and per-element daily
// series under weatherElements:
//
//	MinT.daily[]  minimum temperature, °C, encoded as a string
//	MaxT.daily[]  maximum temperature, °C, encoded as a string
//	Wx.daily[]    short free-text weather condition
//
// Only the first daily entry of each element is ingested. The feed has no
// date dimension of its own, so stored rows carry no forecast date.
//
// # Enrichment Conventions
//
// Coordinates:
//
//	The feed identifies locations by county name only. A fixed
//	county → (lat, lon) table supplies map coordinates; rows whose location
//	is absent from the table are dropped during enrichment, not rejected at
//	ingestion. The table is a stand-in for real geocoding and is swappable
//	via [CoordinateResolver].
//
// Dates:
//
//	Display dates are synthesized as today + (position mod 3) days over the
//	dense 0-based position of each surviving row, yielding a repeating 3-day
//	window. The dates carry no real forecast semantics; consumers must treat
//	them as display stand-ins. Swappable via [DateSynthesizer] so a real
//	multi-day feed can replace the cycle without touching the query layer.
//
// # Growing Degree Days
//
// GDD is the agricultural thermal accumulation proxy computed downstream as
//
//	max(0, ((avg_max + avg_min) / 2) - 10.0) * distinct_date_count
//
// with a fixed 10 °C base temperature, clamped at zero. The distinct date
// count is the number of unique dates actually represented in a filtered
// selection, not the span length.
package domain
