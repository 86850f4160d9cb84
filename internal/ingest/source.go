// Package ingest performs the one-time load of the CWA agri-forecast source
// document into the weather table.
package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/agri-weather-dashboard/internal/domain"
)

// sourceDocument mirrors the nested CWA open data export. Only the fields
// the ingestor reads are declared; temperatures arrive as strings.
type sourceDocument struct {
	Root struct {
		Resources struct {
			Resource struct {
				Data struct {
					AgrWeatherForecasts struct {
						WeatherForecasts struct {
							Location []sourceLocation `json:"location"`
						} `json:"weatherForecasts"`
					} `json:"agrWeatherForecasts"`
				} `json:"data"`
			} `json:"resource"`
		} `json:"resources"`
	} `json:"cwaopendata"`
}

type sourceLocation struct {
	LocationName    string `json:"locationName"`
	WeatherElements struct {
		MinT elementSeries `json:"MinT"`
		MaxT elementSeries `json:"MaxT"`
		Wx   elementSeries `json:"Wx"`
	} `json:"weatherElements"`
}

type elementSeries struct {
	Daily []dailyEntry `json:"daily"`
}

type dailyEntry struct {
	Temperature string `json:"temperature"`
	Weather     string `json:"weather"`
}

// ParseSource reads and flattens the source document into forecast records,
// one per well-formed location entry. Entries missing any of locationName,
// min temp, max temp, or description are skipped, not errors; their names
// are returned so the caller can log them. Only the first daily entry of
// each weather element is used.
func ParseSource(path string) ([]domain.ForecastRecord, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", domain.ErrSourceNotFound, path)
		}
		return nil, nil, fmt.Errorf("read source %s: %w", path, err)
	}

	var doc sourceDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrMalformedSource, err)
	}

	locations := doc.Root.Resources.Resource.Data.AgrWeatherForecasts.WeatherForecasts.Location
	if len(locations) == 0 {
		return nil, nil, fmt.Errorf("%w: no forecast locations", domain.ErrMalformedSource)
	}

	var records []domain.ForecastRecord
	var skipped []string
	for i, loc := range locations {
		rec, ok := flattenLocation(loc)
		if !ok {
			name := strings.TrimSpace(loc.LocationName)
			if name == "" {
				name = fmt.Sprintf("entry %d", i)
			}
			skipped = append(skipped, name)
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}

// flattenLocation extracts the first-day forecast fields from one location
// entry. Returns false when any required field is absent or empty.
func flattenLocation(loc sourceLocation) (domain.ForecastRecord, bool) {
	name := strings.TrimSpace(loc.LocationName)
	if name == "" {
		return domain.ForecastRecord{}, false
	}

	minT, ok := firstTemperature(loc.WeatherElements.MinT)
	if !ok {
		return domain.ForecastRecord{}, false
	}
	maxT, ok := firstTemperature(loc.WeatherElements.MaxT)
	if !ok {
		return domain.ForecastRecord{}, false
	}

	wx := loc.WeatherElements.Wx.Daily
	if len(wx) == 0 || strings.TrimSpace(wx[0].Weather) == "" {
		return domain.ForecastRecord{}, false
	}

	return domain.ForecastRecord{
		Location:    name,
		MinTemp:     minT,
		MaxTemp:     maxT,
		Description: strings.TrimSpace(wx[0].Weather),
	}, true
}

func firstTemperature(series elementSeries) (float64, bool) {
	if len(series.Daily) == 0 {
		return 0, false
	}
	s := strings.TrimSpace(series.Daily[0].Temperature)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
