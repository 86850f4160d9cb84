package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/agri-weather-dashboard/internal/domain"
)

// sourceEntry builds one location element of the nested CWA document.
// Empty fields are emitted as empty strings, matching real feed behavior.
func sourceEntry(name, minT, maxT, wx string) string {
	return fmt.Sprintf(`{
		"locationName": %q,
		"weatherElements": {
			"MinT": {"daily": [{"temperature": %q}]},
			"MaxT": {"daily": [{"temperature": %q}]},
			"Wx":   {"daily": [{"weather": %q}]}
		}
	}`, name, minT, maxT, wx)
}

func sourceDoc(entries ...string) string {
	return fmt.Sprintf(`{
		"cwaopendata": {
			"resources": {
				"resource": {
					"data": {
						"agrWeatherForecasts": {
							"weatherForecasts": {"location": [%s]}
						}
					}
				}
			}
		}
	}`, strings.Join(entries, ","))
}

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "F-A0010-001.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseSource_WellFormedEntries(t *testing.T) {
	path := writeSource(t, sourceDoc(
		sourceEntry("Taipei City", "18.5", "24.0", "Cloudy"),
		sourceEntry("Tainan City", "21.0", "28.5", "Sunny"),
	))

	records, skipped, err := ParseSource(path)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, records, 2)

	assert.Equal(t, domain.ForecastRecord{
		Location:    "Taipei City",
		MinTemp:     18.5,
		MaxTemp:     24.0,
		Description: "Cloudy",
	}, records[0])
	assert.Equal(t, "Tainan City", records[1].Location)
}

func TestParseSource_SkipsIncompleteEntries(t *testing.T) {
	path := writeSource(t, sourceDoc(
		sourceEntry("Taipei City", "18.5", "24.0", "Cloudy"),
		sourceEntry("Tainan City", "21.0", "28.5", "Sunny"),
		sourceEntry("Yilan County", "17.0", "22.0", "Rain"),
		sourceEntry("Hualien County", "19.0", "25.0", ""), // missing description
	))

	records, skipped, err := ParseSource(path)
	require.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, []string{"Hualien County"}, skipped)
}

func TestParseSource_SkipsMissingFields(t *testing.T) {
	cases := []struct {
		name  string
		entry string
	}{
		{"empty location name", sourceEntry("", "18.5", "24.0", "Cloudy")},
		{"missing min temp", sourceEntry("Taipei City", "", "24.0", "Cloudy")},
		{"missing max temp", sourceEntry("Taipei City", "18.5", "", "Cloudy")},
		{"non-numeric temp", sourceEntry("Taipei City", "warm", "24.0", "Cloudy")},
		{
			"no daily series",
			`{"locationName": "Taipei City", "weatherElements": {"MinT": {"daily": []}, "MaxT": {"daily": []}, "Wx": {"daily": []}}}`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeSource(t, sourceDoc(
				tc.entry,
				sourceEntry("Tainan City", "21.0", "28.5", "Sunny"),
			))

			records, skipped, err := ParseSource(path)
			require.NoError(t, err)
			require.Len(t, records, 1)
			assert.Equal(t, "Tainan City", records[0].Location)
			assert.Len(t, skipped, 1)
		})
	}
}

func TestParseSource_FileNotFound(t *testing.T) {
	_, _, err := ParseSource(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorIs(t, err, domain.ErrSourceNotFound)
}

func TestParseSource_InvalidJSON(t *testing.T) {
	path := writeSource(t, `{"cwaopendata": nope`)
	_, _, err := ParseSource(path)
	assert.ErrorIs(t, err, domain.ErrMalformedSource)
}

func TestParseSource_MissingNestedStructure(t *testing.T) {
	path := writeSource(t, `{"cwaopendata": {"resources": {}}}`)
	_, _, err := ParseSource(path)
	assert.ErrorIs(t, err, domain.ErrMalformedSource)
}
