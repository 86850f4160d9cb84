// Command genmock writes a synthetic CWA-shaped agri-forecast source
// document for local runs and fixtures. Temperatures are drawn from a
// seeded generator so repeated runs produce identical output.
//
// Usage:
//
//	go run ./cmd/genmock -out data/F-A0010-001.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/couchcryptid/agri-weather-dashboard/internal/domain"
)

var conditions = []string{
	"Sunny",
	"Partly cloudy",
	"Cloudy",
	"Occasional showers",
	"Thundershowers",
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the source JSON document")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	resolver := domain.NewStaticResolver(domain.DefaultCoordinateTable())
	rng := rand.New(rand.NewPCG(42, 0))

	type daily map[string]string
	type series map[string][]daily
	type location struct {
		LocationName    string            `json:"locationName"`
		WeatherElements map[string]series `json:"weatherElements"`
	}

	locations := make([]location, 0, len(resolver.Locations()))
	for _, name := range resolver.Locations() {
		minT := 14 + rng.Float64()*10
		maxT := minT + 3 + rng.Float64()*8
		wx := conditions[rng.IntN(len(conditions))]
		locations = append(locations, location{
			LocationName: name,
			WeatherElements: map[string]series{
				"MinT": {"daily": {{"temperature": fmt.Sprintf("%.1f", minT)}}},
				"MaxT": {"daily": {{"temperature": fmt.Sprintf("%.1f", maxT)}}},
				"Wx":   {"daily": {{"weather": wx}}},
			},
		})
	}

	doc := map[string]any{
		"cwaopendata": map[string]any{
			"resources": map[string]any{
				"resource": map[string]any{
					"data": map[string]any{
						"agrWeatherForecasts": map[string]any{
							"weatherForecasts": map[string]any{
								"location": locations,
							},
						},
					},
				},
			},
		},
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(*out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		return err
	}

	fmt.Printf("wrote %d locations to %s\n", len(locations), *out)
	return nil
}
