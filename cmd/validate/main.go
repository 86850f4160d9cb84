// Command validate checks a CWA agri-forecast source document without
// touching storage: it reports how many location entries would be ingested,
// which would be skipped for missing fields, and which stored locations
// would later be dropped for lacking a coordinate match.
//
// Usage:
//
//	go run ./cmd/validate -source data/F-A0010-001.json
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/couchcryptid/agri-weather-dashboard/internal/config"
	"github.com/couchcryptid/agri-weather-dashboard/internal/domain"
	"github.com/couchcryptid/agri-weather-dashboard/internal/ingest"
)

func main() {
	source := flag.String("source", "", "path to the source JSON document")
	coords := flag.String("coordinates", "", "optional coordinate table JSON override")
	flag.Parse()

	if *source == "" {
		flag.Usage()
		os.Exit(1)
	}

	os.Exit(run(*source, *coords))
}

func run(source, coords string) int {
	cfg := &config.Config{CoordinatesPath: coords}
	table, err := cfg.CoordinateTable()
	if err != nil {
		fmt.Fprintf(os.Stderr, "coordinate table: %v\n", err)
		return 1
	}
	resolver := domain.NewStaticResolver(table)

	records, skipped, err := ingest.ParseSource(source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse source: %v\n", err)
		return 1
	}

	fmt.Printf("source:   %s\n", source)
	fmt.Printf("ingestible entries: %d\n", len(records))

	if len(skipped) > 0 {
		fmt.Printf("skipped entries:    %d\n", len(skipped))
		for _, name := range skipped {
			fmt.Printf("  - %s (missing fields)\n", name)
		}
	}

	var unresolved []string
	for _, rec := range records {
		if _, ok := resolver.Resolve(rec.Location); !ok {
			unresolved = append(unresolved, rec.Location)
		}
	}
	if len(unresolved) > 0 {
		fmt.Printf("no coordinate match (dropped at enrichment): %d\n", len(unresolved))
		for _, name := range unresolved {
			fmt.Printf("  - %s\n", name)
		}
	}

	if len(records) == len(unresolved) {
		fmt.Println("warning: no entry would survive enrichment")
	}
	return 0
}
