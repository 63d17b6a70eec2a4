// Command weather-seed copies a JSON weather document into a SQLite file
// that the server can read with DATA_SOURCE=sqlite://<path>.
//
//	go run ./cmd/weather-seed -json data/weather-data.json -db data/weather.db
package main

import (
	"context"
	"flag"
	"log"

	"github.com/i474232898/weather-lookup/internal/weather/sources"
)

var (
	jsonPath = flag.String("json", "data/weather-data.json", "weather document to import")
	dbPath   = flag.String("db", "data/weather.db", "SQLite file to write")
)

func main() {
	flag.Parse()
	ctx := context.Background()

	ds, err := sources.NewFileSource(*jsonPath).Load(ctx)
	if err != nil {
		log.Fatalf("failed to read %s: %v", *jsonPath, err)
	}

	if err := sources.WriteSQLite(ctx, *dbPath, ds); err != nil {
		log.Fatalf("failed to write %s: %v", *dbPath, err)
	}
	log.Printf("INFO: wrote %d cities to %s", ds.Len(), *dbPath)
}
