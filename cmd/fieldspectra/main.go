package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"fieldspectra/internal/analysis"
	"fieldspectra/internal/api"
	"fieldspectra/internal/dataset"
	"fieldspectra/internal/heatmap"
	"fieldspectra/internal/metrics"
	"fieldspectra/internal/models"
	"fieldspectra/internal/store"
	"fieldspectra/internal/synth"
)

func main() {
	// Optional .env for local development; absence is fine.
	godotenv.Load()

	rows := flag.Int("rows", 140, "grid rows")
	cols := flag.Int("cols", 140, "grid columns")
	seed := flag.Int64("seed", 2027, "generation seed")
	dataPath := flag.String("data", envOr("FIELDSPECTRA_DATA", "data/synthetic_field_multispec.csv"), "path to the CSV dataset")
	heatmapPath := flag.String("heatmap", "ndvi_heatmap.png", "path for the rendered NDVI heatmap")
	dbPath := flag.String("db", "", "optional SQLite archive for generation runs")
	regen := flag.Bool("regen", false, "force regeneration even if the dataset exists")
	preview := flag.Int("preview", 80, "number of plots to show in the report")
	serve := flag.Bool("serve", false, "serve the field over HTTP after reporting")
	port := flag.String("port", envOr("PORT", "8080"), "HTTP server port")
	flag.Parse()

	var archive *store.Store
	if *dbPath != "" {
		db, err := sql.Open("sqlite", *dbPath)
		if err != nil {
			log.Fatalf("open archive database: %v", err)
		}
		defer db.Close()
		db.Exec("PRAGMA journal_mode=WAL")
		db.Exec("PRAGMA busy_timeout=5000")

		archive = store.New(db)
		if err := archive.Migrate(); err != nil {
			log.Fatalf("migrate archive: %v", err)
		}
	}

	regenerate := func() {
		start := time.Now()
		records, err := synth.Generate(*rows, *cols, *seed)
		if err != nil {
			log.Fatalf("generate: %v", err)
		}
		metrics.GridsGenerated.Inc()
		metrics.GenerateDuration.Observe(time.Since(start).Seconds())

		if err := dataset.Save(*dataPath, records); err != nil {
			log.Fatalf("save dataset: %v", err)
		}
		metrics.RecordsPersisted.WithLabelValues("csv").Add(float64(len(records)))
		log.Printf("generated synthetic dataset at %s (%d plots)", *dataPath, len(records))

		if archive != nil {
			runID, err := archive.InsertRun(*rows, *cols, *seed)
			if err != nil {
				log.Fatalf("archive run: %v", err)
			}
			if err := archive.InsertRecords(runID, records); err != nil {
				log.Fatalf("archive records: %v", err)
			}
			metrics.RecordsPersisted.WithLabelValues("sqlite").Add(float64(len(records)))
			log.Printf("archived run %d", runID)
		}
	}

	if *regen {
		regenerate()
	} else if _, err := os.Stat(*dataPath); err != nil {
		regenerate()
	}

	records, err := dataset.Load(*dataPath)
	if err != nil {
		var fe *dataset.FormatError
		if !errors.As(err, &fe) {
			log.Fatalf("load dataset: %v", err)
		}
		// A corrupt dataset is recoverable: regenerate and reload.
		log.Printf("dataset malformed (%v), regenerating", err)
		regenerate()
		if records, err = dataset.Load(*dataPath); err != nil {
			log.Fatalf("reload dataset: %v", err)
		}
	}

	gridRows, gridCols := gridExtent(records)
	results := analysis.Compute(records)
	analysis.WriteReport(os.Stdout, results, *preview)

	if err := heatmap.WriteFile(*heatmapPath, results, gridRows, gridCols); err != nil {
		log.Fatalf("render heatmap: %v", err)
	}
	metrics.HeatmapsRendered.Inc()
	log.Printf("wrote NDVI heatmap to %s", *heatmapPath)

	if !*serve {
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	server := api.NewServer(records, gridRows, gridCols, *seed, *port)
	log.Printf("starting server on :%s", *port)
	if err := server.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}

// gridExtent derives the grid dimensions from the loaded records, so a
// dataset generated with different flags still renders correctly.
func gridExtent(records []models.SpectralRecord) (rows, cols int) {
	for i := range records {
		if records[i].Row >= rows {
			rows = records[i].Row + 1
		}
		if records[i].Col >= cols {
			cols = records[i].Col + 1
		}
	}
	return rows, cols
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
