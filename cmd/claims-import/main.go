// claims-import converts the JSON source files into a SQLite snapshot that
// the analytics service can load with DATA_SOURCE=sqlite.
package main

import (
	"context"
	"log/slog"

	"github.com/joho/godotenv"

	"github.com/relieflabs/claims-analytics/internal/config"
	"github.com/relieflabs/claims-analytics/internal/importer"
	"github.com/relieflabs/claims-analytics/internal/loader"
	"github.com/relieflabs/claims-analytics/internal/logging"
	"github.com/relieflabs/claims-analytics/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ds, err := loader.Load(cfg.Data.Dir)
	if err != nil {
		logging.Fatalf("Failed to load dataset: %v", err)
	}

	store, err := repository.NewSQLiteStore(cfg.Data.DBPath)
	if err != nil {
		logging.Fatalf("Failed to open snapshot store: %v", err)
	}
	defer store.Close()

	im := importer.New(store, cfg.Worker.Count, cfg.Worker.BufferSize)
	processed, failed, err := im.Run(context.Background(), ds)
	if err != nil {
		logging.Fatalf("Import failed: %v", err)
	}

	slog.Info("snapshot written", "path", cfg.Data.DBPath, "records", processed, "failed", failed)
}
