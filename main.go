package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"device-catalog/config"
	"device-catalog/models"
	"device-catalog/services"
	"device-catalog/storage"
	"device-catalog/utils"
)

// usage: device-catalog [query-string] [comma-separated ids or search terms to compare]
func main() {
	logger := utils.NewLogger()
	cfg := config.Load()
	logger.SetLevel(utils.ParseLevel(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	logger.Info("=== Device Catalog starting ===")
	logger.Info("Config — source: %s | max records: %d | page size: %d",
		cfg.DatasetSource, cfg.MaxRecords, cfg.PageSize)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var store *storage.PostgresStore
	if cfg.UsesPostgres() {
		var err error
		store, err = storage.NewPostgresStore(ctx, cfg.DSN(), &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		})
		if err != nil {
			logger.Error("Failed to connect to PostgreSQL: %v", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	snap, err := loadSnapshot(ctx, cfg, store, logger)
	if err != nil {
		logger.Error("Dataset load failed: %v", err)
		os.Exit(1)
	}
	logger.Info("Snapshot %s ready: %d devices from %s", snap.ID, snap.Len(), snap.Source)

	if cfg.SyncPostgres && cfg.DatasetSource == config.SourceCSV {
		if err := store.Sync(ctx, snap); err != nil {
			logger.Error("PostgreSQL sync failed: %v", err)
		} else {
			logger.Info("Snapshot stored in PostgreSQL (table: devices)")
		}
	}

	spec := models.QuerySpec{}.Reset()
	if len(os.Args) > 1 {
		spec, err = services.DecodeQuery(os.Args[1])
		if err != nil {
			logger.Warn("Ignoring query: %v", err)
			spec = spec.Reset()
		}
	}

	result := services.Browse(snap, spec, cfg.PageSize)
	services.PrintBrowse(result)

	if cfg.ExportPath != "" {
		if err := exportPage(cfg.ExportPath, result.Page.Items); err != nil {
			logger.Error("CSV export failed: %v", err)
		} else {
			logger.Info("Page exported to %s", cfg.ExportPath)
		}
	}

	if len(os.Args) > 2 {
		picked := services.Pick(nil, snap, strings.Split(os.Args[2], ","))
		for _, tok := range picked.Unmatched {
			logger.Warn("No device matches %q", tok)
		}
		for _, tok := range picked.Dropped {
			logger.Warn("Selection full (%d devices), ignoring %q", models.MaxSelection, tok)
		}
		services.PrintComparison(services.Resolve(picked.Set, snap))
	}

	insightSvc := services.NewInsightService(logger, cfg.MaxConcurrency)
	insightSvc.Print(insightSvc.Generate(snap))

	fmt.Printf("  Done. Snapshot %s | %d devices\n\n", snap.ID, snap.Len())
}

func loadSnapshot(ctx context.Context, cfg *config.Config, store storage.SnapshotStore, logger *utils.Logger) (*models.Snapshot, error) {
	if cfg.DatasetSource == config.SourcePostgres {
		devices, err := store.FetchAll(ctx)
		if err != nil {
			return nil, err
		}
		return models.NewSnapshot("postgres:devices", devices), nil
	}

	reader := storage.NewCSVReader(cfg.DatasetPath)
	snap, err := services.NewLoader(logger, cfg.MaxRecords).LoadFrom(reader)
	if reader.Malformed > 0 {
		logger.Warn("Skipped %d malformed records in %s", reader.Malformed, cfg.DatasetPath)
	}
	return snap, err
}

func exportPage(path string, devices []models.Device) error {
	w, err := storage.NewCSVWriter(path)
	if err != nil {
		return err
	}
	defer w.Close()
	return w.WriteDevices(devices)
}
