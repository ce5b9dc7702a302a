// Package ingest defines the six warehouse datasets and runs them through
// the shared pipeline. Each dataset is a declaration: its table schema,
// its provider wiring, and its field mapping. The flow itself lives in
// internal/pipeline.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/citypulse/citypulse-data/internal/config"
	"github.com/citypulse/citypulse-data/internal/pipeline"
	"github.com/citypulse/citypulse-data/internal/warehouse"
)

// Dataset is one ingestable table: a schema and a collector producing
// its record batch.
type Dataset struct {
	Name    string
	Schema  warehouse.Schema
	Collect func(ctx context.Context, cfg *config.Config, workers int, logger *slog.Logger) pipeline.Result
}

// Datasets returns every dataset in run order.
func Datasets() []Dataset {
	return []Dataset{
		Attractions(),
		Hotels(),
		Restaurants(),
		Destinations(),
		Transportation(),
		Weather(),
	}
}

// ByName looks a dataset up by its CLI name.
func ByName(name string) (Dataset, bool) {
	for _, ds := range Datasets() {
		if ds.Name == name {
			return ds, true
		}
	}
	return Dataset{}, false
}

// Run collects a dataset's records and loads them into the warehouse.
// Collection errors are logged and the load still proceeds with whatever
// was accumulated; a schema or load failure is returned to the caller.
func Run(ctx context.Context, cfg *config.Config, ds Dataset, workers int, logger *slog.Logger) error {
	start := time.Now()

	result := ds.Collect(ctx, cfg, workers, logger)
	for _, e := range result.Errors {
		logger.Error("ingest error", "dataset", ds.Name, "error", e)
	}

	sink := warehouse.NewSink(cfg, logger)
	loadResult, err := sink.Load(ctx, ds.Schema, result.Records)
	if err != nil {
		return fmt.Errorf("load %s: %w", ds.Name, err)
	}

	logger.Info("load complete",
		"dataset", ds.Name,
		"summary", loadResult.Summary(),
		"duration", time.Since(start).Round(time.Second))
	return nil
}
