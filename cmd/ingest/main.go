// Command ingest is the CityPulse data ingestion CLI.
//
// Usage:
//
//	citypulse-ingest attractions
//	citypulse-ingest restaurants --workers 8
//	citypulse-ingest weather
//	citypulse-ingest all
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/citypulse/citypulse-data/internal/config"
	"github.com/citypulse/citypulse-data/internal/ingest"
	"github.com/citypulse/citypulse-data/internal/pipeline"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	var workers int

	root := &cobra.Command{
		Use:   "citypulse-ingest",
		Short: "CityPulse data ingestion CLI",
	}
	root.PersistentFlags().IntVar(&workers, "workers", pipeline.DefaultWorkers, "Concurrent detail-call workers")

	for _, ds := range ingest.Datasets() {
		root.AddCommand(datasetCmd(ds, &workers))
	}
	root.AddCommand(allCmd(&workers))

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func datasetCmd(ds ingest.Dataset, workers *int) *cobra.Command {
	return &cobra.Command{
		Use:   ds.Name,
		Short: fmt.Sprintf("Ingest the %s dataset into the warehouse", ds.Name),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(func(ctx context.Context, cfg *config.Config) error {
				return ingest.Run(ctx, cfg, ds, *workers, logger)
			})
		},
	}
}

// allCmd runs every dataset in order. Dataset failures are logged and the
// remaining datasets still run; the command fails if any dataset did.
func allCmd(workers *int) *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Ingest every dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(func(ctx context.Context, cfg *config.Config) error {
				failed := 0
				for _, ds := range ingest.Datasets() {
					if err := ingest.Run(ctx, cfg, ds, *workers, logger); err != nil {
						logger.Error("dataset failed", "dataset", ds.Name, "error", err)
						failed++
					}
				}
				if failed > 0 {
					return fmt.Errorf("%d dataset(s) failed", failed)
				}
				return nil
			})
		},
	}
}

// runIngest handles config loading and context cancellation.
func runIngest(fn func(ctx context.Context, cfg *config.Config) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	return fn(ctx, cfg)
}
