package ingest

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/citypulse/citypulse-data/internal/config"
	"github.com/citypulse/citypulse-data/internal/pipeline"
	"github.com/citypulse/citypulse-data/internal/provider/rome2rio"
	"github.com/citypulse/citypulse-data/internal/warehouse"
)

var transportationSchema = warehouse.Schema{
	Table: config.TransportationTable,
	Columns: []warehouse.Column{
		{Name: "origin_city", Type: warehouse.Text},
		{Name: "destination_city", Type: warehouse.Text},
		{Name: "route_name", Type: warehouse.Text},
		{Name: "route_type", Type: warehouse.Text},
		{Name: "total_distance", Type: warehouse.Float},
		{Name: "total_duration", Type: warehouse.Float},
		{Name: "price_low", Type: warehouse.Float},
		{Name: "price_high", Type: warehouse.Float},
		{Name: "currency", Type: warehouse.Text},
		{Name: "segments", Type: warehouse.Text},
		{Name: "data_timestamp", Type: warehouse.Timestamp},
	},
}

// cityPair is an ordered origin/destination pair; transportation entities
// are pairs rather than single cities.
type cityPair struct {
	Origin      string
	Destination string
}

// Label implements pipeline.Labeled.
func (p cityPair) Label() string { return p.Origin + " to " + p.Destination }

// cityPairs returns all ordered pairs from the city registry.
func cityPairs() []cityPair {
	var pairs []cityPair
	for _, origin := range config.CityRegistry {
		for _, dest := range config.CityRegistry {
			if origin.Name == dest.Name {
				continue
			}
			pairs = append(pairs, cityPair{Origin: origin.Name, Destination: dest.Name})
		}
	}
	return pairs
}

// Transportation is the Rome2Rio city-to-city routes dataset: one row per
// route per ordered city pair. Routes carry everything the row needs, so
// there is no detail endpoint.
func Transportation() Dataset {
	return Dataset{
		Name:   "transportation",
		Schema: transportationSchema,
		Collect: func(ctx context.Context, cfg *config.Config, workers int, logger *slog.Logger) pipeline.Result {
			client := rome2rio.NewClient(cfg.Rome2RioAPIKey, logger)
			return pipeline.Run(ctx, cityPairs(), transportationStages(client), workers, logger)
		},
	}
}

func transportationStages(client *rome2rio.Client) pipeline.Stages[cityPair, rome2rio.Route, struct{}] {
	return pipeline.Stages[cityPair, rome2rio.Route, struct{}]{
		Dataset: "transportation",
		List: func(ctx context.Context, _ string, pair cityPair, _ pipeline.Page) ([]rome2rio.Route, error) {
			return client.Search(ctx, pair.Origin, pair.Destination)
		},
		Normalize: normalizeRoute,
	}
}

func normalizeRoute(pair cityPair, route rome2rio.Route, _ *struct{}, now time.Time) warehouse.Row {
	price := route.FirstPrice()

	segments := []byte("[]")
	if len(route.Segments) > 0 {
		if b, err := json.Marshal(route.Segments); err == nil {
			segments = b
		}
	}

	return warehouse.Row{
		pair.Origin,
		pair.Destination,
		route.Name,
		route.Kind,
		route.Distance,
		route.Duration,
		price.PriceLow,
		price.PriceHigh,
		price.Currency,
		string(segments),
		now,
	}
}
