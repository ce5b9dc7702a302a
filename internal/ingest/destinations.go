package ingest

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/citypulse/citypulse-data/internal/config"
	"github.com/citypulse/citypulse-data/internal/pipeline"
	"github.com/citypulse/citypulse-data/internal/provider/places"
	"github.com/citypulse/citypulse-data/internal/warehouse"
)

var destinationsSchema = warehouse.Schema{
	Table: config.DestinationsTable,
	Columns: []warehouse.Column{
		{Name: "city_id", Type: warehouse.Text},
		{Name: "city_name", Type: warehouse.Text},
		{Name: "formatted_address", Type: warehouse.Text},
		{Name: "latitude", Type: warehouse.Float},
		{Name: "longitude", Type: warehouse.Float},
		{Name: "google_map_url", Type: warehouse.Text},
		{Name: "website", Type: warehouse.Text},
		{Name: "rating", Type: warehouse.Float},
		{Name: "user_ratings_total", Type: warehouse.Integer},
		{Name: "types", Type: warehouse.Text},
		{Name: "photo_reference", Type: warehouse.Text},
		{Name: "vicinity", Type: warehouse.Text},
		{Name: "timezone", Type: warehouse.Text},
		{Name: "country", Type: warehouse.Text},
		{Name: "state", Type: warehouse.Text},
		{Name: "updated_at", Type: warehouse.Timestamp},
	},
}

// Destinations is the Google Places city profile dataset: one row per
// registry city, enriched with place details.
func Destinations() Dataset {
	return Dataset{
		Name:   "destinations",
		Schema: destinationsSchema,
		Collect: func(ctx context.Context, cfg *config.Config, workers int, logger *slog.Logger) pipeline.Result {
			client := places.NewClient(cfg.GooglePlacesAPIKey, logger)
			return pipeline.Run(ctx, config.CityRegistry, destinationStages(client), workers, logger)
		},
	}
}

func destinationStages(client *places.Client) pipeline.Stages[config.City, places.Candidate, places.Details] {
	return pipeline.Stages[config.City, places.Candidate, places.Details]{
		Dataset: "destinations",
		// The text search doubles as the listing: it yields at most one
		// candidate, the city locality itself.
		List: func(ctx context.Context, _ string, city config.City, _ pipeline.Page) ([]places.Candidate, error) {
			candidate, ok, err := client.TextSearch(ctx, city.Name)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, nil
			}
			return []places.Candidate{candidate}, nil
		},
		Enrich: func(ctx context.Context, p places.Candidate) (places.Details, bool, error) {
			return client.PlaceDetails(ctx, p.PlaceID)
		},
		Normalize: normalizeDestination,
	}
}

func normalizeDestination(city config.City, p places.Candidate, d *places.Details, now time.Time) warehouse.Row {
	var detail places.Details
	if d != nil {
		detail = *d
	}

	// Registry names carry no state suffix today; kept for names like
	// "Portland, OR" should the registry grow one.
	var state string
	if i := strings.LastIndex(city.Name, ","); i >= 0 {
		state = strings.TrimSpace(city.Name[i+1:])
	}

	return warehouse.Row{
		p.PlaceID,
		city.Name,
		detail.FormattedAddress,
		detail.Geometry.Location.Lat,
		detail.Geometry.Location.Lng,
		detail.URL,
		detail.Website,
		detail.Rating,
		detail.UserRatingsTotal,
		strings.Join(detail.Types, ","),
		p.PhotoReference(),
		detail.Vicinity,
		"", // timezone: would need a separate API call
		"USA",
		state,
		now,
	}
}
