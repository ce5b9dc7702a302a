package ingest

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/citypulse/citypulse-data/internal/config"
	"github.com/citypulse/citypulse-data/internal/pipeline"
	"github.com/citypulse/citypulse-data/internal/provider"
	"github.com/citypulse/citypulse-data/internal/provider/tripadvisor"
	"github.com/citypulse/citypulse-data/internal/warehouse"
)

var attractionsSchema = warehouse.Schema{
	Table: config.AttractionsTable,
	Columns: []warehouse.Column{
		{Name: "attraction_id", Type: warehouse.Text},
		{Name: "city", Type: warehouse.Text},
		{Name: "name", Type: warehouse.Text},
		{Name: "description", Type: warehouse.Text},
		{Name: "address", Type: warehouse.Text},
		{Name: "latitude", Type: warehouse.Float},
		{Name: "longitude", Type: warehouse.Float},
		{Name: "rating", Type: warehouse.Float},
		{Name: "review_count", Type: warehouse.Integer},
		{Name: "category", Type: warehouse.Text},
		{Name: "subcategory", Type: warehouse.Text},
		{Name: "price_level", Type: warehouse.Text},
		{Name: "price_range", Type: warehouse.Text},
		{Name: "website", Type: warehouse.Text},
		{Name: "image_url", Type: warehouse.Text},
		{Name: "suggested_duration", Type: warehouse.Text},
		{Name: "opening_hours", Type: warehouse.Text},
		{Name: "updated_at", Type: warehouse.Timestamp},
	},
}

// Attractions is the TripAdvisor attractions dataset.
func Attractions() Dataset {
	return Dataset{
		Name:   "attractions",
		Schema: attractionsSchema,
		Collect: func(ctx context.Context, cfg *config.Config, workers int, logger *slog.Logger) pipeline.Result {
			client := tripadvisor.NewClient(cfg.RapidAPIKey, logger)
			return pipeline.Run(ctx, config.CityRegistry, attractionStages(client), workers, logger)
		},
	}
}

func attractionStages(client *tripadvisor.Client) pipeline.Stages[config.City, tripadvisor.Attraction, tripadvisor.Details] {
	return pipeline.Stages[config.City, tripadvisor.Attraction, tripadvisor.Details]{
		Dataset: "attractions",
		Resolve: func(ctx context.Context, city config.City) (string, bool, error) {
			return client.SearchLocation(ctx, city.Name)
		},
		List: func(ctx context.Context, id string, _ config.City, page pipeline.Page) ([]tripadvisor.Attraction, error) {
			return client.SearchAttractions(ctx, id, page.Offset)
		},
		Enrich: func(ctx context.Context, a tripadvisor.Attraction) (tripadvisor.Details, bool, error) {
			return client.AttractionDetails(ctx, string(a.LocationID))
		},
		Normalize: normalizeAttraction,
	}
}

func normalizeAttraction(city config.City, a tripadvisor.Attraction, d *tripadvisor.Details, now time.Time) warehouse.Row {
	var address, website, duration, hours string
	if d != nil {
		address = provider.JoinNonEmpty(d.AddressParts(), ", ")
		website = d.Website
		duration = d.SuggestedDuration
		hours = strings.Join(d.OpeningHours, ", ")
	}

	subcategories := make([]string, len(a.SecondaryCategories))
	for i, sc := range a.SecondaryCategories {
		subcategories[i] = sc.Name
	}

	return warehouse.Row{
		string(a.LocationID),
		city.Name,
		a.Title,
		a.Description,
		address,
		a.Latitude,
		a.Longitude,
		a.AverageRating,
		a.ReviewCount,
		a.PrimaryCategory.Name,
		strings.Join(subcategories, ","),
		a.PriceLevel,
		a.PriceRange,
		website,
		a.Thumbnail.URL,
		duration,
		hours,
		now,
	}
}
