package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/citypulse/citypulse-data/internal/config"
	"github.com/citypulse/citypulse-data/internal/pipeline"
	"github.com/citypulse/citypulse-data/internal/provider/yelp"
	"github.com/citypulse/citypulse-data/internal/warehouse"
)

var restaurantsSchema = warehouse.Schema{
	Table: config.RestaurantsTable,
	Columns: []warehouse.Column{
		{Name: "restaurant_id", Type: warehouse.Text},
		{Name: "city", Type: warehouse.Text},
		{Name: "name", Type: warehouse.Text},
		{Name: "address", Type: warehouse.Text},
		{Name: "latitude", Type: warehouse.Float},
		{Name: "longitude", Type: warehouse.Float},
		{Name: "rating", Type: warehouse.Float},
		{Name: "review_count", Type: warehouse.Integer},
		{Name: "price_level", Type: warehouse.Text},
		{Name: "phone", Type: warehouse.Text},
		{Name: "url", Type: warehouse.Text},
		{Name: "image_url", Type: warehouse.Text},
		{Name: "cuisine_types", Type: warehouse.Text},
		{Name: "is_closed", Type: warehouse.Boolean},
		{Name: "transactions", Type: warehouse.Text},
		{Name: "operating_hours", Type: warehouse.Text},
		{Name: "updated_at", Type: warehouse.Timestamp},
	},
}

// Restaurants is the Yelp restaurants dataset. The listing is walked at
// two fixed offsets, 100 results per city.
func Restaurants() Dataset {
	return Dataset{
		Name:   "restaurants",
		Schema: restaurantsSchema,
		Collect: func(ctx context.Context, cfg *config.Config, workers int, logger *slog.Logger) pipeline.Result {
			client := yelp.NewClient(cfg.YelpAPIKey, logger)
			return pipeline.Run(ctx, config.CityRegistry, restaurantStages(client), workers, logger)
		},
	}
}

func restaurantStages(client *yelp.Client) pipeline.Stages[config.City, yelp.Business, yelp.Details] {
	return pipeline.Stages[config.City, yelp.Business, yelp.Details]{
		Dataset: "restaurants",
		Pages: []pipeline.Page{
			{Offset: 0, Limit: 50},
			{Offset: 50, Limit: 50},
		},
		List: func(ctx context.Context, _ string, city config.City, page pipeline.Page) ([]yelp.Business, error) {
			return client.SearchRestaurants(ctx, city.Name, page.Limit, page.Offset)
		},
		Enrich: func(ctx context.Context, b yelp.Business) (yelp.Details, bool, error) {
			return client.BusinessDetails(ctx, b.ID)
		},
		Normalize: normalizeRestaurant,
	}
}

func normalizeRestaurant(city config.City, b yelp.Business, d *yelp.Details, now time.Time) warehouse.Row {
	var hours string
	if d != nil {
		hours = joinHours(d.OpenHours())
	}

	categories := make([]string, len(b.Categories))
	for i, c := range b.Categories {
		categories[i] = c.Title
	}

	return warehouse.Row{
		b.ID,
		city.Name,
		b.Name,
		strings.Join(b.Location.DisplayAddress, ", "),
		b.Coordinates.Latitude,
		b.Coordinates.Longitude,
		b.Rating,
		b.ReviewCount,
		b.Price,
		b.Phone,
		b.URL,
		b.ImageURL,
		strings.Join(categories, ","),
		b.IsClosed,
		strings.Join(b.Transactions, ","),
		hours,
		now,
	}
}

// joinHours renders weekly hours as "day:start-end" windows joined with
// semicolons, e.g. "0:1000-2200;1:1000-2200".
func joinHours(open []yelp.HourRange) string {
	parts := make([]string, len(open))
	for i, h := range open {
		parts[i] = fmt.Sprintf("%d:%s-%s", h.Day, h.Start, h.End)
	}
	return strings.Join(parts, ";")
}
