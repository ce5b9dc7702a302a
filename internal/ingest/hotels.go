package ingest

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/citypulse/citypulse-data/internal/config"
	"github.com/citypulse/citypulse-data/internal/pipeline"
	"github.com/citypulse/citypulse-data/internal/provider"
	"github.com/citypulse/citypulse-data/internal/provider/bookingcom"
	"github.com/citypulse/citypulse-data/internal/warehouse"
)

var hotelsSchema = warehouse.Schema{
	Table: config.HotelsTable,
	Columns: []warehouse.Column{
		{Name: "hotel_id", Type: warehouse.Text},
		{Name: "city", Type: warehouse.Text},
		{Name: "name", Type: warehouse.Text},
		{Name: "address", Type: warehouse.Text},
		{Name: "latitude", Type: warehouse.Float},
		{Name: "longitude", Type: warehouse.Float},
		{Name: "star_rating", Type: warehouse.Float},
		{Name: "review_score", Type: warehouse.Float},
		{Name: "review_count", Type: warehouse.Integer},
		{Name: "price_level", Type: warehouse.Text},
		{Name: "min_price", Type: warehouse.Float},
		{Name: "currency", Type: warehouse.Text},
		{Name: "url", Type: warehouse.Text},
		{Name: "image_url", Type: warehouse.Text},
		{Name: "checkout_time", Type: warehouse.Text},
		{Name: "checkin_time", Type: warehouse.Text},
		{Name: "is_free_cancellable", Type: warehouse.Boolean},
		{Name: "amenities", Type: warehouse.Text},
		{Name: "updated_at", Type: warehouse.Timestamp},
	},
}

// Hotels is the Booking.com hotels dataset.
func Hotels() Dataset {
	return Dataset{
		Name:   "hotels",
		Schema: hotelsSchema,
		Collect: func(ctx context.Context, cfg *config.Config, workers int, logger *slog.Logger) pipeline.Result {
			client := bookingcom.NewClient(cfg.RapidAPIKey, logger)
			stay := nextMonthStay(time.Now())
			return pipeline.Run(ctx, config.CityRegistry, hotelStages(client, stay), workers, logger)
		},
	}
}

// nextMonthStay builds the search window the listing requires: a two-night
// stay starting on the first day of next month.
func nextMonthStay(now time.Time) bookingcom.Stay {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return bookingcom.Stay{
		CheckIn:  first.Format("2006-01-02"),
		CheckOut: first.AddDate(0, 0, 2).Format("2006-01-02"),
		Adults:   2,
	}
}

func hotelStages(client *bookingcom.Client, stay bookingcom.Stay) pipeline.Stages[config.City, bookingcom.Hotel, bookingcom.Details] {
	return pipeline.Stages[config.City, bookingcom.Hotel, bookingcom.Details]{
		Dataset: "hotels",
		// The search endpoint takes the city name and coordinates
		// directly, so no resolution call is needed.
		List: func(ctx context.Context, _ string, city config.City, page pipeline.Page) ([]bookingcom.Hotel, error) {
			return client.Search(ctx, city, stay, page.Offset)
		},
		Enrich: func(ctx context.Context, h bookingcom.Hotel) (bookingcom.Details, bool, error) {
			return client.HotelDetails(ctx, string(h.HotelID))
		},
		Normalize: normalizeHotel,
	}
}

func normalizeHotel(city config.City, h bookingcom.Hotel, d *bookingcom.Details, now time.Time) warehouse.Row {
	var checkoutTime, checkinTime, amenities string
	if d != nil {
		checkoutTime = d.CheckOut.To
		checkinTime = d.CheckIn.From
		amenities = strings.Join(d.Facilities, ",")
	}

	currency := h.Currency
	if currency == "" {
		currency = "USD"
	}

	return warehouse.Row{
		string(h.HotelID),
		city.Name,
		h.HotelName,
		h.Address,
		h.Latitude,
		h.Longitude,
		h.Class,
		provider.Float(h.ReviewScore),
		h.ReviewCount,
		h.PriceLevel,
		provider.Float(h.MinPrice),
		currency,
		h.URL,
		h.PhotoURL,
		checkoutTime,
		checkinTime,
		provider.Bool(h.FreeCancel),
		amenities,
		now,
	}
}
