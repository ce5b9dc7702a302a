// Package bookingcom fetches hotel data from the Booking.com API (via
// RapidAPI): hotel search per city and per-hotel details.
package bookingcom

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/citypulse/citypulse-data/internal/config"
	"github.com/citypulse/citypulse-data/internal/provider"
)

const (
	baseURL = "https://booking-com.p.rapidapi.com/v1/hotels"
	apiHost = "booking-com.p.rapidapi.com"
)

// Client calls the Booking.com hotel endpoints.
type Client struct {
	c      *provider.Client
	logger *slog.Logger
}

// NewClient creates a Booking.com client with the given RapidAPI key.
func NewClient(apiKey string, logger *slog.Logger) *Client {
	auth := provider.Auth{Headers: map[string]string{
		"X-RapidAPI-Key":  apiKey,
		"X-RapidAPI-Host": apiHost,
	}}
	return &Client{
		c:      provider.NewClient(baseURL, auth, 120, logger),
		logger: logger,
	}
}

// Inner returns the underlying HTTP client for test overrides.
func (c *Client) Inner() *provider.Client { return c.c }

// --------------------------------------------------------------------------
// Hotel search (listing)
// --------------------------------------------------------------------------

// Hotel is one search result. Price fields are loosely typed upstream.
type Hotel struct {
	HotelID     provider.ID `json:"hotel_id"`
	HotelName   string      `json:"hotel_name"`
	Address     string      `json:"address"`
	Latitude    float64     `json:"latitude"`
	Longitude   float64     `json:"longitude"`
	Class       float64     `json:"class"`
	ReviewScore any         `json:"review_score"`
	ReviewCount int         `json:"review_nr"`
	PriceLevel  string      `json:"price_level"`
	MinPrice    any         `json:"min_total_price"`
	Currency    string      `json:"currency_code"`
	URL         string      `json:"url"`
	PhotoURL    string      `json:"main_photo_url"`
	FreeCancel  any         `json:"is_free_cancellable"`
}

type searchResponse struct {
	Result []Hotel `json:"result"`
}

// Stay carries the search dates the provider requires.
type Stay struct {
	CheckIn  string // YYYY-MM-DD
	CheckOut string // YYYY-MM-DD
	Adults   int
}

// Search fetches hotels for a city, ordered by popularity.
func (c *Client) Search(ctx context.Context, city config.City, stay Stay, page int) ([]Hotel, error) {
	params := url.Values{
		"units":              {"metric"},
		"room_number":        {"1"},
		"checkin_date":       {stay.CheckIn},
		"checkout_date":      {stay.CheckOut},
		"filter_by_currency": {"USD"},
		"locale":             {"en-us"},
		"adults_number":      {strconv.Itoa(stay.Adults)},
		"order_by":           {"popularity"},
		"dest_type":          {"city"},
		"dest_id":            {city.Name},
		"page_number":        {strconv.Itoa(page)},
		"include_adjacency":  {"true"},
		"latitude":           {strconv.FormatFloat(city.Lat, 'f', -1, 64)},
		"longitude":          {strconv.FormatFloat(city.Lon, 'f', -1, 64)},
	}

	var resp searchResponse
	if err := c.c.GetJSON(ctx, "/search", params, &resp); err != nil {
		return nil, fmt.Errorf("search hotels in %s: %w", city.Name, err)
	}
	return resp.Result, nil
}

// --------------------------------------------------------------------------
// Hotel details (enricher)
// --------------------------------------------------------------------------

// Details is the enrichment record for one hotel.
type Details struct {
	CheckIn struct {
		From string `json:"from"`
	} `json:"checkin"`
	CheckOut struct {
		To string `json:"to"`
	} `json:"checkout"`
	Facilities []string `json:"facilities"`
}

// HotelDetails fetches the detail record for one hotel. ok=false when the
// payload is empty.
func (c *Client) HotelDetails(ctx context.Context, hotelID string) (Details, bool, error) {
	params := url.Values{
		"hotel_id": {hotelID},
		"locale":   {"en-us"},
	}

	var resp Details
	if err := c.c.GetJSON(ctx, "/details", params, &resp); err != nil {
		return Details{}, false, fmt.Errorf("hotel details %s: %w", hotelID, err)
	}
	if resp.CheckIn.From == "" && resp.CheckOut.To == "" && len(resp.Facilities) == 0 {
		return Details{}, false, nil
	}
	return resp, true, nil
}
