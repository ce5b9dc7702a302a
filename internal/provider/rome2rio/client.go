// Package rome2rio fetches city-to-city route data from the Rome2Rio
// search API. One call per ordered city pair; no detail endpoint exists.
package rome2rio

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/citypulse/citypulse-data/internal/provider"
)

const baseURL = "https://api.rome2rio.com/api/1.5/json"

// Client calls the Rome2Rio search endpoint.
type Client struct {
	c      *provider.Client
	logger *slog.Logger
}

// NewClient creates a Rome2Rio client. The key travels as a query
// parameter. Calls are paced at roughly one per second.
func NewClient(apiKey string, logger *slog.Logger) *Client {
	auth := provider.Auth{Query: url.Values{"key": {apiKey}}}
	return &Client{
		c:      provider.NewClient(baseURL, auth, 60, logger),
		logger: logger,
	}
}

// Inner returns the underlying HTTP client for test overrides.
func (c *Client) Inner() *provider.Client { return c.c }

// Segment is one leg of a route.
type Segment struct {
	Kind     string  `json:"kind"`
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
}

// Price is an indicative fare range for a route.
type Price struct {
	PriceLow  float64 `json:"priceLow"`
	PriceHigh float64 `json:"priceHigh"`
	Currency  string  `json:"currency"`
}

// Route is one way of travelling between two cities.
type Route struct {
	Name             string    `json:"name"`
	Kind             string    `json:"kind"`
	Distance         float64   `json:"distance"`
	Duration         float64   `json:"duration"`
	IndicativePrices []Price   `json:"indicativePrices"`
	Segments         []Segment `json:"segments"`
}

// FirstPrice returns the leading indicative price, or a zero value.
func (r Route) FirstPrice() Price {
	if len(r.IndicativePrices) == 0 {
		return Price{}
	}
	return r.IndicativePrices[0]
}

type searchResponse struct {
	Routes []Route `json:"routes"`
}

// Search fetches all routes between two city names.
func (c *Client) Search(ctx context.Context, origin, destination string) ([]Route, error) {
	params := url.Values{
		"oName":        {origin},
		"dName":        {destination},
		"currencyCode": {"USD"},
	}

	var resp searchResponse
	if err := c.c.GetJSON(ctx, "/Search", params, &resp); err != nil {
		return nil, fmt.Errorf("search routes %s to %s: %w", origin, destination, err)
	}
	return resp.Routes, nil
}
