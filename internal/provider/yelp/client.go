// Package yelp fetches restaurant data from the Yelp Fusion API: business
// search per city and per-business details.
package yelp

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/citypulse/citypulse-data/internal/provider"
)

const baseURL = "https://api.yelp.com/v3/businesses"

// Client calls the Yelp Fusion business endpoints.
type Client struct {
	c      *provider.Client
	logger *slog.Logger
}

// NewClient creates a Yelp client with the given API key (Bearer auth).
func NewClient(apiKey string, logger *slog.Logger) *Client {
	auth := provider.Auth{Headers: map[string]string{
		"Authorization": "Bearer " + apiKey,
		"accept":        "application/json",
	}}
	return &Client{
		c:      provider.NewClient(baseURL, auth, 300, logger),
		logger: logger,
	}
}

// Inner returns the underlying HTTP client for test overrides.
func (c *Client) Inner() *provider.Client { return c.c }

// --------------------------------------------------------------------------
// Business search (listing)
// --------------------------------------------------------------------------

// Business is one search result.
type Business struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
	Price       string  `json:"price"`
	Phone       string  `json:"display_phone"`
	URL         string  `json:"url"`
	ImageURL    string  `json:"image_url"`
	IsClosed    bool    `json:"is_closed"`

	Coordinates struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"coordinates"`
	Location struct {
		DisplayAddress []string `json:"display_address"`
	} `json:"location"`
	Categories []struct {
		Title string `json:"title"`
	} `json:"categories"`
	Transactions []string `json:"transactions"`
}

type searchResponse struct {
	Businesses []Business `json:"businesses"`
}

// SearchRestaurants fetches one listing window of restaurants for a
// location, sorted by best match.
func (c *Client) SearchRestaurants(ctx context.Context, location string, limit, offset int) ([]Business, error) {
	params := url.Values{
		"location": {location},
		"term":     {"restaurants"},
		"limit":    {strconv.Itoa(limit)},
		"offset":   {strconv.Itoa(offset)},
		"sort_by":  {"best_match"},
	}

	var resp searchResponse
	if err := c.c.GetJSON(ctx, "/search", params, &resp); err != nil {
		return nil, fmt.Errorf("search restaurants in %s: %w", location, err)
	}
	return resp.Businesses, nil
}

// --------------------------------------------------------------------------
// Business details (enricher)
// --------------------------------------------------------------------------

// HourRange is one "open" window in a business's weekly hours.
type HourRange struct {
	Day   int    `json:"day"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// Details is the enrichment record for one business.
type Details struct {
	Hours []struct {
		Open []HourRange `json:"open"`
	} `json:"hours"`
}

// OpenHours returns the first hours block's windows, or nil.
func (d Details) OpenHours() []HourRange {
	if len(d.Hours) == 0 {
		return nil
	}
	return d.Hours[0].Open
}

// BusinessDetails fetches the detail record for one business. ok=false
// when the business has no hours data.
func (c *Client) BusinessDetails(ctx context.Context, id string) (Details, bool, error) {
	var resp Details
	if err := c.c.GetJSON(ctx, "/"+id, nil, &resp); err != nil {
		return Details{}, false, fmt.Errorf("business details %s: %w", id, err)
	}
	if len(resp.Hours) == 0 {
		return Details{}, false, nil
	}
	return resp, true, nil
}
