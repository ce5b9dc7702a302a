// Package places fetches city-level data from the Google Places API: text
// search for the locality and the place details endpoint.
package places

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/citypulse/citypulse-data/internal/provider"
)

const baseURL = "https://maps.googleapis.com/maps/api/place"

// detailFields is the field mask requested from the details endpoint.
const detailFields = "name,formatted_address,geometry,place_id,vicinity,url,website,rating,user_ratings_total,formatted_phone_number,international_phone_number,opening_hours,price_level,types"

// Client calls the Google Places endpoints.
type Client struct {
	c      *provider.Client
	logger *slog.Logger
}

// NewClient creates a Places client. The key travels as a query parameter.
func NewClient(apiKey string, logger *slog.Logger) *Client {
	auth := provider.Auth{Query: url.Values{"key": {apiKey}}}
	return &Client{
		c:      provider.NewClient(baseURL, auth, 120, logger),
		logger: logger,
	}
}

// Inner returns the underlying HTTP client for test overrides.
func (c *Client) Inner() *provider.Client { return c.c }

// --------------------------------------------------------------------------
// Text search (listing — one candidate per city)
// --------------------------------------------------------------------------

// Candidate is the first text-search result for a locality query.
type Candidate struct {
	PlaceID string `json:"place_id"`
	Photos  []struct {
		PhotoReference string `json:"photo_reference"`
	} `json:"photos"`
}

// PhotoReference returns the first photo reference, if any.
func (p Candidate) PhotoReference() string {
	if len(p.Photos) == 0 {
		return ""
	}
	return p.Photos[0].PhotoReference
}

type textSearchResponse struct {
	Results []Candidate `json:"results"`
}

// TextSearch finds the locality for a city name. ok=false when no result
// carries a place id.
func (c *Client) TextSearch(ctx context.Context, cityName string) (Candidate, bool, error) {
	params := url.Values{
		"query": {cityName + " city"},
		"type":  {"locality"},
	}

	var resp textSearchResponse
	if err := c.c.GetJSON(ctx, "/textsearch/json", params, &resp); err != nil {
		return Candidate{}, false, fmt.Errorf("text search %q: %w", cityName, err)
	}
	for _, r := range resp.Results {
		if r.PlaceID != "" {
			return r, true, nil
		}
	}
	return Candidate{}, false, nil
}

// --------------------------------------------------------------------------
// Place details (enricher)
// --------------------------------------------------------------------------

// Details is the detail record for one place.
type Details struct {
	FormattedAddress string `json:"formatted_address"`
	Geometry         struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	URL              string   `json:"url"`
	Website          string   `json:"website"`
	Rating           float64  `json:"rating"`
	UserRatingsTotal int      `json:"user_ratings_total"`
	Types            []string `json:"types"`
	Vicinity         string   `json:"vicinity"`
}

type detailsResponse struct {
	Result *Details `json:"result"`
}

// PlaceDetails fetches the detail record for one place id. ok=false when
// the payload carries no result.
func (c *Client) PlaceDetails(ctx context.Context, placeID string) (Details, bool, error) {
	params := url.Values{
		"place_id": {placeID},
		"fields":   {detailFields},
	}

	var resp detailsResponse
	if err := c.c.GetJSON(ctx, "/details/json", params, &resp); err != nil {
		return Details{}, false, fmt.Errorf("place details %s: %w", placeID, err)
	}
	if resp.Result == nil {
		return Details{}, false, nil
	}
	return *resp.Result, true, nil
}
