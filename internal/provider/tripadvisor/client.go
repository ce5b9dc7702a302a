// Package tripadvisor fetches attraction data from the TripAdvisor API
// (via RapidAPI): city search, attraction listings, and per-attraction
// details.
package tripadvisor

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/citypulse/citypulse-data/internal/provider"
)

const (
	baseURL  = "https://tripadvisor16.p.rapidapi.com/api/v1/attractions"
	apiHost  = "tripadvisor16.p.rapidapi.com"
	language = "en"
	currency = "USD"
)

// Client calls the TripAdvisor attraction endpoints.
type Client struct {
	c      *provider.Client
	logger *slog.Logger
}

// NewClient creates a TripAdvisor client with the given RapidAPI key.
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
// Location search (resolver)
// --------------------------------------------------------------------------

type searchLocationResponse struct {
	Data []struct {
		LocationID provider.ID `json:"locationId"`
	} `json:"data"`
}

// SearchLocation resolves a city name to its TripAdvisor location id.
// Returns ok=false when no result carries an identifier.
func (c *Client) SearchLocation(ctx context.Context, query string) (string, bool, error) {
	params := url.Values{
		"query":    {query},
		"language": {language},
	}

	var resp searchLocationResponse
	if err := c.c.GetJSON(ctx, "/searchLocation", params, &resp); err != nil {
		return "", false, fmt.Errorf("search location %q: %w", query, err)
	}

	for _, result := range resp.Data {
		if result.LocationID != "" {
			return string(result.LocationID), true, nil
		}
	}
	return "", false, nil
}

// --------------------------------------------------------------------------
// Attraction listing
// --------------------------------------------------------------------------

// Attraction is one listing entry for a location.
type Attraction struct {
	LocationID    provider.ID `json:"locationId"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Latitude      float64     `json:"latitude"`
	Longitude     float64     `json:"longitude"`
	AverageRating float64     `json:"averageRating"`
	ReviewCount   int         `json:"reviewCount"`

	PrimaryCategory struct {
		Name string `json:"name"`
	} `json:"primaryCategory"`
	SecondaryCategories []struct {
		Name string `json:"name"`
	} `json:"secondaryCategories"`

	PriceLevel string `json:"priceLevel"`
	PriceRange string `json:"priceRange"`

	Thumbnail struct {
		URL string `json:"url"`
	} `json:"thumbnail"`
}

type searchAttractionsResponse struct {
	Data struct {
		Attractions []Attraction `json:"attractions"`
	} `json:"data"`
}

// SearchAttractions fetches one listing window for a location.
func (c *Client) SearchAttractions(ctx context.Context, locationID string, offset int) ([]Attraction, error) {
	params := url.Values{
		"locationId": {locationID},
		"language":   {language},
		"currency":   {currency},
		"offset":     {strconv.Itoa(offset)},
	}

	var resp searchAttractionsResponse
	if err := c.c.GetJSON(ctx, "/searchAttractionsInLocation", params, &resp); err != nil {
		return nil, fmt.Errorf("search attractions in %s: %w", locationID, err)
	}
	return resp.Data.Attractions, nil
}

// --------------------------------------------------------------------------
// Attraction details (enricher)
// --------------------------------------------------------------------------

// Details is the enrichment record for one attraction.
type Details struct {
	Website           string   `json:"website"`
	SuggestedDuration string   `json:"suggestedDuration"`
	OpeningHours      []string `json:"openingHours"`

	Location struct {
		Street1    string `json:"street1"`
		Street2    string `json:"street2"`
		City       string `json:"city"`
		State      string `json:"state"`
		PostalCode string `json:"postalCode"`
	} `json:"location"`
}

// AddressParts returns the address components in display order.
func (d Details) AddressParts() []string {
	return []string{
		d.Location.Street1,
		d.Location.Street2,
		d.Location.City,
		d.Location.State,
		d.Location.PostalCode,
	}
}

type detailsResponse struct {
	Data *Details `json:"data"`
}

// AttractionDetails fetches the detail record for one attraction.
// ok=false when the payload carries no data object.
func (c *Client) AttractionDetails(ctx context.Context, locationID string) (Details, bool, error) {
	params := url.Values{
		"locationId": {locationID},
		"language":   {language},
		"currency":   {currency},
	}

	var resp detailsResponse
	if err := c.c.GetJSON(ctx, "/getAttractionDetails", params, &resp); err != nil {
		return Details{}, false, fmt.Errorf("attraction details %s: %w", locationID, err)
	}
	if resp.Data == nil {
		return Details{}, false, nil
	}
	return *resp.Data, true, nil
}
