// Package openweather fetches current conditions and the daily forecast
// from the OpenWeatherMap One Call API.
package openweather

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/citypulse/citypulse-data/internal/provider"
)

const baseURL = "https://api.openweathermap.org/data/2.5"

// Client calls the One Call endpoint.
type Client struct {
	c      *provider.Client
	logger *slog.Logger
}

// NewClient creates an OpenWeatherMap client. The key travels as the
// appid query parameter.
func NewClient(apiKey string, logger *slog.Logger) *Client {
	auth := provider.Auth{Query: url.Values{"appid": {apiKey}}}
	return &Client{
		c:      provider.NewClient(baseURL, auth, 60, logger),
		logger: logger,
	}
}

// Inner returns the underlying HTTP client for test overrides.
func (c *Client) Inner() *provider.Client { return c.c }

// Condition is one weather condition entry.
type Condition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

// Current is the current-conditions block.
type Current struct {
	Dt         int64       `json:"dt"`
	Temp       float64     `json:"temp"`
	FeelsLike  float64     `json:"feels_like"`
	Humidity   float64     `json:"humidity"`
	WindSpeed  float64     `json:"wind_speed"`
	WindDeg    float64     `json:"wind_deg"`
	Pressure   float64     `json:"pressure"`
	Visibility float64     `json:"visibility"`
	Clouds     float64     `json:"clouds"`
	UVI        float64     `json:"uvi"`
	Weather    []Condition `json:"weather"`
}

// Daily is one daily forecast entry.
type Daily struct {
	Dt   int64 `json:"dt"`
	Temp struct {
		Day float64 `json:"day"`
		Min float64 `json:"min"`
		Max float64 `json:"max"`
	} `json:"temp"`
	FeelsLike struct {
		Day float64 `json:"day"`
	} `json:"feels_like"`
	Humidity  float64     `json:"humidity"`
	WindSpeed float64     `json:"wind_speed"`
	WindDeg   float64     `json:"wind_deg"`
	Pressure  float64     `json:"pressure"`
	Clouds    float64     `json:"clouds"`
	UVI       float64     `json:"uvi"`
	Pop       float64     `json:"pop"`
	Weather   []Condition `json:"weather"`
}

// Forecast is the One Call response for one location.
type Forecast struct {
	Current Current `json:"current"`
	Daily   []Daily `json:"daily"`
}

// FirstCondition returns the leading condition of a list, or a zero value.
func FirstCondition(conds []Condition) Condition {
	if len(conds) == 0 {
		return Condition{}
	}
	return conds[0]
}

// OneCall fetches current conditions plus the daily forecast for a
// coordinate pair, in imperial units.
func (c *Client) OneCall(ctx context.Context, lat, lon float64) (Forecast, error) {
	params := url.Values{
		"lat":     {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon":     {strconv.FormatFloat(lon, 'f', -1, 64)},
		"units":   {"imperial"},
		"exclude": {"minutely,alerts"},
	}

	var resp Forecast
	if err := c.c.GetJSON(ctx, "/onecall", params, &resp); err != nil {
		return Forecast{}, fmt.Errorf("one call %.4f,%.4f: %w", lat, lon, err)
	}
	return resp, nil
}
