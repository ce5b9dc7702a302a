// Package provider provides HTTP client infrastructure and field coercion
// helpers shared by all upstream API packages.
//
// Every provider is a plain GET API with either header or query-parameter
// auth. Rate limiting is handled via a token bucket limiter.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// Auth carries the credentials a provider expects on every request.
type Auth struct {
	// Headers are set verbatim on each request (e.g. X-RapidAPI-Key).
	Headers map[string]string
	// Query parameters merged into each request (e.g. Google's key=...).
	Query url.Values
}

// Client is the shared HTTP client for one provider's endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	auth       Auth
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a provider HTTP client with rate limiting.
func NewClient(baseURL string, auth Auth, requestsPerMinute int, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	rps := float64(requestsPerMinute) / 60.0
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		auth:       auth,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
	}
}

// SetHTTPClient overrides the underlying HTTP client. Used by tests to
// point the provider at an httptest server.
func (c *Client) SetHTTPClient(hc *http.Client) { c.httpClient = hc }

// SetBaseURL overrides the provider base URL. Used by tests.
func (c *Client) SetBaseURL(u string) { c.baseURL = u }

// GetJSON performs a rate-limited GET and decodes the JSON response into out.
func (c *Client) GetJSON(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	merged := url.Values{}
	for k, vs := range c.auth.Query {
		merged[k] = vs
	}
	for k, vs := range params {
		merged[k] = vs
	}

	u := c.baseURL + path
	if len(merged) > 0 {
		u += "?" + merged.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	for k, v := range c.auth.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned %d: %s", path, resp.StatusCode, truncate(body, 200))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
