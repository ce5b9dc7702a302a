package yelp

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)

	client := NewClient("test-key", testLogger)
	client.Inner().SetBaseURL(server.URL)

	return client, server
}

func TestSearchRestaurants(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "Seattle", r.URL.Query().Get("location"))
		assert.Equal(t, "50", r.URL.Query().Get("offset"))
		w.Write([]byte(`{"businesses": [
			{"id": "r1", "name": "Pho Bac", "rating": 4.5, "review_count": 900,
			 "coordinates": {"latitude": 47.6, "longitude": -122.3},
			 "location": {"display_address": ["1314 S Jackson St", "Seattle, WA 98144"]},
			 "categories": [{"title": "Vietnamese"}, {"title": "Noodles"}],
			 "transactions": ["delivery", "pickup"]}
		]}`))
	})
	defer server.Close()

	businesses, err := client.SearchRestaurants(context.Background(), "Seattle", 50, 50)

	require.NoError(t, err)
	require.Len(t, businesses, 1)
	b := businesses[0]
	assert.Equal(t, "r1", b.ID)
	assert.Equal(t, 47.6, b.Coordinates.Latitude)
	assert.Equal(t, []string{"delivery", "pickup"}, b.Transactions)
	assert.Equal(t, "Vietnamese", b.Categories[0].Title)
}

func TestSearchRestaurants_MissingBusinessesKey(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total": 0}`))
	})
	defer server.Close()

	businesses, err := client.SearchRestaurants(context.Background(), "Seattle", 50, 0)

	require.NoError(t, err)
	assert.Empty(t, businesses)
}

func TestBusinessDetails(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/r1", r.URL.Path)
		w.Write([]byte(`{"hours": [{"open": [
			{"day": 0, "start": "1100", "end": "2100"},
			{"day": 1, "start": "1100", "end": "2200"}
		]}]}`))
	})
	defer server.Close()

	details, ok, err := client.BusinessDetails(context.Background(), "r1")

	require.NoError(t, err)
	require.True(t, ok)
	open := details.OpenHours()
	require.Len(t, open, 2)
	assert.Equal(t, 0, open[0].Day)
	assert.Equal(t, "1100", open[0].Start)
}

func TestBusinessDetails_NoHours(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "r1"}`))
	})
	defer server.Close()

	_, ok, err := client.BusinessDetails(context.Background(), "r1")

	require.NoError(t, err)
	assert.False(t, ok)
}
