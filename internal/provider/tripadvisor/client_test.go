package tripadvisor

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
	client.Inner().SetHTTPClient(server.Client())

	return client, server
}

func TestSearchLocation(t *testing.T) {
	tests := []struct {
		name     string
		response string
		wantID   string
		wantOK   bool
	}{
		{
			name:     "first result with id wins",
			response: `{"data": [{"somethingElse": 1}, {"locationId": 60878}, {"locationId": 99}]}`,
			wantID:   "60878",
			wantOK:   true,
		},
		{
			name:     "no results",
			response: `{"data": []}`,
			wantOK:   false,
		},
		{
			name:     "missing data key treated as no data",
			response: `{}`,
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/searchLocation", r.URL.Path)
				assert.Equal(t, "test-key", r.Header.Get("X-RapidAPI-Key"))
				w.Write([]byte(tt.response))
			})
			defer server.Close()

			id, ok, err := client.SearchLocation(context.Background(), "Seattle")

			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestSearchLocation_ServerError(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer server.Close()

	_, ok, err := client.SearchLocation(context.Background(), "Seattle")

	require.Error(t, err)
	assert.False(t, ok)
}

func TestSearchAttractions(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/searchAttractionsInLocation", r.URL.Path)
		assert.Equal(t, "60878", r.URL.Query().Get("locationId"))
		assert.Equal(t, "0", r.URL.Query().Get("offset"))
		w.Write([]byte(`{"data": {"attractions": [
			{"locationId": "a1", "title": "Space Needle", "averageRating": 4.5, "reviewCount": 100,
			 "primaryCategory": {"name": "Landmarks"},
			 "secondaryCategories": [{"name": "Towers"}, {"name": "Views"}]},
			{"locationId": 777, "title": "Pike Place Market"}
		]}}`))
	})
	defer server.Close()

	attractions, err := client.SearchAttractions(context.Background(), "60878", 0)

	require.NoError(t, err)
	require.Len(t, attractions, 2)
	assert.Equal(t, "a1", string(attractions[0].LocationID))
	assert.Equal(t, "Space Needle", attractions[0].Title)
	assert.Equal(t, 4.5, attractions[0].AverageRating)
	assert.Equal(t, "Landmarks", attractions[0].PrimaryCategory.Name)
	assert.Equal(t, "777", string(attractions[1].LocationID), "numeric ids are normalized to strings")
}

func TestAttractionDetails(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {
			"website": "https://example.com",
			"suggestedDuration": "1-2 hours",
			"openingHours": ["Mon 9-5", "Tue 9-5"],
			"location": {"street1": "400 Broad St", "city": "Seattle", "state": "WA", "postalCode": "98109"}
		}}`))
	})
	defer server.Close()

	details, ok, err := client.AttractionDetails(context.Background(), "a1")

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "https://example.com", details.Website)
	assert.Equal(t, []string{"400 Broad St", "", "Seattle", "WA", "98109"}, details.AddressParts())
}

func TestAttractionDetails_EmptyPayload(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	defer server.Close()

	_, ok, err := client.AttractionDetails(context.Background(), "a1")

	require.NoError(t, err)
	assert.False(t, ok)
}
