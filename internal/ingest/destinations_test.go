package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citypulse/citypulse-data/internal/config"
	"github.com/citypulse/citypulse-data/internal/provider/places"
)

func TestNormalizeDestination_WithDetails(t *testing.T) {
	candidate := places.Candidate{PlaceID: "ChIJ123"}
	candidate.Photos = []struct {
		PhotoReference string `json:"photo_reference"`
	}{{PhotoReference: "ref-1"}}

	d := places.Details{
		FormattedAddress: "Seattle, WA, USA",
		URL:              "https://maps.google.com/?cid=1",
		Rating:           4.7,
		UserRatingsTotal: 55000,
		Types:            []string{"locality", "political"},
		Vicinity:         "Seattle",
	}
	d.Geometry.Location.Lat = 47.6062
	d.Geometry.Location.Lng = -122.3321

	row := normalizeDestination(seattle, candidate, &d, stamp)

	require.Len(t, row, len(destinationsSchema.Columns))
	assert.Equal(t, "ChIJ123", row[0])
	assert.Equal(t, "Seattle", row[1])
	assert.Equal(t, "Seattle, WA, USA", row[2])
	assert.Equal(t, 47.6062, row[3])
	assert.Equal(t, "locality,political", row[9])
	assert.Equal(t, "ref-1", row[10])
	assert.Equal(t, "USA", row[13])
	assert.Equal(t, "", row[14], "registry names carry no state suffix")
}

func TestNormalizeDestination_WithoutDetails(t *testing.T) {
	row := normalizeDestination(seattle, places.Candidate{PlaceID: "ChIJ123"}, nil, stamp)

	require.Len(t, row, len(destinationsSchema.Columns))
	assert.Equal(t, "", row[2])
	assert.Equal(t, 0.0, row[3])
	assert.Equal(t, 0, row[8])
	assert.Equal(t, "", row[10], "no photo reference without search photos")
}

func TestNormalizeDestination_StateSuffix(t *testing.T) {
	city := config.City{Name: "Portland, OR"}
	row := normalizeDestination(city, places.Candidate{PlaceID: "x"}, nil, stamp)

	assert.Equal(t, "OR", row[14])
}

func TestDatasetRegistry(t *testing.T) {
	names := []string{}
	for _, ds := range Datasets() {
		names = append(names, ds.Name)
		assert.NoError(t, ds.Schema.Validate(), ds.Name)
		assert.NotNil(t, ds.Collect, ds.Name)
	}
	assert.Equal(t, []string{"attractions", "hotels", "restaurants", "destinations", "transportation", "weather"}, names)

	_, ok := ByName("restaurants")
	assert.True(t, ok)
	_, ok = ByName("unknown")
	assert.False(t, ok)
}
