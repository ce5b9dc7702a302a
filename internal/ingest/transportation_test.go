package ingest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citypulse/citypulse-data/internal/config"
	"github.com/citypulse/citypulse-data/internal/provider/rome2rio"
)

func TestCityPairs(t *testing.T) {
	pairs := cityPairs()

	n := len(config.CityRegistry)
	assert.Len(t, pairs, n*(n-1), "all ordered pairs, no self-pairs")
	for _, p := range pairs {
		assert.NotEqual(t, p.Origin, p.Destination)
	}
	assert.Equal(t, "New York to San Francisco", pairs[0].Label())
}

func TestNormalizeRoute(t *testing.T) {
	route := rome2rio.Route{
		Name:     "Fly Seattle to Chicago",
		Kind:     "flight",
		Distance: 2790.4,
		Duration: 255,
		IndicativePrices: []rome2rio.Price{
			{PriceLow: 120, PriceHigh: 410, Currency: "USD"},
		},
		Segments: []rome2rio.Segment{
			{Kind: "flight", Distance: 2780, Duration: 240},
			{Kind: "bus", Distance: 10.4, Duration: 15},
		},
	}
	pair := cityPair{Origin: "Seattle", Destination: "Chicago"}

	row := normalizeRoute(pair, route, nil, stamp)

	require.Len(t, row, len(transportationSchema.Columns))
	assert.Equal(t, "Seattle", row[0])
	assert.Equal(t, "Chicago", row[1])
	assert.Equal(t, 120.0, row[6])
	assert.Equal(t, 410.0, row[7])

	var segments []rome2rio.Segment
	require.NoError(t, json.Unmarshal([]byte(row[9].(string)), &segments))
	require.Len(t, segments, 2)
	assert.Equal(t, "flight", segments[0].Kind)
}

func TestNormalizeRoute_NoPrices(t *testing.T) {
	route := rome2rio.Route{Name: "Walk", Kind: "walk"}
	pair := cityPair{Origin: "A", Destination: "B"}

	row := normalizeRoute(pair, route, nil, stamp)

	assert.Equal(t, 0.0, row[6])
	assert.Equal(t, 0.0, row[7])
	assert.Equal(t, "", row[8])
	assert.Equal(t, "[]", row[9], "nil segments serialize as an empty list")
}
