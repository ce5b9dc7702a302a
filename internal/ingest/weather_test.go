package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citypulse/citypulse-data/internal/provider/openweather"
)

func TestNormalizeForecast(t *testing.T) {
	daily := openweather.Daily{
		Dt:        1754900000,
		Humidity:  62,
		WindSpeed: 9.5,
		WindDeg:   220,
		Pressure:  1014,
		Clouds:    40,
		UVI:       6.2,
		Pop:       0.35,
		Weather:   []openweather.Condition{{Main: "Clouds", Description: "scattered clouds"}},
	}
	daily.Temp.Day = 74.3
	daily.Temp.Min = 58.1
	daily.Temp.Max = 77.9
	daily.FeelsLike.Day = 73.0

	entry := forecastEntry{
		Day:     3,
		Daily:   daily,
		Current: openweather.Current{Visibility: 10000},
	}

	row := normalizeForecast(seattle, entry, nil, stamp)

	require.Len(t, row, len(weatherSchema.Columns))
	assert.Equal(t, "Seattle", row[0])
	assert.Equal(t, seattle.Lat, row[1])
	assert.Equal(t, time.Unix(1754900000, 0).UTC(), row[3])
	assert.Equal(t, 74.3, row[4])
	assert.Equal(t, 58.1, row[5])
	assert.Equal(t, 77.9, row[6])
	assert.Equal(t, "Clouds", row[11])
	assert.Equal(t, "scattered clouds", row[12])
	assert.Equal(t, 10000.0, row[14], "visibility comes from the current block")
	assert.Equal(t, 0.35, row[17])
	assert.Equal(t, 3, row[18])
	assert.Equal(t, stamp, row[19])
}

func TestNormalizeForecast_NoConditions(t *testing.T) {
	entry := forecastEntry{Day: 0}

	row := normalizeForecast(seattle, entry, nil, stamp)

	require.Len(t, row, len(weatherSchema.Columns))
	assert.Equal(t, "", row[11])
	assert.Equal(t, "", row[12])
	assert.Equal(t, 0.0, row[4])
}
