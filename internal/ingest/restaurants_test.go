package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citypulse/citypulse-data/internal/provider/yelp"
)

func sampleBusiness() yelp.Business {
	b := yelp.Business{
		ID:          "r1",
		Name:        "Pho Bac",
		Rating:      4.5,
		ReviewCount: 900,
		Price:       "$$",
		Phone:       "(206) 555-0100",
	}
	b.Coordinates.Latitude = 47.59
	b.Coordinates.Longitude = -122.31
	b.Location.DisplayAddress = []string{"1314 S Jackson St", "Seattle, WA 98144"}
	b.Categories = []struct {
		Title string `json:"title"`
	}{{Title: "Vietnamese"}, {Title: "Noodles"}}
	b.Transactions = []string{"delivery", "pickup"}
	return b
}

func TestNormalizeRestaurant_WithHours(t *testing.T) {
	d := yelp.Details{}
	d.Hours = []struct {
		Open []yelp.HourRange `json:"open"`
	}{{Open: []yelp.HourRange{
		{Day: 0, Start: "1100", End: "2100"},
		{Day: 1, Start: "1100", End: "2200"},
	}}}

	row := normalizeRestaurant(seattle, sampleBusiness(), &d, stamp)

	require.Len(t, row, len(restaurantsSchema.Columns))
	assert.Equal(t, "r1", row[0])
	assert.Equal(t, "Seattle", row[1])
	assert.Equal(t, "1314 S Jackson St, Seattle, WA 98144", row[3])
	assert.Equal(t, "Vietnamese,Noodles", row[12])
	assert.Equal(t, "delivery,pickup", row[14])
	assert.Equal(t, "0:1100-2100;1:1100-2200", row[15])
}

func TestNormalizeRestaurant_WithoutDetails(t *testing.T) {
	row := normalizeRestaurant(seattle, sampleBusiness(), nil, stamp)

	require.Len(t, row, len(restaurantsSchema.Columns))
	assert.Equal(t, "", row[15], "operating hours default to empty string")
	assert.Equal(t, 4.5, row[6])
}

func TestJoinHours(t *testing.T) {
	assert.Equal(t, "", joinHours(nil))
	assert.Equal(t, "2:0900-1700", joinHours([]yelp.HourRange{{Day: 2, Start: "0900", End: "1700"}}))
}

func TestRestaurantPages(t *testing.T) {
	st := restaurantStages(nil)
	require.Len(t, st.Pages, 2)
	assert.Equal(t, 0, st.Pages[0].Offset)
	assert.Equal(t, 50, st.Pages[1].Offset)
	assert.Equal(t, 50, st.Pages[0].Limit)
}
