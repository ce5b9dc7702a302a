package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citypulse/citypulse-data/internal/provider/bookingcom"
)

func TestNextMonthStay(t *testing.T) {
	now := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	stay := nextMonthStay(now)

	assert.Equal(t, "2026-09-01", stay.CheckIn)
	assert.Equal(t, "2026-09-03", stay.CheckOut)
	assert.Equal(t, 2, stay.Adults)
}

func TestNextMonthStay_YearRollover(t *testing.T) {
	now := time.Date(2026, 12, 20, 0, 0, 0, 0, time.UTC)
	stay := nextMonthStay(now)

	assert.Equal(t, "2027-01-01", stay.CheckIn)
	assert.Equal(t, "2027-01-03", stay.CheckOut)
}

func TestNormalizeHotel_CoercesLooseFields(t *testing.T) {
	h := bookingcom.Hotel{
		HotelID:     "h9",
		HotelName:   "The Edgewater",
		Address:     "2411 Alaskan Way",
		Latitude:    47.61,
		Longitude:   -122.35,
		Class:       4,
		ReviewScore: "8.8", // quoted number upstream
		ReviewCount: 3100,
		MinPrice:    412.5,
		Currency:    "",
		FreeCancel:  1.0, // 0/1 flag upstream
	}
	d := bookingcom.Details{Facilities: []string{"WiFi", "Parking"}}
	d.CheckIn.From = "15:00"
	d.CheckOut.To = "12:00"

	row := normalizeHotel(seattle, h, &d, stamp)

	require.Len(t, row, len(hotelsSchema.Columns))
	assert.Equal(t, "h9", row[0])
	assert.Equal(t, 8.8, row[7])
	assert.Equal(t, 412.5, row[10])
	assert.Equal(t, "USD", row[11], "currency defaults to USD")
	assert.Equal(t, "12:00", row[14])
	assert.Equal(t, "15:00", row[15])
	assert.Equal(t, true, row[16])
	assert.Equal(t, "WiFi,Parking", row[17])
}

func TestNormalizeHotel_WithoutDetails(t *testing.T) {
	h := bookingcom.Hotel{HotelID: "h9", HotelName: "The Edgewater"}

	row := normalizeHotel(seattle, h, nil, stamp)

	require.Len(t, row, len(hotelsSchema.Columns))
	assert.Equal(t, "", row[14])
	assert.Equal(t, "", row[15])
	assert.Equal(t, false, row[16])
	assert.Equal(t, "", row[17])
	assert.Equal(t, 0.0, row[7], "absent review score defaults to zero")
}
