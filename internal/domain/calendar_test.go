package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2024, Month: time.March, Day: 15}, d)
	assert.Equal(t, "2024-03-15", d.String())

	_, err = ParseDate("15/03/2024")
	assert.Error(t, err)
	_, err = ParseDate("2024-02-30")
	assert.Error(t, err)
}

func TestParseTimeOfDay(t *testing.T) {
	cases := map[string]string{
		"10:30":           "10:30:00",
		"08:00:00":        "08:00:00",
		"23:59:59.123456": "23:59:59",
	}
	for in, want := range cases {
		got, err := ParseTimeOfDay(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got.String())
	}

	for _, bad := range []string{"", "25:00", "10h30", "noon"} {
		_, err := ParseTimeOfDay(bad)
		assert.Error(t, err, bad)
	}
}

func TestFlightJSONShape(t *testing.T) {
	f := Flight{
		ID:                       7,
		FlightNumber:             "AA123",
		OperatingAirlines:        "American Airlines",
		DepartureCity:            "NYC",
		ArrivalCity:              "LAX",
		DateOfDeparture:          Date{Year: 2024, Month: time.March, Day: 15},
		EstimatedTimeOfDeparture: TimeOfDay{Hour: 10, Minute: 30},
	}

	data, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": 7,
		"flightNumber": "AA123",
		"operatingAirLines": "American Airlines",
		"departureCity": "NYC",
		"arrivalCity": "LAX",
		"dateOfDeparture": "2024-03-15",
		"estimatedTimeOfDeparture": "10:30:00"
	}`, string(data))

	var back Flight
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, f, back)
}

func TestReservationJSONShape(t *testing.T) {
	data, err := json.Marshal(Reservation{ID: 1, FlightID: 2, PassengerID: 3})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"flight":2,"passanger":3}`, string(data))
}
