package flightclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farefinder/internal/flight"
)

const graphSearchBody = `{
	"places": [
		{"id": 101, "name": "Madrid", "display_code": "MAD"},
		{"id": 102, "name": "London Stansted", "display_code": "STN"}
	],
	"carriers": [
		{"id": -31722, "name": "Ryanair", "display_code": "FR"}
	],
	"legs": [
		{"id": "leg-out", "segment_ids": ["seg-1"]},
		{"id": "leg-ret", "segment_ids": ["seg-2"]}
	],
	"segments": [
		{
			"id": "seg-1",
			"origin_place_id": 101,
			"destination_place_id": 102,
			"marketing_carrier_id": -31722,
			"operating_carrier_id": -31722,
			"marketing_flight_number": "5996",
			"departure": "2026-09-10T10:15:00",
			"arrival": "2026-09-10T11:55:00",
			"duration": 160
		},
		{
			"id": "seg-2",
			"origin_place_id": 102,
			"destination_place_id": 101,
			"marketing_carrier_id": -31722,
			"operating_carrier_id": -31722,
			"marketing_flight_number": "5997",
			"departure": "2026-09-17T08:00:00",
			"arrival": "2026-09-17T11:40:00",
			"duration": 160
		}
	],
	"itineraries": [
		{
			"id": "itin-1",
			"leg_ids": ["leg-out", "leg-ret"],
			"pricing_options": [
				{"price": {"amount": 84.15}, "items": [{"url": "/deeplink/itin-1"}]}
			]
		},
		{
			"id": "itin-2",
			"leg_ids": ["leg-missing"],
			"pricing_options": [
				{"price": {"amount": 49.00}}
			]
		}
	],
	"query": {"currency": "EUR"}
}`

func roundTripRequest() flight.SearchRequest {
	return flight.SearchRequest{
		Origin:        "Madrid (MAD)",
		Destination:   "London (STN)",
		DepartureDate: "2026-09-10",
		ReturnDate:    "2026-09-17",
		Adults:        1,
		CabinClass:    flight.CabinEconomy,
		Currency:      "EUR",
	}
}

func TestFlightAPISearch_ResolvesGraph(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		io.WriteString(w, graphSearchBody)
	}))
	t.Cleanup(server.Close)

	client := NewFlightAPIClient(server.Client(), server.URL, "test-key", "https://www.example.com", testLogger())

	offers, err := client.Search(context.Background(), roundTripRequest())
	require.NoError(t, err)
	assert.Equal(t, "/roundtrip/test-key/MAD/STN/2026-09-10/2026-09-17/1/0/0/economy/EUR", gotPath)
	require.Len(t, offers, 2)

	resolved := offers[0]
	assert.Equal(t, "itin-1", resolved.ID)
	assert.Equal(t, 84.15, resolved.Price.Amount)
	assert.Equal(t, "EUR", resolved.Price.Currency)
	assert.Equal(t, "https://www.example.com/deeplink/itin-1", resolved.BookingURL)
	assert.Equal(t, 100, resolved.TotalDuration)
	assert.Equal(t, 0, resolved.Stops)
	assert.Equal(t, 7, resolved.StayDuration)

	require.Len(t, resolved.OutboundSegments, 1)
	outbound := resolved.OutboundSegments[0]
	assert.Equal(t, "Madrid (MAD)", outbound.Departure.Airport)
	assert.Equal(t, "London Stansted (STN)", outbound.Arrival.Airport)
	assert.Equal(t, "FR5996", outbound.FlightNumber)
	assert.Equal(t, 160, outbound.Duration)
}

func TestFlightAPISearch_MissingLegDegradesToPlaceholder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, graphSearchBody)
	}))
	t.Cleanup(server.Close)

	client := NewFlightAPIClient(server.Client(), server.URL, "test-key", "https://www.example.com", testLogger())

	offers, err := client.Search(context.Background(), roundTripRequest())
	require.NoError(t, err)
	require.Len(t, offers, 2)

	degraded := offers[1]
	assert.Equal(t, "itin-2", degraded.ID)
	assert.Equal(t, 49.00, degraded.Price.Amount)
	require.Len(t, degraded.OutboundSegments, 1)
	assert.Equal(t, "Unknown (XXX)", degraded.OutboundSegments[0].Departure.Airport)
	assert.Equal(t, "XX0000", degraded.OutboundSegments[0].FlightNumber)
	assert.Equal(t, placeholderMinutes, degraded.OutboundSegments[0].Duration)
}

func TestFlightAPISearch_OneWayPath(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		io.WriteString(w, graphSearchBody)
	}))
	t.Cleanup(server.Close)

	client := NewFlightAPIClient(server.Client(), server.URL, "test-key", "https://www.example.com", testLogger())

	req := roundTripRequest()
	req.ReturnDate = ""
	_, err := client.Search(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "/onewaytrip/test-key/MAD/STN/2026-09-10/1/0/0/economy/EUR", gotPath)
}

func TestFlightAPISearch_GoneIsNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
	}))
	t.Cleanup(server.Close)

	client := NewFlightAPIClient(server.Client(), server.URL, "test-key", "https://www.example.com", testLogger())

	_, err := client.Search(context.Background(), roundTripRequest())
	assert.ErrorIs(t, err, flight.ErrNoResults)
}

func TestFlightAPISearch_CollapsesConcurrentIdenticalSearches(t *testing.T) {
	var upstreamCalls atomic.Int64
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upstreamCalls.Add(1)
		<-release
		io.WriteString(w, graphSearchBody)
	}))
	t.Cleanup(server.Close)

	client := NewFlightAPIClient(server.Client(), server.URL, "test-key", "https://www.example.com", testLogger())

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = client.Search(context.Background(), roundTripRequest())
		}(i)
	}
	close(release)
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int64(1), upstreamCalls.Load())
}

func TestFlightAPIBookingURL_SynthesizedWithoutDeeplink(t *testing.T) {
	body := graphSearchBody
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)

	client := NewFlightAPIClient(server.Client(), server.URL, "test-key", "https://www.example.com", testLogger())

	offers, err := client.Search(context.Background(), roundTripRequest())
	require.NoError(t, err)
	require.Len(t, offers, 2)

	// the second itinerary carries no deeplink; its placeholder segments
	// resolve to XXX codes and placeholder times
	degraded := offers[1]
	assert.Contains(t, degraded.BookingURL, "https://www.example.com/transport/flights/XXX/XXX/")
}

func TestFlightAPISearch_AbsoluteDeeplinkKeptVerbatim(t *testing.T) {
	body := fmt.Sprintf(`{
		"places": [{"id": 1, "name": "Madrid", "display_code": "MAD"}, {"id": 2, "name": "Porto", "display_code": "OPO"}],
		"carriers": [{"id": 9, "name": "TAP", "display_code": "TP"}],
		"legs": [{"id": "l1", "segment_ids": ["s1"]}],
		"segments": [{"id": "s1", "origin_place_id": 1, "destination_place_id": 2, "marketing_carrier_id": 9, "operating_carrier_id": 9, "marketing_flight_number": "1017", "departure": "2026-09-10T09:00:00", "arrival": "2026-09-10T10:20:00", "duration": 80}],
		"itineraries": [{"id": "i1", "leg_ids": ["l1"], "pricing_options": [{"price": {"amount": 55.5}, "items": [{"url": %q}]}]}],
		"query": {"currency": "EUR"}
	}`, "https://partner.example.net/book/i1")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)

	client := NewFlightAPIClient(server.Client(), server.URL, "test-key", "https://www.example.com", testLogger())

	req := roundTripRequest()
	req.ReturnDate = ""
	offers, err := client.Search(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, "https://partner.example.net/book/i1", offers[0].BookingURL)
}
