package flight

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func segmentBetween(dep, arr time.Time) Segment {
	return Segment{
		Departure: Endpoint{Airport: "Madrid (MAD)", Time: dep},
		Arrival:   Endpoint{Airport: "Lisbon (LIS)", Time: arr},
	}
}

func TestTotalDuration_SpansFirstDepartureToLastArrival(t *testing.T) {
	dep := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	segments := []Segment{
		segmentBetween(dep, dep.Add(95*time.Minute)),
		segmentBetween(dep.Add(155*time.Minute), dep.Add(4*time.Hour)),
	}

	// layover time counts toward the total
	assert.Equal(t, 240, TotalDuration(segments))
}

func TestTotalDuration_FloorsPartialMinutes(t *testing.T) {
	dep := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	segments := []Segment{segmentBetween(dep, dep.Add(90*time.Minute+45*time.Second))}

	assert.Equal(t, 90, TotalDuration(segments))
}

func TestTotalDuration_Empty(t *testing.T) {
	assert.Equal(t, 0, TotalDuration(nil))
}

func TestStayDuration_CeilsPartialDays(t *testing.T) {
	arrival := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	outbound := []Segment{segmentBetween(arrival.Add(-2*time.Hour), arrival)}

	cases := []struct {
		name      string
		departure time.Time
		want      int
	}{
		{"exact three days", arrival.AddDate(0, 0, 3), 3},
		{"three days and an hour rounds up", arrival.AddDate(0, 0, 3).Add(time.Hour), 4},
		{"under a day rounds up to one", arrival.Add(6 * time.Hour), 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			returnSegments := []Segment{segmentBetween(tc.departure, tc.departure.Add(2*time.Hour))}
			assert.Equal(t, tc.want, StayDuration(outbound, returnSegments))
		})
	}
}

func TestStayDuration_ZeroWhenEitherSideEmpty(t *testing.T) {
	dep := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	segments := []Segment{segmentBetween(dep, dep.Add(time.Hour))}

	assert.Equal(t, 0, StayDuration(nil, segments))
	assert.Equal(t, 0, StayDuration(segments, nil))
}

func TestStopCount(t *testing.T) {
	dep := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	seg := segmentBetween(dep, dep.Add(time.Hour))

	assert.Equal(t, 0, StopCount(nil))
	assert.Equal(t, 0, StopCount([]Segment{seg}))
	assert.Equal(t, 1, StopCount([]Segment{seg, seg}))
	assert.Equal(t, 2, StopCount([]Segment{seg, seg, seg}))
}

func TestExtractIATACode(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"New York (JFK)", "JFK"},
		{"Madrid (MAD)", "MAD"},
		{"mad", "MAD"},
		{" lisbon", "LIS"},
		{"ANYWHERE", "ANYWHERE"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ExtractIATACode(tc.in), "input %q", tc.in)
	}
}
