package flight

import "time"

// TotalDuration is the span from the first segment's departure to the last
// segment's arrival in whole minutes, floored. A single-segment list yields
// that segment's own span; an empty list yields 0.
func TotalDuration(segments []Segment) int {
	if len(segments) == 0 {
		return 0
	}
	first := segments[0].Departure.Time
	last := segments[len(segments)-1].Arrival.Time
	return int(last.Sub(first) / time.Minute)
}

// StayDuration is the number of days between the outbound arrival and the
// return departure, ceiling-rounded. It returns 0 when either side is empty,
// which callers treat as "not a round trip".
func StayDuration(outbound, returnSegments []Segment) int {
	if len(outbound) == 0 || len(returnSegments) == 0 {
		return 0
	}
	arrival := outbound[len(outbound)-1].Arrival.Time
	departure := returnSegments[0].Departure.Time

	diff := departure.Sub(arrival)
	days := diff / (24 * time.Hour)
	if diff%(24*time.Hour) > 0 {
		days++
	}
	return int(days)
}

// StopCount is the number of intermediate stops in a segment list.
func StopCount(segments []Segment) int {
	if len(segments) == 0 {
		return 0
	}
	return len(segments) - 1
}
