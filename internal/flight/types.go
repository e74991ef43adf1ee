package flight

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DestinationAnywhere is the destination sentinel for open-ended searches.
// Providers that support it route to an inspiration-style endpoint.
const DestinationAnywhere = "ANYWHERE"

const dateLayout = "2006-01-02"

// Cabin classes accepted by SearchRequest.Validate.
const (
	CabinEconomy  = "economy"
	CabinPremium  = "premium"
	CabinBusiness = "business"
	CabinFirst    = "first"
)

type SearchRequest struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
	ReturnDate    string `json:"return_date,omitempty"`
	Adults        int    `json:"adults"`
	Children      int    `json:"children,omitempty"`
	Infants       int    `json:"infants,omitempty"`
	CabinClass    string `json:"cabin_class"`
	Currency      string `json:"currency,omitempty"`
	DirectOnly    bool   `json:"direct_only,omitempty"`
	MaxStops      *int   `json:"max_stops,omitempty"`
}

// RoundTrip reports whether the request includes a return date.
func (r *SearchRequest) RoundTrip() bool {
	return r.ReturnDate != ""
}

// Validate normalizes defaults and enforces the request invariants. It
// mutates the receiver: passenger counts and cabin class are defaulted the
// way the upstream providers expect them.
func (r *SearchRequest) Validate() error {
	if r.Origin == "" {
		return ErrMissingOrigin
	}
	if r.Destination == "" {
		return ErrMissingDestination
	}
	if r.DepartureDate == "" {
		return ErrMissingDepartureDate
	}

	depDate, err := time.Parse(dateLayout, r.DepartureDate)
	if err != nil {
		return fmt.Errorf("invalid departure_date %q: %w", r.DepartureDate, err)
	}

	if r.ReturnDate != "" {
		retDate, err := time.Parse(dateLayout, r.ReturnDate)
		if err != nil {
			return fmt.Errorf("invalid return_date %q: %w", r.ReturnDate, err)
		}
		if retDate.Before(depDate) {
			return ErrReturnBeforeDeparture
		}
	}

	if r.Adults <= 0 {
		r.Adults = 1
	}
	if r.Children < 0 {
		r.Children = 0
	}
	if r.Infants < 0 {
		r.Infants = 0
	}

	switch r.CabinClass {
	case CabinEconomy, CabinPremium, CabinBusiness, CabinFirst:
	case "":
		r.CabinClass = CabinEconomy
	default:
		return fmt.Errorf("%w: %q", ErrInvalidCabinClass, r.CabinClass)
	}

	if r.Currency == "" {
		r.Currency = "EUR"
	}

	if r.MaxStops != nil && *r.MaxStops < 0 {
		return errors.New("max_stops must not be negative")
	}

	return nil
}

type Endpoint struct {
	Airport  string    `json:"airport"` // "<City> (<CODE>)"
	Time     time.Time `json:"time"`
	Terminal string    `json:"terminal,omitempty"`
}

type Segment struct {
	Departure    Endpoint `json:"departure"`
	Arrival      Endpoint `json:"arrival"`
	Airline      string   `json:"airline"`
	FlightNumber string   `json:"flight_number"`
	Duration     int      `json:"duration"` // minutes
}

type Price struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Offer is one priced itinerary in the provider-agnostic shape every adapter
// and the mock generator produce.
type Offer struct {
	ID               string    `json:"id"`
	OutboundSegments []Segment `json:"outbound_segments"`
	ReturnSegments   []Segment `json:"return_segments,omitempty"`
	Price            Price     `json:"price"`
	TotalDuration    int       `json:"total_duration"` // minutes
	Stops            int       `json:"stops"`
	BookingURL       string    `json:"booking_url"`
	StayDuration     int       `json:"stay_duration,omitempty"` // days, round trip only
}

type SearchCriteria struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
	ReturnDate    string `json:"return_date,omitempty"`
	Adults        int    `json:"adults"`
	CabinClass    string `json:"cabin_class"`
}

type Metadata struct {
	TotalResults uint32 `json:"total_results"`
	Provider     string `json:"provider"`
	SearchTimeMs uint32 `json:"search_time_ms,omitempty"`
	CacheHit     bool   `json:"cache_hit"`
	CacheKey     string `json:"cache_key,omitempty"`
}

type SearchResponse struct {
	SearchCriteria SearchCriteria `json:"search_criteria"`
	Metadata       Metadata       `json:"metadata"`
	// Message carries a human-readable advisory when the response was
	// degraded to synthetic data.
	Message string  `json:"message,omitempty"`
	Flights []Offer `json:"flights"`
}

type AirportSuggestion struct {
	Code    string `json:"code"`
	City    string `json:"city"`
	Name    string `json:"name"`
	Country string `json:"country,omitempty"`
}

// Client is a live upstream flight-search adapter.
type Client interface {
	Name() string
	Search(ctx context.Context, req SearchRequest) ([]Offer, error)
}

// OfferGenerator produces synthetic offers when no live provider can.
type OfferGenerator interface {
	Offers(req SearchRequest) []Offer
}

// AirportSuggester resolves free-text keywords into airport candidates.
type AirportSuggester interface {
	SuggestAirports(ctx context.Context, keyword string) ([]AirportSuggestion, error)
}
