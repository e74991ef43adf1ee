// Package mockgen produces synthetic flight offers in the exact shape the
// provider adapters emit, so downstream consumers cannot tell mock mode from
// a degraded live search. Values are randomized, shape is deterministic.
package mockgen

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"farefinder/internal/flight"
	"farefinder/pkg/airlines"
	"farefinder/pkg/idgen"
)

const offersPerSearch = 12

// Stopover used for multi-stop synthetic itineraries.
const (
	stopoverCode = "LIS"
	stopoverCity = "Lisbon"
)

var carrierCodes = []string{"TP", "FR", "U2", "LH", "KL", "AF", "BA", "W6", "EK", "TK"}

var carrierSites = map[string]string{
	"LH": "https://www.lufthansa.com",
	"FR": "https://www.ryanair.com",
	"W6": "https://www.wizzair.com",
	"U2": "https://www.easyjet.com",
	"TP": "https://www.flytap.com",
}

// Generator builds synthetic offers. The random source is injected so tests
// can seed it for deterministic values.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
	ids idgen.Generator
}

func New(rng *rand.Rand, ids idgen.Generator) *Generator {
	return &Generator{rng: rng, ids: ids}
}

// Offers returns offersPerSearch synthetic offers honoring DirectOnly and
// ReturnDate, pre-sorted ascending by price.
func (g *Generator) Offers(req flight.SearchRequest) []flight.Offer {
	g.mu.Lock()
	defer g.mu.Unlock()

	originCode := flight.ExtractIATACode(req.Origin)
	destCode := flight.ExtractIATACode(req.Destination)
	if destCode == flight.DestinationAnywhere {
		destCode = "BCN"
	}

	depDay, err := time.Parse("2006-01-02", req.DepartureDate)
	if err != nil {
		depDay = time.Now().UTC().Truncate(24 * time.Hour)
	}

	offers := make([]flight.Offer, 0, offersPerSearch)
	for i := 0; i < offersPerSearch; i++ {
		airline := carrierCodes[i%len(carrierCodes)]
		price := 89 + g.rng.Float64()*400

		stops := 0
		if !req.DirectOnly {
			stops = g.rng.Intn(2)
		}
		if req.MaxStops != nil && stops > *req.MaxStops {
			stops = *req.MaxStops
		}

		departure := depDay.Add(time.Duration(6+i*3/2)*time.Hour + time.Duration((i*25)%60)*time.Minute)
		duration := 120 + stops*90 + g.rng.Intn(60)

		outbound := g.buildSegments(originCode, destCode, airline, departure, duration, stops)

		offer := flight.Offer{
			ID:               g.ids.OfferID(),
			OutboundSegments: outbound,
			Price: flight.Price{
				Amount:   float64(int(price*100)) / 100,
				Currency: req.Currency,
			},
			TotalDuration: flight.TotalDuration(outbound),
			Stops:         flight.StopCount(outbound),
			BookingURL:    bookingURL(airline, originCode, destCode),
		}

		if req.RoundTrip() {
			retDay, err := time.Parse("2006-01-02", req.ReturnDate)
			if err != nil {
				retDay = depDay.Add(7 * 24 * time.Hour)
			}
			retDeparture := retDay.Add(time.Duration(7+i*6/5)*time.Hour + time.Duration((i*35)%60)*time.Minute)
			offer.ReturnSegments = g.buildSegments(destCode, originCode, airline, retDeparture, duration, stops)
			offer.StayDuration = flight.StayDuration(offer.OutboundSegments, offer.ReturnSegments)
		}

		offers = append(offers, offer)
	}

	sort.SliceStable(offers, func(i, j int) bool {
		return offers[i].Price.Amount < offers[j].Price.Amount
	})
	return offers
}

func (g *Generator) buildSegments(fromCode, toCode, airline string, departure time.Time, totalMinutes, stops int) []flight.Segment {
	arrival := departure.Add(time.Duration(totalMinutes) * time.Minute)

	if stops == 0 {
		return []flight.Segment{{
			Departure:    flight.Endpoint{Airport: airlines.DisplayAirport(fromCode), Time: departure},
			Arrival:      flight.Endpoint{Airport: airlines.DisplayAirport(toCode), Time: arrival},
			Airline:      airline,
			FlightNumber: g.flightNumber(airline),
			Duration:     totalMinutes,
		}}
	}

	// one stopover with a fixed one-hour connection
	firstLeg := totalMinutes * 2 / 5
	secondLeg := totalMinutes - firstLeg - 60
	stopArrival := departure.Add(time.Duration(firstLeg) * time.Minute)
	stopDeparture := stopArrival.Add(time.Hour)

	return []flight.Segment{
		{
			Departure:    flight.Endpoint{Airport: airlines.DisplayAirport(fromCode), Time: departure},
			Arrival:      flight.Endpoint{Airport: stopoverCity + " (" + stopoverCode + ")", Time: stopArrival},
			Airline:      airline,
			FlightNumber: g.flightNumber(airline),
			Duration:     firstLeg,
		},
		{
			Departure:    flight.Endpoint{Airport: stopoverCity + " (" + stopoverCode + ")", Time: stopDeparture},
			Arrival:      flight.Endpoint{Airport: airlines.DisplayAirport(toCode), Time: arrival},
			Airline:      airline,
			FlightNumber: g.flightNumber(airline),
			Duration:     secondLeg,
		},
	}
}

func (g *Generator) flightNumber(airline string) string {
	return fmt.Sprintf("%s%d", airline, 1000+g.rng.Intn(8999))
}

func bookingURL(airline, originCode, destCode string) string {
	if site, ok := carrierSites[airline]; ok {
		return site
	}
	return fmt.Sprintf("https://www.skyscanner.com/transport/flights/%s/%s/", originCode, destCode)
}
