package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

type GraphResponse struct {
	Places      []GraphPlace     `json:"places"`
	Carriers    []GraphCarrier   `json:"carriers"`
	Legs        []GraphLeg       `json:"legs"`
	Segments    []GraphSegment   `json:"segments"`
	Itineraries []GraphItinerary `json:"itineraries"`
	Query       GraphQuery       `json:"query"`
}

type GraphPlace struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	DisplayCode string `json:"display_code"`
	AltID       string `json:"alt_id,omitempty"`
}

type GraphCarrier struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	DisplayCode string `json:"display_code"`
	AltID       string `json:"alt_id,omitempty"`
}

type GraphLeg struct {
	ID         string   `json:"id"`
	SegmentIDs []string `json:"segment_ids"`
}

type GraphSegment struct {
	ID                    string `json:"id"`
	OriginPlaceID         int    `json:"origin_place_id"`
	DestinationPlaceID    int    `json:"destination_place_id"`
	MarketingCarrierID    int    `json:"marketing_carrier_id"`
	OperatingCarrierID    int    `json:"operating_carrier_id"`
	MarketingFlightNumber string `json:"marketing_flight_number"`
	Departure             string `json:"departure"`
	Arrival               string `json:"arrival"`
	Duration              int    `json:"duration"`
}

type GraphItinerary struct {
	ID             string               `json:"id"`
	LegIDs         []string             `json:"leg_ids"`
	PricingOptions []GraphPricingOption `json:"pricing_options"`
}

type GraphPricingOption struct {
	Price struct {
		Amount float64 `json:"amount"`
	} `json:"price"`
	Items []struct {
		URL string `json:"url"`
	} `json:"items"`
}

type GraphQuery struct {
	Currency string `json:"currency"`
}

// GraphSearchHandler serves both trip shapes:
//
//	/graph/roundtrip/{key}/{org}/{dst}/{dep}/{ret}/{adults}/{children}/{infants}/{cabin}/{currency}
//	/graph/onewaytrip/{key}/{org}/{dst}/{dep}/{adults}/{children}/{infants}/{cabin}/{currency}
func GraphSearchHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/graph/"), "/"), "/")
	if len(parts) < 10 {
		http.Error(w, "unexpected path shape", http.StatusBadRequest)
		return
	}

	trip := parts[0]
	origin := strings.ToUpper(parts[2])
	dest := strings.ToUpper(parts[3])
	depDate := parts[4]

	roundTrip := trip == "roundtrip"
	retDate := ""
	currency := parts[len(parts)-1]
	if roundTrip {
		retDate = parts[5]
	}

	resp := GraphResponse{
		Places: []GraphPlace{
			{ID: 101, Name: "Origin City", DisplayCode: origin},
			{ID: 102, Name: "Destination City", DisplayCode: dest},
		},
		Carriers: []GraphCarrier{
			{ID: -31722, Name: "Ryanair", DisplayCode: "FR"},
			{ID: -32753, Name: "Vueling", DisplayCode: "VY"},
		},
		Query: GraphQuery{Currency: strings.ToUpper(currency)},
	}

	for i := 0; i < 3; i++ {
		segID := fmt.Sprintf("seg-out-%d", i)
		legID := fmt.Sprintf("leg-out-%d", i)
		resp.Segments = append(resp.Segments, GraphSegment{
			ID:                    segID,
			OriginPlaceID:         101,
			DestinationPlaceID:    102,
			MarketingCarrierID:    -31722,
			OperatingCarrierID:    -31722,
			MarketingFlightNumber: fmt.Sprintf("%d", 1400+i),
			Departure:             depDate + fmt.Sprintf("T%02d:15:00", 8+i*4),
			Arrival:               depDate + fmt.Sprintf("T%02d:40:00", 10+i*4),
			Duration:              145,
		})
		resp.Legs = append(resp.Legs, GraphLeg{ID: legID, SegmentIDs: []string{segID}})

		itin := GraphItinerary{
			ID:     fmt.Sprintf("itin-%d", i),
			LegIDs: []string{legID},
		}
		var option GraphPricingOption
		option.Price.Amount = 65.0 + float64(i)*38.0
		option.Items = []struct {
			URL string `json:"url"`
		}{{URL: fmt.Sprintf("/deeplink/itin-%d", i)}}
		itin.PricingOptions = []GraphPricingOption{option}

		if roundTrip {
			retSegID := fmt.Sprintf("seg-ret-%d", i)
			retLegID := fmt.Sprintf("leg-ret-%d", i)
			resp.Segments = append(resp.Segments, GraphSegment{
				ID:                    retSegID,
				OriginPlaceID:         102,
				DestinationPlaceID:    101,
				MarketingCarrierID:    -32753,
				OperatingCarrierID:    -32753,
				MarketingFlightNumber: fmt.Sprintf("%d", 2400+i),
				Departure:             retDate + fmt.Sprintf("T%02d:05:00", 9+i*4),
				Arrival:               retDate + fmt.Sprintf("T%02d:30:00", 11+i*4),
				Duration:              145,
			})
			resp.Legs = append(resp.Legs, GraphLeg{ID: retLegID, SegmentIDs: []string{retSegID}})
			itin.LegIDs = append(itin.LegIDs, retLegID)
		}

		resp.Itineraries = append(resp.Itineraries, itin)
	}

	// one itinerary referencing a leg the legs array never defines, to
	// exercise the caller's placeholder degradation
	dangling := GraphItinerary{
		ID:     "itin-dangling",
		LegIDs: []string{"leg-missing"},
	}
	var option GraphPricingOption
	option.Price.Amount = 49.0
	dangling.PricingOptions = []GraphPricingOption{option}
	resp.Itineraries = append(resp.Itineraries, dangling)

	if depDate == time.Now().AddDate(0, 0, -1).Format("2006-01-02") {
		// searches for yesterday have expired upstream
		http.Error(w, "results expired", http.StatusGone)
		return
	}

	stubDelay()
	writeJSON(w, http.StatusOK, resp)
}
