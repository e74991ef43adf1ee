package main

import (
	"fmt"
	"math/rand"
	"net/http"
	"time"
)

type AmadeusOffersResponse struct {
	Data []AmadeusOffer `json:"data"`
}

type AmadeusOffer struct {
	ID          string             `json:"id"`
	Price       AmadeusPrice       `json:"price"`
	Itineraries []AmadeusItinerary `json:"itineraries"`
}

type AmadeusPrice struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

type AmadeusItinerary struct {
	Duration string           `json:"duration"`
	Segments []AmadeusSegment `json:"segments"`
}

type AmadeusSegment struct {
	Departure   AmadeusEndpoint `json:"departure"`
	Arrival     AmadeusEndpoint `json:"arrival"`
	CarrierCode string          `json:"carrierCode"`
	Number      string          `json:"number"`
	Duration    string          `json:"duration"`
}

type AmadeusEndpoint struct {
	IataCode string `json:"iataCode"`
	Terminal string `json:"terminal,omitempty"`
	At       string `json:"at"`
}

func AmadeusTokenHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": "stub-access-token",
		"token_type":   "Bearer",
		"expires_in":   1799,
	})
}

func AmadeusOffersHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.Header.Get("Authorization") == "" {
		http.Error(w, "missing bearer token", http.StatusUnauthorized)
		return
	}

	query := r.URL.Query()
	origin := valueOr(query.Get("originLocationCode"), "MAD")
	dest := valueOr(query.Get("destinationLocationCode"), "LHR")
	depDate := valueOr(query.Get("departureDate"), time.Now().AddDate(0, 0, 14).Format("2006-01-02"))
	currency := valueOr(query.Get("currencyCode"), "EUR")

	carriers := []string{"IB", "BA", "LH", "AF"}
	offers := make([]AmadeusOffer, 0, 4)
	for i := 0; i < 4; i++ {
		depAt := depDate + fmt.Sprintf("T%02d:30:00", 7+i*3)
		arrAt := depDate + fmt.Sprintf("T%02d:55:00", 9+i*3)
		offers = append(offers, AmadeusOffer{
			ID: fmt.Sprintf("%d", i+1),
			Price: AmadeusPrice{
				Total:    fmt.Sprintf("%.2f", 110.0+float64(i)*45.5),
				Currency: currency,
			},
			Itineraries: []AmadeusItinerary{{
				Duration: "PT2H25M",
				Segments: []AmadeusSegment{{
					Departure:   AmadeusEndpoint{IataCode: origin, Terminal: "4", At: depAt},
					Arrival:     AmadeusEndpoint{IataCode: dest, At: arrAt},
					CarrierCode: carriers[i%len(carriers)],
					Number:      fmt.Sprintf("%d", 3100+i),
					Duration:    "PT2H25M",
				}},
			}},
		})
	}

	stubDelay()
	writeJSON(w, http.StatusOK, AmadeusOffersResponse{Data: offers})
}

func AmadeusInspirationHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.Header.Get("Authorization") == "" {
		http.Error(w, "missing bearer token", http.StatusUnauthorized)
		return
	}

	query := r.URL.Query()
	origin := valueOr(query.Get("origin"), "MAD")
	depDate := valueOr(query.Get("departureDate"), time.Now().AddDate(0, 0, 14).Format("2006-01-02"))
	returnDate := query.Get("returnDate")

	destinations := []string{"LIS", "BCN", "FCO", "AMS", "CDG"}
	data := make([]map[string]any, 0, len(destinations))
	for i, dest := range destinations {
		entry := map[string]any{
			"origin":        origin,
			"destination":   dest,
			"departureDate": depDate,
			"price":         map[string]string{"total": fmt.Sprintf("%.2f", 45.0+float64(i)*22.0)},
		}
		if returnDate != "" {
			entry["returnDate"] = returnDate
		}
		data = append(data, entry)
	}

	stubDelay()
	writeJSON(w, http.StatusOK, map[string]any{"data": data})
}

func AmadeusLocationsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.Header.Get("Authorization") == "" {
		http.Error(w, "missing bearer token", http.StatusUnauthorized)
		return
	}

	stubDelay()
	writeJSON(w, http.StatusOK, map[string]any{
		"data": []map[string]any{
			{
				"iataCode": "MAD",
				"name":     "Adolfo Suarez Madrid-Barajas",
				"address":  map[string]string{"cityName": "Madrid", "countryName": "Spain"},
			},
			{
				"iataCode": "LHR",
				"name":     "Heathrow",
				"address":  map[string]string{"cityName": "London", "countryName": "United Kingdom"},
			},
		},
	})
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func stubDelay() {
	delay := 50 + rand.Intn(51) // 50 to 100ms
	time.Sleep(time.Duration(delay) * time.Millisecond)
}
