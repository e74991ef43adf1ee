package main

import (
	"fmt"
	"net/http"
	"time"
)

type TPResponse struct {
	SearchID string   `json:"search_id"`
	Trips    []TPTrip `json:"trips"`
}

type TPTrip struct {
	TripID   string  `json:"trip_id"`
	Price    TPPrice `json:"price"`
	DeepLink string  `json:"deep_link"`
	Legs     []TPLeg `json:"legs"`
}

type TPPrice struct {
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`
}

type TPLeg struct {
	Direction       string `json:"direction"`
	From            TPStop `json:"from"`
	To              TPStop `json:"to"`
	DepartureTime   string `json:"departure_time"`
	ArrivalTime     string `json:"arrival_time"`
	Carrier         string `json:"carrier"`
	FlightNumber    string `json:"flight_number"`
	DurationMinutes int    `json:"duration_minutes"`
}

type TPStop struct {
	City string `json:"city"`
	IATA string `json:"iata"`
}

func TravelpayoutsSearchHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	origin := valueOr(query.Get("origin"), "MAD")
	dest := valueOr(query.Get("destination"), "OPO")
	depDate := valueOr(query.Get("depart_date"), time.Now().AddDate(0, 0, 14).Format("2006-01-02"))
	retDate := query.Get("return_date")
	currency := valueOr(query.Get("currency"), "EUR")

	carriers := []string{"TP", "U2", "FR"}
	trips := make([]TPTrip, 0, 3)
	for i := 0; i < 3; i++ {
		dep, _ := time.Parse("2006-01-02", depDate)
		depTime := dep.Add(time.Duration(7+i*4) * time.Hour)

		trip := TPTrip{
			TripID: fmt.Sprintf("tp-%d", i+1),
			Price: TPPrice{
				Total:    78.0 + float64(i)*41.0,
				Currency: currency,
			},
			DeepLink: fmt.Sprintf("https://booking.example.com/tp-%d", i+1),
			Legs: []TPLeg{{
				Direction:       "outbound",
				From:            TPStop{City: "Origin City", IATA: origin},
				To:              TPStop{City: "Destination City", IATA: dest},
				DepartureTime:   depTime.Format(time.RFC3339),
				ArrivalTime:     depTime.Add(95 * time.Minute).Format(time.RFC3339),
				Carrier:         carriers[i%len(carriers)],
				FlightNumber:    fmt.Sprintf("%s%d", carriers[i%len(carriers)], 900+i),
				DurationMinutes: 95,
			}},
		}

		if retDate != "" {
			ret, _ := time.Parse("2006-01-02", retDate)
			retTime := ret.Add(time.Duration(10+i*3) * time.Hour)
			trip.Legs = append(trip.Legs, TPLeg{
				Direction:       "return",
				From:            TPStop{City: "Destination City", IATA: dest},
				To:              TPStop{City: "Origin City", IATA: origin},
				DepartureTime:   retTime.Format(time.RFC3339),
				ArrivalTime:     retTime.Add(95 * time.Minute).Format(time.RFC3339),
				Carrier:         carriers[i%len(carriers)],
				FlightNumber:    fmt.Sprintf("%s%d", carriers[i%len(carriers)], 1900+i),
				DurationMinutes: 95,
			})
		}

		trips = append(trips, trip)
	}

	stubDelay()
	writeJSON(w, http.StatusOK, TPResponse{
		SearchID: fmt.Sprintf("stub-%d", time.Now().Unix()),
		Trips:    trips,
	})
}
