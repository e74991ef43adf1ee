// Command stubapi serves canned upstream responses in the three provider
// wire formats so the search service can be exercised without credentials.
//
// Point a provider's base URL at this server:
//
//	AMADEUS_BASE_URL=http://localhost:8081/amadeus
//	FLIGHTAPI_BASE_URL=http://localhost:8081/graph
//	TRAVELPAYOUTS_BASE_URL=http://localhost:8081/travelpayouts
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
)

func main() {
	port := "8081"
	if len(os.Args) > 1 {
		port = os.Args[1]
	}

	http.HandleFunc("/amadeus/v1/security/oauth2/token", AmadeusTokenHandler)
	http.HandleFunc("/amadeus/v2/shopping/flight-offers", AmadeusOffersHandler)
	http.HandleFunc("/amadeus/v1/shopping/flight-destinations", AmadeusInspirationHandler)
	http.HandleFunc("/amadeus/v1/reference-data/locations", AmadeusLocationsHandler)
	http.HandleFunc("/graph/", GraphSearchHandler)
	http.HandleFunc("/travelpayouts/v2/flight-search/", TravelpayoutsSearchHandler)

	addr := fmt.Sprintf(":%s", port)
	fmt.Printf("Stub provider server running on port %s...\n", port)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatal(err)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
