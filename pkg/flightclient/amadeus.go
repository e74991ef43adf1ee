package flightclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"farefinder/internal/flight"
	"farefinder/pkg/airlines"
	"farefinder/pkg/logger"
)

const amadeusProviderName = "amadeus"

// Tokens are refreshed this long before their reported expiry so concurrent
// callers never race an expiring token.
const tokenExpiryMargin = 60 * time.Second

const (
	inspirationMaxPrice = 2000
	inspirationLimit    = 20
	// The inspiration endpoint returns destination/price pairs only, so
	// segments are synthesized around a nominal two-hour flight.
	inspirationFlightMinutes = 120
)

var isoDurationPattern = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?`)

// AmadeusClient wraps the OAuth2 client-credentials GDS API. The token
// source caches the bearer token and serializes refreshes internally.
type AmadeusClient struct {
	httpClient *http.Client
	baseURL    string
	tokenSrc   oauth2.TokenSource
	logger     logger.Client
}

func NewAmadeusClient(httpClient *http.Client, baseURL, clientID, clientSecret string, log logger.Client) *AmadeusClient {
	cc := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     baseURL + "/v1/security/oauth2/token",
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
	src := oauth2.ReuseTokenSourceWithExpiry(nil, cc.TokenSource(tokenCtx), tokenExpiryMargin)

	return &AmadeusClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		tokenSrc:   src,
		logger:     log,
	}
}

func (a *AmadeusClient) Name() string {
	return amadeusProviderName
}

func (a *AmadeusClient) Search(ctx context.Context, req flight.SearchRequest) ([]flight.Offer, error) {
	if flight.ExtractIATACode(req.Destination) == flight.DestinationAnywhere {
		return a.searchInspiration(ctx, req)
	}

	params := url.Values{}
	params.Set("originLocationCode", flight.ExtractIATACode(req.Origin))
	params.Set("destinationLocationCode", flight.ExtractIATACode(req.Destination))
	params.Set("departureDate", req.DepartureDate)
	params.Set("adults", strconv.Itoa(req.Adults))
	params.Set("currencyCode", req.Currency)
	if req.ReturnDate != "" {
		params.Set("returnDate", req.ReturnDate)
	}
	if req.Children > 0 {
		params.Set("children", strconv.Itoa(req.Children))
	}
	if req.Infants > 0 {
		params.Set("infants", strconv.Itoa(req.Infants))
	}
	params.Set("travelClass", amadeusTravelClass(req.CabinClass))
	if req.DirectOnly {
		params.Set("nonStop", "true")
	}
	if req.MaxStops != nil {
		params.Set("maxStops", strconv.Itoa(*req.MaxStops))
	}

	var parsed amadeusSearchResponse
	if err := a.getJSON(ctx, a.baseURL+"/v2/shopping/flight-offers?"+params.Encode(), &parsed); err != nil {
		return nil, err
	}
	if len(parsed.Data) == 0 {
		return nil, &ProviderError{Provider: amadeusProviderName, Err: flight.ErrNoResults}
	}

	return a.parseOffers(parsed.Data), nil
}

// searchInspiration handles the ANYWHERE destination sentinel against the
// flight-destinations endpoint. The response carries destination and price
// only, so itinerary data is synthesized around each price.
func (a *AmadeusClient) searchInspiration(ctx context.Context, req flight.SearchRequest) ([]flight.Offer, error) {
	params := url.Values{}
	params.Set("origin", flight.ExtractIATACode(req.Origin))
	params.Set("departureDate", req.DepartureDate)
	params.Set("maxPrice", strconv.Itoa(inspirationMaxPrice))
	params.Set("currencyCode", req.Currency)
	if req.ReturnDate != "" {
		params.Set("returnDate", req.ReturnDate)
	}

	var parsed amadeusInspirationResponse
	if err := a.getJSON(ctx, a.baseURL+"/v1/shopping/flight-destinations?"+params.Encode(), &parsed); err != nil {
		return nil, err
	}
	if len(parsed.Data) == 0 {
		return nil, &ProviderError{Provider: amadeusProviderName, Err: flight.ErrNoResults}
	}

	destinations := parsed.Data
	if len(destinations) > inspirationLimit {
		destinations = destinations[:inspirationLimit]
	}

	offers := make([]flight.Offer, 0, len(destinations))
	for i, dest := range destinations {
		depDate, err := time.Parse("2006-01-02", dest.DepartureDate)
		if err != nil {
			a.logger.Debug("amadeus_inspiration_bad_date",
				logger.Field{Key: "departure_date", Value: dest.DepartureDate})
			continue
		}

		outbound := []flight.Segment{inspirationSegment(dest.Origin, dest.Destination, depDate, 1000+i)}

		offer := flight.Offer{
			ID:               fmt.Sprintf("inspiration-%d", i),
			OutboundSegments: outbound,
			Price: flight.Price{
				Amount:   parseAmount(dest.Price.Total),
				Currency: req.Currency,
			},
			TotalDuration: inspirationFlightMinutes,
			Stops:         0,
			BookingURL:    "#",
		}

		if dest.ReturnDate != "" {
			if retDate, err := time.Parse("2006-01-02", dest.ReturnDate); err == nil {
				offer.ReturnSegments = []flight.Segment{
					inspirationSegment(dest.Destination, dest.Origin, retDate, 2000+i),
				}
				offer.StayDuration = flight.StayDuration(offer.OutboundSegments, offer.ReturnSegments)
			}
		}

		offers = append(offers, offer)
	}

	return offers, nil
}

// SuggestAirports resolves a keyword against the reference-data locations
// endpoint.
func (a *AmadeusClient) SuggestAirports(ctx context.Context, keyword string) ([]flight.AirportSuggestion, error) {
	params := url.Values{}
	params.Set("keyword", keyword)
	params.Set("subType", "AIRPORT,CITY")

	var parsed amadeusLocationsResponse
	if err := a.getJSON(ctx, a.baseURL+"/v1/reference-data/locations?"+params.Encode(), &parsed); err != nil {
		return nil, err
	}

	suggestions := make([]flight.AirportSuggestion, 0, len(parsed.Data))
	for _, loc := range parsed.Data {
		city := loc.Address.CityName
		if city == "" {
			city = loc.Name
		}
		suggestions = append(suggestions, flight.AirportSuggestion{
			Code:    loc.IataCode,
			City:    city,
			Name:    loc.Name,
			Country: loc.Address.CountryName,
		})
	}
	return suggestions, nil
}

func (a *AmadeusClient) getJSON(ctx context.Context, rawURL string, out any) error {
	token, err := a.tokenSrc.Token()
	if err != nil {
		return &ProviderError{Provider: amadeusProviderName, Err: fmt.Errorf("%w: %v", flight.ErrAuth, err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return wrapErr(amadeusProviderName, "failed to build request: %w", err)
	}
	token.SetAuthHeader(httpReq)

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return wrapErr(amadeusProviderName, "api call failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &ProviderError{Provider: amadeusProviderName, Err: fmt.Errorf("%w: status %d", flight.ErrAuth, resp.StatusCode)}
	case resp.StatusCode == http.StatusTooManyRequests:
		return &ProviderError{Provider: amadeusProviderName, Err: flight.ErrRateLimited}
	case resp.StatusCode != http.StatusOK:
		return wrapErr(amadeusProviderName, "unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ProviderError{Provider: amadeusProviderName, Err: fmt.Errorf("%w: %v", flight.ErrMalformed, err)}
	}
	return nil
}

func (a *AmadeusClient) parseOffers(data []amadeusOffer) []flight.Offer {
	offers := make([]flight.Offer, 0, len(data))

	for _, raw := range data {
		if len(raw.Itineraries) == 0 {
			continue
		}

		outboundItin := raw.Itineraries[0]
		outbound := parseAmadeusSegments(outboundItin.Segments)
		if len(outbound) == 0 {
			continue
		}

		offer := flight.Offer{
			ID:               raw.ID,
			OutboundSegments: outbound,
			Price: flight.Price{
				Amount:   parseAmount(raw.Price.Total),
				Currency: raw.Price.Currency,
			},
			TotalDuration: parseISODuration(outboundItin.Duration),
			Stops:         flight.StopCount(outbound),
			// the GDS does not expose booking deeplinks on offers
			BookingURL: "#",
		}

		if len(raw.Itineraries) > 1 {
			offer.ReturnSegments = parseAmadeusSegments(raw.Itineraries[1].Segments)
			offer.StayDuration = flight.StayDuration(offer.OutboundSegments, offer.ReturnSegments)
		}

		offers = append(offers, offer)
	}

	return offers
}

func parseAmadeusSegments(raw []amadeusSegment) []flight.Segment {
	segments := make([]flight.Segment, 0, len(raw))
	for _, seg := range raw {
		depTime, errDep := parseAmadeusTime(seg.Departure.At)
		arrTime, errArr := parseAmadeusTime(seg.Arrival.At)
		if errDep != nil || errArr != nil {
			continue
		}

		segments = append(segments, flight.Segment{
			Departure: flight.Endpoint{
				Airport:  airlines.DisplayAirport(seg.Departure.IataCode),
				Time:     depTime,
				Terminal: seg.Departure.Terminal,
			},
			Arrival: flight.Endpoint{
				Airport:  airlines.DisplayAirport(seg.Arrival.IataCode),
				Time:     arrTime,
				Terminal: seg.Arrival.Terminal,
			},
			Airline:      airlines.Name(seg.CarrierCode),
			FlightNumber: seg.CarrierCode + seg.Number,
			Duration:     parseISODuration(seg.Duration),
		})
	}
	return segments
}

func inspirationSegment(fromCode, toCode string, departure time.Time, flightSuffix int) flight.Segment {
	return flight.Segment{
		Departure: flight.Endpoint{
			Airport: airlines.DisplayAirport(fromCode),
			Time:    departure,
		},
		Arrival: flight.Endpoint{
			Airport: airlines.DisplayAirport(toCode),
			Time:    departure.Add(inspirationFlightMinutes * time.Minute),
		},
		Airline:      "Multiple Airlines",
		FlightNumber: fmt.Sprintf("INSP%d", flightSuffix),
		Duration:     inspirationFlightMinutes,
	}
}

// parseISODuration converts "PT2H35M" style durations to minutes. A string
// that does not match the pattern yields 0.
func parseISODuration(s string) int {
	match := isoDurationPattern.FindStringSubmatch(s)
	if match == nil {
		return 0
	}
	hours, _ := strconv.Atoi(match[1])
	minutes, _ := strconv.Atoi(match[2])
	return hours*60 + minutes
}

// parseAmadeusTime handles local timestamps like "2025-06-01T10:05:00".
func parseAmadeusTime(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func parseAmount(s string) float64 {
	amount, _ := strconv.ParseFloat(s, 64)
	return amount
}

func amadeusTravelClass(cabinClass string) string {
	switch cabinClass {
	case flight.CabinPremium:
		return "PREMIUM_ECONOMY"
	case flight.CabinBusiness:
		return "BUSINESS"
	case flight.CabinFirst:
		return "FIRST"
	default:
		return "ECONOMY"
	}
}

type amadeusSearchResponse struct {
	Data []amadeusOffer `json:"data"`
}

type amadeusOffer struct {
	ID    string `json:"id"`
	Price struct {
		Total    string `json:"total"`
		Currency string `json:"currency"`
	} `json:"price"`
	Itineraries []struct {
		Duration string           `json:"duration"`
		Segments []amadeusSegment `json:"segments"`
	} `json:"itineraries"`
}

type amadeusSegment struct {
	Departure   amadeusEndpoint `json:"departure"`
	Arrival     amadeusEndpoint `json:"arrival"`
	CarrierCode string          `json:"carrierCode"`
	Number      string          `json:"number"`
	Duration    string          `json:"duration"`
}

type amadeusEndpoint struct {
	IataCode string `json:"iataCode"`
	Terminal string `json:"terminal"`
	At       string `json:"at"`
}

type amadeusInspirationResponse struct {
	Data []struct {
		Origin        string `json:"origin"`
		Destination   string `json:"destination"`
		DepartureDate string `json:"departureDate"`
		ReturnDate    string `json:"returnDate"`
		Price         struct {
			Total string `json:"total"`
		} `json:"price"`
	} `json:"data"`
}

type amadeusLocationsResponse struct {
	Data []struct {
		IataCode string `json:"iataCode"`
		Name     string `json:"name"`
		Address  struct {
			CityName    string `json:"cityName"`
			CountryName string `json:"countryName"`
		} `json:"address"`
	} `json:"data"`
}
