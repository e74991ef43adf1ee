package flightclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"farefinder/internal/flight"
	"farefinder/pkg/airlines"
	"farefinder/pkg/cache"
	"farefinder/pkg/logger"
)

const flightAPIProviderName = "flightapi"

// Raw responses are cached per resolved URL; concurrent identical searches
// collapse onto one upstream call.
const requestCacheTTL = 30 * time.Second

const placeholderMinutes = 120

// FlightAPIClient wraps the itinerary-graph API. The response denormalizes
// itineraries into parallel places/carriers/legs/segments arrays that must
// be indexed before any itinerary can be resolved.
type FlightAPIClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	webOrigin  string
	requests   *cache.RequestGroup
	logger     logger.Client
}

func NewFlightAPIClient(httpClient *http.Client, baseURL, apiKey, webOrigin string, log logger.Client) *FlightAPIClient {
	return &FlightAPIClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		webOrigin:  webOrigin,
		requests:   cache.NewRequestGroup(requestCacheTTL),
		logger:     log,
	}
}

func (f *FlightAPIClient) Name() string {
	return flightAPIProviderName
}

func (f *FlightAPIClient) Search(ctx context.Context, req flight.SearchRequest) ([]flight.Offer, error) {
	endpoint := f.searchURL(req)

	body, err := f.requests.GetOrCreate(ctx, endpoint, func(ctx context.Context) (string, error) {
		return f.fetch(ctx, endpoint)
	})
	if err != nil {
		return nil, err
	}

	var parsed graphResponse
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return nil, &ProviderError{Provider: flightAPIProviderName, Err: fmt.Errorf("%w: %v", flight.ErrMalformed, err)}
	}
	if len(parsed.Itineraries) == 0 {
		return nil, &ProviderError{Provider: flightAPIProviderName, Err: flight.ErrNoResults}
	}

	return f.resolve(&parsed, req), nil
}

// searchURL builds the path-parameter endpoint:
// /{roundtrip|onewaytrip}/{key}/{origin}/{dest}/{dates...}/{pax...}/{cabin}/{currency}
func (f *FlightAPIClient) searchURL(req flight.SearchRequest) string {
	origin := flight.ExtractIATACode(req.Origin)
	dest := flight.ExtractIATACode(req.Destination)
	cabin := strings.ToLower(req.CabinClass)

	if req.RoundTrip() {
		return fmt.Sprintf("%s/roundtrip/%s/%s/%s/%s/%s/%d/%d/%d/%s/%s",
			f.baseURL, f.apiKey, origin, dest, req.DepartureDate, req.ReturnDate,
			req.Adults, req.Children, req.Infants, cabin, req.Currency)
	}
	return fmt.Sprintf("%s/onewaytrip/%s/%s/%s/%s/%d/%d/%d/%s/%s",
		f.baseURL, f.apiKey, origin, dest, req.DepartureDate,
		req.Adults, req.Children, req.Infants, cabin, req.Currency)
}

func (f *FlightAPIClient) fetch(ctx context.Context, endpoint string) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", wrapErr(flightAPIProviderName, "failed to build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(httpReq)
	if err != nil {
		return "", wrapErr(flightAPIProviderName, "api call failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusGone:
		// the provider signals "no flights for this route/date" with 410
		return "", &ProviderError{Provider: flightAPIProviderName, Err: flight.ErrNoResults}
	case http.StatusTooManyRequests:
		return "", &ProviderError{Provider: flightAPIProviderName, Err: flight.ErrRateLimited}
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", &ProviderError{Provider: flightAPIProviderName, Err: fmt.Errorf("%w: status %d", flight.ErrAuth, resp.StatusCode)}
	default:
		return "", wrapErr(flightAPIProviderName, "unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", wrapErr(flightAPIProviderName, "failed to read response: %w", err)
	}
	return string(body), nil
}

// resolve materializes the graph: first index all four entity arrays by id,
// then walk each itinerary's leg references.
func (f *FlightAPIClient) resolve(resp *graphResponse, req flight.SearchRequest) []flight.Offer {
	lookup := newGraphLookup(resp)

	currency := resp.Query.Currency
	if currency == "" {
		currency = req.Currency
	}

	offers := make([]flight.Offer, 0, len(resp.Itineraries))
	for i, itin := range resp.Itineraries {
		var price float64
		var deeplink string
		if len(itin.PricingOptions) > 0 {
			price = itin.PricingOptions[0].Price.Amount
			if len(itin.PricingOptions[0].Items) > 0 {
				deeplink = itin.PricingOptions[0].Items[0].URL
			}
		}

		var outboundLegID, returnLegID string
		if len(itin.LegIDs) > 0 {
			outboundLegID = itin.LegIDs[0]
		}
		if len(itin.LegIDs) > 1 {
			returnLegID = itin.LegIDs[1]
		}

		outbound := f.resolveLeg(lookup, outboundLegID)

		offer := flight.Offer{
			ID:               itin.ID,
			OutboundSegments: outbound,
			Price: flight.Price{
				Amount:   price,
				Currency: currency,
			},
			TotalDuration: flight.TotalDuration(outbound),
			Stops:         flight.StopCount(outbound),
		}
		if offer.ID == "" {
			offer.ID = fmt.Sprintf("flight-%d", i)
		}

		if returnLegID != "" {
			offer.ReturnSegments = f.resolveLeg(lookup, returnLegID)
			offer.StayDuration = flight.StayDuration(offer.OutboundSegments, offer.ReturnSegments)
		}

		offer.BookingURL = f.bookingURL(deeplink, offer.OutboundSegments, offer.ReturnSegments)

		offers = append(offers, offer)
	}

	return offers
}

// resolveLeg walks a leg's segment references through the lookup maps. Any
// missing leg, segment or entity degrades to a placeholder segment so the
// offer shape stays valid.
func (f *FlightAPIClient) resolveLeg(lookup *graphLookup, legID string) []flight.Segment {
	if legID == "" {
		return placeholderSegments()
	}

	leg, ok := lookup.legs[legID]
	if !ok {
		f.logger.Debug("flightapi_leg_not_found", logger.Field{Key: "leg_id", Value: legID})
		return placeholderSegments()
	}

	segments := make([]flight.Segment, 0, len(leg.SegmentIDs))
	for _, segmentID := range leg.SegmentIDs {
		seg, ok := lookup.segments[segmentID]
		if !ok {
			continue
		}

		originPlace := lookup.places[seg.OriginPlaceID]
		destPlace := lookup.places[seg.DestinationPlaceID]

		carrier, ok := lookup.carriers[seg.MarketingCarrierID]
		if !ok {
			carrier = lookup.carriers[seg.OperatingCarrierID]
		}

		airlineCode := displayCode(carrier.DisplayCode, carrier.AltID, "XX")
		if mapped, ok := airlines.IATAFromGraphID(seg.MarketingCarrierID); carrier.DisplayCode == "" && ok {
			airlineCode = mapped
		}

		flightNumber := airlineCode + seg.MarketingFlightNumber
		if seg.MarketingFlightNumber == "" {
			flightNumber = airlineCode + "0000"
		}

		depTime, errDep := parseGraphTime(seg.Departure)
		arrTime, errArr := parseGraphTime(seg.Arrival)
		if errDep != nil || errArr != nil {
			continue
		}

		duration := seg.Duration
		if duration == 0 {
			duration = placeholderMinutes
		}

		segments = append(segments, flight.Segment{
			Departure: flight.Endpoint{
				Airport: graphAirport(originPlace),
				Time:    depTime,
			},
			Arrival: flight.Endpoint{
				Airport: graphAirport(destPlace),
				Time:    arrTime,
			},
			Airline:      airlineCode,
			FlightNumber: flightNumber,
			Duration:     duration,
		})
	}

	if len(segments) == 0 {
		return placeholderSegments()
	}
	return segments
}

// bookingURL qualifies a relative provider deeplink against the web origin,
// or synthesizes a search deeplink from the resolved codes and dates.
func (f *FlightAPIClient) bookingURL(deeplink string, outbound, returnSegments []flight.Segment) string {
	if deeplink != "" {
		if strings.HasPrefix(deeplink, "http") {
			return deeplink
		}
		return f.webOrigin + deeplink
	}

	origin := segmentCode(outbound, 0, false)
	dest := segmentCode(outbound, len(outbound)-1, true)

	depDate := ""
	if len(outbound) > 0 {
		depDate = outbound[0].Departure.Time.Format("2006-01-02")
	}
	retDate := ""
	if len(returnSegments) > 0 {
		retDate = returnSegments[0].Departure.Time.Format("2006-01-02")
	}

	return fmt.Sprintf("%s/transport/flights/%s/%s/%s/%s/?adults=1&cabinclass=economy&preferdirects=false",
		f.webOrigin, origin, dest, depDate, retDate)
}

func segmentCode(segments []flight.Segment, index int, arrival bool) string {
	if index < 0 || index >= len(segments) {
		return "XXX"
	}
	airport := segments[index].Departure.Airport
	if arrival {
		airport = segments[index].Arrival.Airport
	}
	code := flight.ExtractIATACode(airport)
	if len(code) != 3 {
		return "XXX"
	}
	return code
}

func placeholderSegments() []flight.Segment {
	now := time.Now().UTC().Truncate(time.Minute)
	return []flight.Segment{{
		Departure: flight.Endpoint{
			Airport: "Unknown (XXX)",
			Time:    now,
		},
		Arrival: flight.Endpoint{
			Airport: "Unknown (XXX)",
			Time:    now.Add(placeholderMinutes * time.Minute),
		},
		Airline:      "XX",
		FlightNumber: "XX0000",
		Duration:     placeholderMinutes,
	}}
}

func graphAirport(place graphPlace) string {
	code := displayCode(place.DisplayCode, place.AltID, "XXX")
	city := place.Name
	if city == "" {
		city = "Unknown"
	}
	return city + " (" + code + ")"
}

func displayCode(primary, alt, fallback string) string {
	if primary != "" {
		return primary
	}
	if alt != "" {
		return alt
	}
	return fallback
}

// parseGraphTime handles local timestamps like "2025-06-01T10:05:00".
func parseGraphTime(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

type graphLookup struct {
	places   map[int]graphPlace
	carriers map[int]graphCarrier
	legs     map[string]graphLeg
	segments map[string]graphSegment
}

func newGraphLookup(resp *graphResponse) *graphLookup {
	lookup := &graphLookup{
		places:   make(map[int]graphPlace, len(resp.Places)),
		carriers: make(map[int]graphCarrier, len(resp.Carriers)),
		legs:     make(map[string]graphLeg, len(resp.Legs)),
		segments: make(map[string]graphSegment, len(resp.Segments)),
	}
	for _, place := range resp.Places {
		lookup.places[place.ID] = place
	}
	for _, carrier := range resp.Carriers {
		lookup.carriers[carrier.ID] = carrier
	}
	for _, leg := range resp.Legs {
		lookup.legs[leg.ID] = leg
	}
	for _, segment := range resp.Segments {
		lookup.segments[segment.ID] = segment
	}
	return lookup
}

type graphResponse struct {
	Places      []graphPlace     `json:"places"`
	Carriers    []graphCarrier   `json:"carriers"`
	Legs        []graphLeg       `json:"legs"`
	Segments    []graphSegment   `json:"segments"`
	Itineraries []graphItinerary `json:"itineraries"`
	Query       struct {
		Currency string `json:"currency"`
	} `json:"query"`
}

type graphPlace struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	DisplayCode string `json:"display_code"`
	AltID       string `json:"alt_id"`
}

type graphCarrier struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	DisplayCode string `json:"display_code"`
	AltID       string `json:"alt_id"`
}

type graphLeg struct {
	ID         string   `json:"id"`
	SegmentIDs []string `json:"segment_ids"`
}

type graphSegment struct {
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

type graphItinerary struct {
	ID             string   `json:"id"`
	LegIDs         []string `json:"leg_ids"`
	PricingOptions []struct {
		Price struct {
			Amount float64 `json:"amount"`
		} `json:"price"`
		Items []struct {
			URL string `json:"url"`
		} `json:"items"`
	} `json:"pricing_options"`
}
