package flight

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSuggester struct {
	suggestions []AirportSuggestion
	err         error
}

func (f *fakeSuggester) SuggestAirports(ctx context.Context, keyword string) ([]AirportSuggestion, error) {
	return f.suggestions, f.err
}

func newTestRouter(t *testing.T, svc *Service, suggester AirportSuggester) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(svc, suggester).RegisterRoutes(router)
	return router
}

func TestSearchFlightsHandler_OK(t *testing.T) {
	provider := &fakeProvider{name: "amadeus", offers: []Offer{pricedOffer("live", 99)}}
	svc := newTestService(t, ServiceConfig{Provider: provider, Mock: &fakeGenerator{}})
	router := newTestRouter(t, svc, nil)

	body := `{"origin": "Madrid (MAD)", "destination": "London (LHR)", "departure_date": "2026-09-10"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/flights/search", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Flights, 1)
	assert.Equal(t, "live", resp.Flights[0].ID)
	assert.Equal(t, "amadeus", resp.Metadata.Provider)
	assert.Equal(t, "Madrid (MAD)", resp.SearchCriteria.Origin)
}

func TestSearchFlightsHandler_InvalidRequest(t *testing.T) {
	svc := newTestService(t, ServiceConfig{Mock: &fakeGenerator{}})
	router := newTestRouter(t, svc, nil)

	body := `{"destination": "London (LHR)", "departure_date": "2026-09-10"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/flights/search", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "origin is required")
}

func TestSearchFlightsHandler_MalformedJSON(t *testing.T) {
	svc := newTestService(t, ServiceConfig{Mock: &fakeGenerator{}})
	router := newTestRouter(t, svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/flights/search", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSuggestAirportsHandler_UsesLiveSuggester(t *testing.T) {
	svc := newTestService(t, ServiceConfig{Mock: &fakeGenerator{}})
	suggester := &fakeSuggester{suggestions: []AirportSuggestion{
		{Code: "JFK", City: "New York", Name: "John F. Kennedy International"},
	}}
	router := newTestRouter(t, svc, suggester)

	req := httptest.NewRequest(http.MethodGet, "/v1/airports/suggest?keyword=new+york", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var suggestions []AirportSuggestion
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &suggestions))
	require.Len(t, suggestions, 1)
	assert.Equal(t, "JFK", suggestions[0].Code)
}

func TestSuggestAirportsHandler_FallsBackToReferenceTable(t *testing.T) {
	svc := newTestService(t, ServiceConfig{Mock: &fakeGenerator{}})
	suggester := &fakeSuggester{err: errors.New("upstream down")}
	router := newTestRouter(t, svc, suggester)

	req := httptest.NewRequest(http.MethodGet, "/v1/airports/suggest?keyword=madrid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var suggestions []AirportSuggestion
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &suggestions))
	require.NotEmpty(t, suggestions)
	assert.Equal(t, "MAD", suggestions[0].Code)
}

func TestSuggestAirportsHandler_RequiresKeyword(t *testing.T) {
	svc := newTestService(t, ServiceConfig{Mock: &fakeGenerator{}})
	router := newTestRouter(t, svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/airports/suggest", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
