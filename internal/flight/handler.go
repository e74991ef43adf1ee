package flight

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"farefinder/pkg/airlines"
)

type Handler struct {
	service   *Service
	suggester AirportSuggester // nil in mock mode
}

func NewHandler(s *Service, suggester AirportSuggester) *Handler {
	return &Handler{
		service:   s,
		suggester: suggester,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.POST("/v1/flights/search", h.SearchFlightsHandler)
	router.GET("/v1/airports/suggest", h.SuggestAirportsHandler)
}

// SearchFlightsHandler godoc
// @Summary      Search flights
// @Description  Searches the configured provider for flight offers, falling back to synthetic data when the provider is unavailable.
// @Accept       json
// @Produce      json
// @Param        request body flight.SearchRequest true "Search parameters"
// @Success      200 {object} flight.SearchResponse
// @Failure      400 {object} map[string]string
// @Router       /v1/flights/search [post]
func (h *Handler) SearchFlightsHandler(c *gin.Context) {
	var req SearchRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Invalid request format: %v", err),
		})
		return
	}

	response, err := h.service.SearchFlights(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// SuggestAirportsHandler godoc
// @Summary      Suggest airports
// @Description  Resolves a free-text keyword to airport candidates. Uses the live provider when configured, the static reference table otherwise.
// @Produce      json
// @Param        keyword query string true "Search keyword"
// @Success      200 {array} flight.AirportSuggestion
// @Router       /v1/airports/suggest [get]
func (h *Handler) SuggestAirportsHandler(c *gin.Context) {
	keyword := c.Query("keyword")
	if keyword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "keyword is required"})
		return
	}

	if h.suggester != nil {
		suggestions, err := h.suggester.SuggestAirports(c.Request.Context(), keyword)
		if err == nil {
			c.JSON(http.StatusOK, suggestions)
			return
		}
		// reference table below still gives a usable answer
	}

	matches := airlines.SuggestAirports(keyword)
	suggestions := make([]AirportSuggestion, 0, len(matches))
	for _, m := range matches {
		suggestions = append(suggestions, AirportSuggestion{
			Code: m.Code,
			City: m.City,
			Name: m.City + " (" + m.Code + ")",
		})
	}
	c.JSON(http.StatusOK, suggestions)
}
