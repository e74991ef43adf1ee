package flight

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"farefinder/pkg/cache"
	"farefinder/pkg/logger"
	"farefinder/pkg/ratelimit"
)

// Advisory messages attached to degraded responses.
const (
	msgMockConfigured = "Using mock data. Configure provider credentials for live results."
	msgMockFallback   = "Provider unavailable, using mock data as fallback."
)

// Service is the aggregation facade. It owns provider selection, the
// response cache, rate limiting and the mock fallback; its callers never see
// an upstream failure.
type Service struct {
	provider        Client // nil when no live provider is configured
	mock            OfferGenerator
	cache           cache.Cache
	limiter         *ratelimit.ProviderLimiter
	ttl             time.Duration
	forceMock       bool
	defaultCurrency string
	logger          logger.Client
}

type ServiceConfig struct {
	// Provider may be nil; the service then always serves synthetic data.
	Provider        Client
	Mock            OfferGenerator
	Cache           cache.Cache
	Limiter         *ratelimit.ProviderLimiter
	TTLSeconds      int
	ForceMock       bool
	DefaultCurrency string
}

func NewService(cfg ServiceConfig, log logger.Client) *Service {
	return &Service{
		provider:        cfg.Provider,
		mock:            cfg.Mock,
		cache:           cfg.Cache,
		limiter:         cfg.Limiter,
		ttl:             time.Duration(cfg.TTLSeconds) * time.Second,
		forceMock:       cfg.ForceMock,
		defaultCurrency: cfg.DefaultCurrency,
		logger:          log,
	}
}

// SearchFlights runs one search end to end. The returned error is non-nil
// only for an invalid request; provider and network failures degrade to
// synthetic offers with an advisory Message. Offers are always sorted
// ascending by price, ties keeping provider order.
func (s *Service) SearchFlights(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	if req.Currency == "" {
		req.Currency = s.defaultCurrency
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cacheKey := s.generateCacheKey(req)
	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		var response SearchResponse
		decodeErr := json.Unmarshal([]byte(cached), &response)
		if decodeErr == nil {
			response.Metadata.CacheHit = true
			response.Metadata.CacheKey = cacheKey
			return &response, nil
		}
		s.logger.Error("search_cache_decode", logger.Field{Key: "err", Value: decodeErr})
	} else if !errors.Is(err, cache.ErrMiss) {
		s.logger.Error("search_cache_get", logger.Field{Key: "err", Value: err})
	}

	startTime := time.Now()
	offers, providerName, message := s.fetchOffers(ctx, req)
	sortOffersByPrice(offers)

	response := &SearchResponse{
		SearchCriteria: SearchCriteria{
			Origin:        req.Origin,
			Destination:   req.Destination,
			DepartureDate: req.DepartureDate,
			ReturnDate:    req.ReturnDate,
			Adults:        req.Adults,
			CabinClass:    req.CabinClass,
		},
		Metadata: Metadata{
			TotalResults: uint32(len(offers)),
			Provider:     providerName,
			SearchTimeMs: uint32(time.Since(startTime).Milliseconds()),
			CacheKey:     cacheKey,
		},
		Message: message,
		Flights: offers,
	}

	responseBytes, err := json.Marshal(response)
	if err != nil {
		s.logger.Error("search_cache_encode", logger.Field{Key: "err", Value: err})
		return response, nil
	}
	if err := s.cache.Set(ctx, cacheKey, string(responseBytes), s.ttl); err != nil {
		s.logger.Error("search_cache_set", logger.Field{Key: "err", Value: err})
	}

	return response, nil
}

// fetchOffers applies the selection policy: forced or unconfigured mock mode
// short-circuits; a live provider failure falls back to the generator except
// for a clean no-results answer, which stays an empty list.
func (s *Service) fetchOffers(ctx context.Context, req SearchRequest) (offers []Offer, providerName, message string) {
	if s.forceMock || s.provider == nil {
		return s.mock.Offers(req), "mock", msgMockConfigured
	}

	providerName = s.provider.Name()

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx, providerName); err != nil {
			s.logger.Warn("provider_limiter_wait",
				logger.Field{Key: "provider", Value: providerName},
				logger.Field{Key: "err", Value: err})
			return s.mock.Offers(req), providerName, msgMockFallback
		}
	}

	offers, err := s.provider.Search(ctx, req)
	switch {
	case err == nil:
		return offers, providerName, ""
	case errors.Is(err, ErrNoResults):
		return []Offer{}, providerName, ""
	case errors.Is(err, ErrRateLimited):
		s.logger.Warn("provider_rate_limited",
			logger.Field{Key: "provider", Value: providerName},
			logger.Field{Key: "err", Value: err})
	default:
		s.logger.Error("provider_search_failed",
			logger.Field{Key: "provider", Value: providerName},
			logger.Field{Key: "err", Value: err})
	}

	return s.mock.Offers(req), providerName, msgMockFallback
}

// Stable to keep provider order between equal prices.
func sortOffersByPrice(offers []Offer) {
	sort.SliceStable(offers, func(i, j int) bool {
		return offers[i].Price.Amount < offers[j].Price.Amount
	})
}

func (s *Service) generateCacheKey(req SearchRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return "flightsearch:" + hex.EncodeToString(hash[:])
}
