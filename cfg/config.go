package cfg

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

// AmadeusConfig holds the client-credentials pair for the GDS API. Both key
// and secret must be present for the provider to count as configured.
type AmadeusConfig struct {
	APIKey    string
	APISecret string
	BaseURL   string
}

type FlightAPIConfig struct {
	APIKey  string
	BaseURL string
	// WebOrigin is prepended to relative booking deeplinks returned by the
	// provider.
	WebOrigin string
}

type TravelpayoutsConfig struct {
	APIKey  string
	BaseURL string
}

type ObservabilityConfig struct {
	Enabled      bool
	OTLPEndpoint string
	ServiceName  string
	Environment  string
}

type Config struct {
	AppEnv              string
	AppPort             string
	Provider            string // amadeus | flightapi | travelpayouts
	ForceMockData       bool
	DefaultCurrency     string
	CacheTTLSeconds     int
	RedisConfig         RedisConfig
	AmadeusConfig       AmadeusConfig
	FlightAPIConfig     FlightAPIConfig
	TravelpayoutsConfig TravelpayoutsConfig
	Observability       ObservabilityConfig
}

// Configured reports whether the selected provider has credentials. When it
// returns false the service runs entirely on synthetic data.
func (c *Config) Configured() bool {
	switch c.Provider {
	case "amadeus":
		return c.AmadeusConfig.APIKey != "" && c.AmadeusConfig.APISecret != ""
	case "flightapi":
		return c.FlightAPIConfig.APIKey != ""
	case "travelpayouts":
		return c.TravelpayoutsConfig.APIKey != ""
	}
	return false
}

func Load() (*Config, error) {
	var errs []error

	// .env is optional outside local development
	_ = godotenv.Load()

	appEnv := mustEnv("APP_ENV", &errs)
	appPort := mustEnv("APP_PORT", &errs)

	cacheTTL := envDefault("CACHE_TTL_SECONDS", "300")
	cacheTTLInt, err := strconv.Atoi(cacheTTL)
	if err != nil {
		errs = append(errs, errors.New("conversion failed env: CACHE_TTL_SECONDS"))
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Config{
		AppEnv:          appEnv,
		AppPort:         appPort,
		Provider:        envDefault("FLIGHT_PROVIDER", "flightapi"),
		ForceMockData:   envDefault("USE_MOCK_FLIGHTS", "false") == "true",
		DefaultCurrency: envDefault("DEFAULT_CURRENCY", "EUR"),
		CacheTTLSeconds: cacheTTLInt,
		RedisConfig: RedisConfig{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     os.Getenv("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		AmadeusConfig: AmadeusConfig{
			APIKey:    os.Getenv("AMADEUS_API_KEY"),
			APISecret: os.Getenv("AMADEUS_API_SECRET"),
			BaseURL:   envDefault("AMADEUS_BASE_URL", "https://test.api.amadeus.com"),
		},
		FlightAPIConfig: FlightAPIConfig{
			APIKey:    os.Getenv("FLIGHTAPI_KEY"),
			BaseURL:   envDefault("FLIGHTAPI_BASE_URL", "https://api.flightapi.io"),
			WebOrigin: envDefault("FLIGHTAPI_WEB_ORIGIN", "https://www.skyscanner.com"),
		},
		TravelpayoutsConfig: TravelpayoutsConfig{
			APIKey:  os.Getenv("TRAVELPAYOUTS_KEY"),
			BaseURL: envDefault("TRAVELPAYOUTS_BASE_URL", "https://api.travelpayouts.com"),
		},
		Observability: ObservabilityConfig{
			Enabled:      envDefault("OTEL_ENABLED", "false") == "true",
			OTLPEndpoint: envDefault("OTLP_ENDPOINT", "localhost:4317"),
			ServiceName:  envDefault("OTEL_SERVICE_NAME", "farefinder"),
			Environment:  appEnv,
		},
	}, nil
}

func mustEnv(key string, errs *[]error) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		*errs = append(*errs, errors.New("missing env: "+key))
	}
	return value
}

func envDefault(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}
