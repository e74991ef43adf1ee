package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"farefinder/cfg"
	"farefinder/internal/flight"
	"farefinder/pkg/cache"
	"farefinder/pkg/flightclient"
	"farefinder/pkg/idgen"
	"farefinder/pkg/logger"
	"farefinder/pkg/mockgen"
	"farefinder/pkg/ratelimit"
	"farefinder/pkg/telemetry"

	_ "farefinder/cmd/farefinder/docs" // swagger docs

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// @title           FareFinder Flight API
// @version         1.0
// @description     Flight-offer search backed by interchangeable upstream providers with a synthetic fallback.
// @BasePath        /
// @schemes         http
func main() {
	// ============
	// config
	// ============
	config, errCfg := cfg.Load()
	if errCfg != nil {
		log.Fatal(errCfg)
	}

	// ============
	// logger
	// ============
	zlogger := logger.NewZeroLog(config.AppEnv)

	// ============
	// telemetry
	// ============
	if config.Observability.Enabled {
		shutdownOtel, err := telemetry.Init(context.Background(), telemetry.Config{
			OTLPEndpoint: config.Observability.OTLPEndpoint,
			ServiceName:  config.Observability.ServiceName,
			Environment:  config.Observability.Environment,
		})
		if err != nil {
			zlogger.Warn("otel_init_failed", logger.Field{Key: "err", Value: err})
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdownOtel(ctx); err != nil {
					zlogger.Error("otel_shutdown_failed", logger.Field{Key: "err", Value: err})
				}
			}()
		}
	}

	// ============
	// cache
	// ============
	var searchCache cache.Cache
	if config.RedisConfig.Host != "" {
		redisAddr := config.RedisConfig.Host + ":" + config.RedisConfig.Port
		searchCache = cache.NewRedisCache(redisAddr, config.RedisConfig.Password)
	} else {
		searchCache = cache.NewMemoryCache()
	}

	// ============
	// mock generator
	// ============
	ids, err := idgen.NewSnowflakeGenerator(1)
	if err != nil {
		log.Fatal(err)
	}
	mock := mockgen.New(rand.New(rand.NewSource(time.Now().UnixNano())), ids)

	// ============
	// provider
	// ============
	httpClient := flightclient.NewHTTPClient()

	var provider flight.Client
	var suggester flight.AirportSuggester
	if config.Configured() {
		switch config.Provider {
		case "amadeus":
			amadeus := flightclient.NewAmadeusClient(httpClient,
				config.AmadeusConfig.BaseURL, config.AmadeusConfig.APIKey,
				config.AmadeusConfig.APISecret, zlogger)
			provider = amadeus
			suggester = amadeus
		case "flightapi":
			provider = flightclient.NewFlightAPIClient(httpClient,
				config.FlightAPIConfig.BaseURL, config.FlightAPIConfig.APIKey,
				config.FlightAPIConfig.WebOrigin, zlogger)
		case "travelpayouts":
			provider = flightclient.NewTravelpayoutsClient(httpClient,
				config.TravelpayoutsConfig.BaseURL, config.TravelpayoutsConfig.APIKey,
				mock, zlogger)
		}
	}
	if provider == nil {
		zlogger.Info("no_provider_configured", logger.Field{Key: "mock_mode", Value: true})
	}

	// ============
	// service
	// ============
	flightSvc := flight.NewService(flight.ServiceConfig{
		Provider:        provider,
		Mock:            mock,
		Cache:           searchCache,
		Limiter:         ratelimit.NewProviderLimiter(ratelimit.DefaultConfig()),
		TTLSeconds:      config.CacheTTLSeconds,
		ForceMock:       config.ForceMockData,
		DefaultCurrency: config.DefaultCurrency,
	}, zlogger)
	flightHandler := flight.NewHandler(flightSvc, suggester)

	// ============
	// HTTP
	// ============
	if config.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(otelgin.Middleware(config.Observability.ServiceName))

	flightHandler.RegisterRoutes(r)
	initSwagger(r)

	addr := fmt.Sprintf(":%s", config.AppPort)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func initSwagger(r *gin.Engine) {
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/docs", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		html := `<!DOCTYPE html>
<html>
<head>
    <title>API Documentation</title>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1">
</head>
<body>
    <script id="api-reference" data-url="/swagger/doc.json"></script>
    <script src="https://cdn.jsdelivr.net/npm/@scalar/api-reference"></script>
</body>
</html>`
		c.String(200, html)
	})
}
