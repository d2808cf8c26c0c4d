package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/pricesheet/backend/config"
	httpDelivery "github.com/pricesheet/backend/internal/delivery/http"
	"github.com/pricesheet/backend/internal/domain"
	"github.com/pricesheet/backend/internal/infrastructure/cache"
	"github.com/pricesheet/backend/internal/infrastructure/converter"
	"github.com/pricesheet/backend/internal/infrastructure/xlsx"
	"github.com/pricesheet/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting PriceSheet Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Cache Type: %s", cfg.Cache.Type)

	debug := cfg.Server.Environment == "development" || cfg.Ingest.DebugLogging

	// Initialize infrastructure dependencies
	var resultCache domain.CacheRepository
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(context.Background(), cfg.Cache.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		resultCache = redisCache
		log.Printf("Redis cache connected: %s", cfg.Cache.RedisURL)
	default:
		resultCache = cache.NewMemoryCache()
	}
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	reader := xlsx.NewReader(debug)

	converterClient := converter.NewClient(cfg.Converter.APIKey, cfg.Converter.BaseURL)
	if debug {
		converterClient.SetDebug(true)
		log.Printf("Converter client debug mode enabled")
	}
	if cfg.Converter.APIKey == "" {
		log.Printf("WARNING: converter API key not configured - settlement conversion will fail")
	}

	// Initialize usecase layer
	ingestService := usecase.NewIngestService(reader, usecase.IngestServiceConfig{
		DefaultCurrency: cfg.Ingest.DefaultCurrency,
		DefaultCompany:  cfg.Ingest.DefaultCompany,
		Extractor: usecase.ExtractorConfig{
			MarkupMin: cfg.Ingest.MarkupMin,
			MarkupMax: cfg.Ingest.MarkupMax,
		},
		EnableDebugLogging: debug,
	})

	log.Printf("Ingest: currency=%s, markup=[%.2f, %.2f], debug=%v",
		cfg.Ingest.DefaultCurrency,
		cfg.Ingest.MarkupMin,
		cfg.Ingest.MarkupMax,
		debug)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(ingestService, converterClient, resultCache, cfg.Cache.TTL)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
