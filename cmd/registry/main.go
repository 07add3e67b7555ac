package main

import (
	"context"
	"os"

	"github.com/petapp4all/petrol-go/internal/cache"
	"github.com/petapp4all/petrol-go/internal/config"
	"github.com/petapp4all/petrol-go/internal/poi"
	"github.com/petapp4all/petrol-go/internal/registry"
	"github.com/petapp4all/petrol-go/pkg/http/client"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.LoadFromEnv()
	cfg.InitializeLogging()
	cacheCfg := config.GetCacheConfig()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	db, err := registry.Open(dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}

	opts := []registry.ServerOption{
		registry.WithStationSource(buildFinder(cfg, cacheCfg)),
	}

	if bucket := os.Getenv("S3_BUCKET"); bucket != "" {
		store, err := registry.NewS3ImageStore(context.Background(), bucket, os.Getenv("S3_PUBLIC_URL"))
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize image store")
		}
		opts = append(opts, registry.WithImageStore(store))
	} else {
		log.Warn().Msg("S3_BUCKET not set, image uploads disabled")
	}

	server := registry.NewServer(db, []byte(jwtSecret), cacheCfg, opts...)

	addr := ":" + getEnvOrDefault("PORT", "8080")
	log.Info().Str("addr", addr).Msg("Starting registry server")
	if err := server.Router().Run(addr); err != nil {
		log.Fatal().Err(err).Msg("Server exited")
	}
}

func buildFinder(cfg *config.Config, cacheCfg *config.CacheConfig) *poi.Finder {
	overpassClient := client.New(client.Options{
		BaseURL:    cfg.OverpassBaseURL,
		UserAgent:  cfg.UserAgent,
		Timeout:    cfg.HTTPTimeout,
		MaxRetries: cfg.MaxRetries,
	})
	geocoder := poi.NewNominatimGeocoder(cfg.NominatimURL, cache.NewGeocodeCache(cacheCfg))
	snapshot := cache.NewStationSnapshot(cacheCfg.GetPOISnapshotTTL())
	return poi.NewFinder(overpassClient, geocoder, snapshot)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
