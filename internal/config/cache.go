package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// CacheConfig holds all cache-related configuration
type CacheConfig struct {
	// Reverse-geocode LRU settings
	GeocodeLRUSize       int
	GeocodeLRUTTLMinutes int

	// POI snapshot settings
	POISnapshotTTLMinutes int

	// Registry-side price list cache settings
	PriceListTTLSeconds     int
	PriceListCleanupMinutes int
}

const (
	// Default values
	defaultGeocodeLRUSize        = 2000
	defaultGeocodeTTLMinutes     = 60
	defaultPOISnapshotTTLMinutes = 5
	defaultPriceListTTLSeconds   = 30
	defaultPriceListCleanupMins  = 10
)

// GetCacheConfig returns the cache configuration from environment variables or defaults
func GetCacheConfig() *CacheConfig {
	config := &CacheConfig{
		GeocodeLRUSize:          getEnvInt("CACHE_GEOCODE_LRU_SIZE", defaultGeocodeLRUSize),
		GeocodeLRUTTLMinutes:    getEnvInt("CACHE_GEOCODE_TTL_MINUTES", defaultGeocodeTTLMinutes),
		POISnapshotTTLMinutes:   getEnvInt("CACHE_POI_SNAPSHOT_TTL_MINUTES", defaultPOISnapshotTTLMinutes),
		PriceListTTLSeconds:     getEnvInt("CACHE_PRICE_LIST_TTL_SECONDS", defaultPriceListTTLSeconds),
		PriceListCleanupMinutes: getEnvInt("CACHE_PRICE_LIST_CLEANUP_MINUTES", defaultPriceListCleanupMins),
	}

	log.Debug().
		Int("GeocodeLRUSize", config.GeocodeLRUSize).
		Int("GeocodeLRUTTLMinutes", config.GeocodeLRUTTLMinutes).
		Int("POISnapshotTTLMinutes", config.POISnapshotTTLMinutes).
		Int("PriceListTTLSeconds", config.PriceListTTLSeconds).
		Int("PriceListCleanupMinutes", config.PriceListCleanupMinutes).
		Msg("Cache configuration loaded")

	return config
}

// Helper methods for the CacheConfig struct
func (c *CacheConfig) GetGeocodeTTL() time.Duration {
	return time.Duration(c.GeocodeLRUTTLMinutes) * time.Minute
}

func (c *CacheConfig) GetPOISnapshotTTL() time.Duration {
	return time.Duration(c.POISnapshotTTLMinutes) * time.Minute
}

func (c *CacheConfig) GetPriceListTTL() time.Duration {
	return time.Duration(c.PriceListTTLSeconds) * time.Second
}

func (c *CacheConfig) GetPriceListCleanup() time.Duration {
	return time.Duration(c.PriceListCleanupMinutes) * time.Minute
}

// Helper functions to get environment variables with defaults
func getEnvInt(key string, defaultVal int) int {
	if val, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
		log.Warn().Str("key", key).Msg("Invalid integer value in environment variable, using default")
	}
	return defaultVal
}
