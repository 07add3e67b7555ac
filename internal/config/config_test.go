package config

import (
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewConfigWithDefaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, "https://overpass-api.de", cfg.OverpassBaseURL)
	assert.Equal(t, "https://nominatim.openstreetmap.org/", cfg.NominatimURL)
}

func TestWithEnvironment(t *testing.T) {
	cfg := New(WithEnvironment("development"))

	assert.Equal(t, "development", cfg.Environment)
}

func TestWithLogLevel(t *testing.T) {
	cfg := New(WithLogLevel("debug"))

	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
}

func TestWithLogLevelInvalid(t *testing.T) {
	cfg := New(WithLogLevel("not-a-level"))

	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
}

func TestWithHTTPTimeout(t *testing.T) {
	cfg := New(WithHTTPTimeout(30 * time.Second))

	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
}

func TestInitializeLogging(t *testing.T) {
	cfg := New(WithEnvironment("local"), WithLogLevel("debug"))
	cfg.InitializeLogging()

	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("REGISTRY_URL", "http://registry.local:9090")
	t.Setenv("OVERPASS_URL", "http://overpass.local:8088")
	t.Setenv("NOMINATIM_URL", "http://nominatim.local:8089/")

	cfg := LoadFromEnv()

	assert.Equal(t, "test", cfg.Environment)
	assert.Equal(t, zerolog.WarnLevel, cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "http://registry.local:9090", cfg.RegistryBaseURL)
	assert.Equal(t, "http://overpass.local:8088", cfg.OverpassBaseURL)
	assert.Equal(t, "http://nominatim.local:8089/", cfg.NominatimURL)
}

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("TEST_ENV_VAR", "value")

	assert.Equal(t, "value", getEnvOrDefault("TEST_ENV_VAR", "default"))
	assert.Equal(t, "default", getEnvOrDefault("TEST_ENV_VAR_MISSING", "default"))
}

func TestGetDurationEnvOrDefault(t *testing.T) {
	t.Setenv("TEST_DURATION_VAR", "15s")
	t.Setenv("TEST_DURATION_BAD", "soon")

	assert.Equal(t, 15*time.Second, getDurationEnvOrDefault("TEST_DURATION_VAR", time.Minute))
	assert.Equal(t, time.Minute, getDurationEnvOrDefault("TEST_DURATION_BAD", time.Minute))
	assert.Equal(t, time.Minute, getDurationEnvOrDefault("TEST_DURATION_MISSING", time.Minute))
}

func TestGetCacheConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"CACHE_GEOCODE_LRU_SIZE",
		"CACHE_GEOCODE_TTL_MINUTES",
		"CACHE_POI_SNAPSHOT_TTL_MINUTES",
		"CACHE_PRICE_LIST_TTL_SECONDS",
		"CACHE_PRICE_LIST_CLEANUP_MINUTES",
	} {
		if _, ok := os.LookupEnv(key); ok {
			t.Setenv(key, "")
			if err := os.Unsetenv(key); err != nil {
				t.Fatalf("unsetting %s: %v", key, err)
			}
		}
	}

	cfg := GetCacheConfig()

	assert.Equal(t, defaultGeocodeLRUSize, cfg.GeocodeLRUSize)
	assert.Equal(t, time.Duration(defaultGeocodeTTLMinutes)*time.Minute, cfg.GetGeocodeTTL())
	assert.Equal(t, time.Duration(defaultPOISnapshotTTLMinutes)*time.Minute, cfg.GetPOISnapshotTTL())
	assert.Equal(t, time.Duration(defaultPriceListTTLSeconds)*time.Second, cfg.GetPriceListTTL())
}

func TestGetCacheConfigFromEnv(t *testing.T) {
	t.Setenv("CACHE_GEOCODE_LRU_SIZE", "100")
	t.Setenv("CACHE_GEOCODE_TTL_MINUTES", "5")
	t.Setenv("CACHE_PRICE_LIST_TTL_SECONDS", "not-a-number")

	cfg := GetCacheConfig()

	assert.Equal(t, 100, cfg.GeocodeLRUSize)
	assert.Equal(t, 5*time.Minute, cfg.GetGeocodeTTL())
	assert.Equal(t, defaultPriceListTTLSeconds, cfg.PriceListTTLSeconds)
}
