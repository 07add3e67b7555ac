package config

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Environment     string
	LogLevel        zerolog.Level
	HTTPTimeout     time.Duration
	MaxRetries      int
	OverpassBaseURL string
	NominatimURL    string
	RegistryBaseURL string
	UserAgent       string
}

type Option func(*Config)

// WithEnvironment allows setting the environment
func WithEnvironment(env string) Option {
	return func(c *Config) {
		c.Environment = env
	}
}

// WithLogLevel allows setting the log level
func WithLogLevel(level string) Option {
	return func(c *Config) {
		parsedLevel, err := zerolog.ParseLevel(level)
		if err != nil {
			parsedLevel = zerolog.InfoLevel
		}
		c.LogLevel = parsedLevel
	}
}

// WithHTTPTimeout allows setting the HTTP timeout
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.HTTPTimeout = timeout
	}
}

// WithRegistryBaseURL points the price store reader at a registry server.
func WithRegistryBaseURL(url string) Option {
	return func(c *Config) {
		c.RegistryBaseURL = url
	}
}

// WithOverpassBaseURL points the POI finder at an Overpass endpoint.
func WithOverpassBaseURL(url string) Option {
	return func(c *Config) {
		c.OverpassBaseURL = url
	}
}

// WithNominatimURL points reverse geocoding at a Nominatim server.
func WithNominatimURL(url string) Option {
	return func(c *Config) {
		c.NominatimURL = url
	}
}

// New creates a new configuration with default values
func New(opts ...Option) *Config {
	cfg := &Config{
		Environment:     "production",
		LogLevel:        zerolog.InfoLevel,
		HTTPTimeout:     10 * time.Second,
		MaxRetries:      3,
		OverpassBaseURL: "https://overpass-api.de",
		NominatimURL:    "https://nominatim.openstreetmap.org/",
		RegistryBaseURL: "http://localhost:8080",
		UserAgent:       "petrol-go/1.0",
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// InitializeLogging sets up logging based on the configuration
func (c *Config) InitializeLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(c.LogLevel)

	// Setup console logger for development environments
	if c.Environment == "local" || c.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	return New(
		WithEnvironment(getEnvOrDefault("ENV", "production")),
		WithLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
		WithHTTPTimeout(getDurationEnvOrDefault("HTTP_TIMEOUT", 10*time.Second)),
		WithRegistryBaseURL(getEnvOrDefault("REGISTRY_URL", "http://localhost:8080")),
		WithOverpassBaseURL(getEnvOrDefault("OVERPASS_URL", "https://overpass-api.de")),
		WithNominatimURL(getEnvOrDefault("NOMINATIM_URL", "https://nominatim.openstreetmap.org/")),
	)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
