package main

import (
	"fmt"
	"os"

	"github.com/petapp4all/petrol-go/internal/cache"
	"github.com/petapp4all/petrol-go/internal/config"
	"github.com/petapp4all/petrol-go/internal/enrich"
	"github.com/petapp4all/petrol-go/internal/poi"
	"github.com/petapp4all/petrol-go/internal/prices"
	"github.com/petapp4all/petrol-go/pkg/http/client"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "nearby",
		Usage: "Find nearby petrol stations with current prices",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (trace, debug, info, warn, error)",
				Value: "warn",
			},
			&cli.StringFlag{
				Name:  "registry",
				Usage: "Registry base URL",
				Value: "http://localhost:8080",
			},
		},
		Commands: []*cli.Command{
			listCommand(),
			watchCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildPipeline wires the POI finder and price reader the way both
// commands need them.
func buildPipeline(c *cli.Context) *enrich.Pipeline {
	cfg := config.New(
		config.WithEnvironment("local"),
		config.WithLogLevel(c.String("log-level")),
		config.WithRegistryBaseURL(c.String("registry")),
	)
	cfg.InitializeLogging()

	cacheCfg := config.GetCacheConfig()

	overpassClient := client.New(client.Options{
		BaseURL:    cfg.OverpassBaseURL,
		UserAgent:  cfg.UserAgent,
		Timeout:    cfg.HTTPTimeout,
		MaxRetries: cfg.MaxRetries,
	})
	registryClient := client.New(client.Options{
		BaseURL:    cfg.RegistryBaseURL,
		UserAgent:  cfg.UserAgent,
		Timeout:    cfg.HTTPTimeout,
		MaxRetries: cfg.MaxRetries,
	})

	geocoder := poi.NewNominatimGeocoder(cfg.NominatimURL, cache.NewGeocodeCache(cacheCfg))
	snapshot := cache.NewStationSnapshot(cacheCfg.GetPOISnapshotTTL())
	finder := poi.NewFinder(overpassClient, geocoder, snapshot)

	return enrich.NewPipeline(finder, prices.NewClient(registryClient))
}
