package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/petapp4all/petrol-go/internal/location"
	"github.com/petapp4all/petrol-go/internal/models"
	"github.com/petapp4all/petrol-go/internal/refresh"
	"github.com/urfave/cli/v2"
)

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Follow a position stream and refresh the station list on movement",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "gpx",
				Usage: "GPX file to replay as the position stream",
			},
			&cli.Float64Flag{
				Name:  "lat",
				Usage: "Fixed latitude (alternative to --gpx)",
			},
			&cli.Float64Flag{
				Name:  "lon",
				Usage: "Fixed longitude (alternative to --gpx)",
			},
			&cli.DurationFlag{
				Name:  "interval",
				Usage: "Delay between replayed position fixes",
				Value: 2 * time.Second,
			},
		},
		Action: watchAction,
	}
}

func watchAction(c *cli.Context) error {
	provider, err := buildProvider(c)
	if err != nil {
		return err
	}

	pipeline := buildPipeline(c)
	controller := refresh.New(pipeline, refresh.WithNotice(func() {
		fmt.Println("No location fix received. Is location enabled?")
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := controller.Start(ctx, provider); err != nil {
		return err
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	var lastRef models.Coordinate
	for {
		select {
		case <-ctx.Done():
			controller.Stop()
			controller.Wait()
			return nil
		case <-ticker.C:
			snap := controller.Snapshot()
			if snap.Err != nil {
				fmt.Fprintf(os.Stderr, "Refresh failed: %v\n", snap.Err)
				continue
			}
			if !snap.HasFix || snap.State == refresh.StateRefreshing {
				continue
			}
			if snap.Reference == lastRef {
				continue
			}
			lastRef = snap.Reference
			fmt.Printf("--- Position %.5f, %.5f ---\n", snap.Reference.Lat, snap.Reference.Lon)
			printStations(snap.Stations)
		}
	}
}

func buildProvider(c *cli.Context) (location.Provider, error) {
	interval := c.Duration("interval")

	if path := c.String("gpx"); path != "" {
		return location.NewGPXProvider(path, interval)
	}

	lat := c.Float64("lat")
	lon := c.Float64("lon")
	if lat == 0 && lon == 0 {
		return nil, errors.New("either --gpx or --lat/--lon is required")
	}

	return location.NewStaticProvider(models.Coordinate{Lat: lat, Lon: lon}, interval), nil
}
