package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/petapp4all/petrol-go/internal/models"
	"github.com/urfave/cli/v2"
)

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "One-shot lookup of nearby stations for a position",
		Flags: []cli.Flag{
			&cli.Float64Flag{
				Name:  "lat",
				Usage: "Latitude of the position",
			},
			&cli.Float64Flag{
				Name:  "lon",
				Usage: "Longitude of the position",
			},
		},
		Action: listAction,
	}
}

func listAction(c *cli.Context) error {
	lat := c.Float64("lat")
	lon := c.Float64("lon")
	if lat == 0 && lon == 0 {
		return errors.New("latitude and longitude are required")
	}

	pipeline := buildPipeline(c)
	stations, err := pipeline.Run(context.Background(), models.Coordinate{Lat: lat, Lon: lon})
	if err != nil {
		return err
	}

	printStations(stations)
	return nil
}

func printStations(stations []models.EnrichedStation) {
	if len(stations) == 0 {
		fmt.Println("No stations found nearby.")
		return
	}

	for i, station := range stations {
		fmt.Printf("%d. %s\n", i+1, station.Name)
		fmt.Printf("   Address: %s\n", station.Address)
		fmt.Printf("   Distance: %.2f km\n", station.DistanceKm)
		if len(station.Prices) == 0 {
			fmt.Println("   Prices: not listed")
		} else {
			for _, price := range station.Prices {
				fmt.Printf("   %s: %.2f\n", price.Type, price.Price)
			}
		}
		fmt.Println()
	}

	fmt.Printf("Found %d stations\n", len(stations))
}
