// Package enrich joins POI results with registry prices and ranks them by
// distance from a reference position.
package enrich

import (
	"context"
	"sort"
	"sync"

	"github.com/petapp4all/petrol-go/internal/geo"
	"github.com/petapp4all/petrol-go/internal/models"
	"github.com/rs/zerolog/log"
)

// Enrich merges stations with their matching price entries and sorts the
// result ascending by great-circle distance from reference.
//
// The join key is the normalized station name; matching is exact after
// normalization. A station without a registry entry gets an empty price
// list. The output always has exactly one entry per input station, and
// the sort is stable so equal distances keep their input order.
func Enrich(stations []models.RawStation, priceEntries []models.PriceEntry, reference models.Coordinate) []models.EnrichedStation {
	priceMap := make(map[string][]models.FuelPrice, len(priceEntries))
	for _, entry := range priceEntries {
		priceMap[geo.NormalizeName(entry.StationName)] = entry.PriceAndType
	}

	enriched := make([]models.EnrichedStation, len(stations))
	for i, station := range stations {
		prices := priceMap[geo.NormalizeName(station.Name)]
		if prices == nil {
			prices = []models.FuelPrice{}
		}
		enriched[i] = models.EnrichedStation{
			RawStation: station,
			Prices:     prices,
			DistanceKm: geo.DistanceKm(station.Coordinate, reference),
		}
	}

	sort.SliceStable(enriched, func(i, j int) bool {
		return enriched[i].DistanceKm < enriched[j].DistanceKm
	})

	return enriched
}

// StationSource yields raw stations near a center.
type StationSource interface {
	FindNearby(ctx context.Context, center models.Coordinate) ([]models.RawStation, error)
}

// PriceSource yields the full current price list.
type PriceSource interface {
	GetAll(ctx context.Context) ([]models.PriceEntry, error)
}

// Pipeline runs the full fetch-and-enrich pass: both sources are fetched
// concurrently (they are independent reads), then joined by Enrich.
type Pipeline struct {
	Stations StationSource
	Prices   PriceSource
}

func NewPipeline(stations StationSource, prices PriceSource) *Pipeline {
	return &Pipeline{Stations: stations, Prices: prices}
}

// Run fetches stations and prices for the reference position and returns
// the ranked enriched list. An error from either source aborts the pass;
// there is no automatic retry, re-running is a user action.
func (p *Pipeline) Run(ctx context.Context, reference models.Coordinate) ([]models.EnrichedStation, error) {
	var (
		wg       sync.WaitGroup
		stations []models.RawStation
		prices   []models.PriceEntry
		stnErr   error
		priceErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		stations, stnErr = p.Stations.FindNearby(ctx, reference)
	}()
	go func() {
		defer wg.Done()
		prices, priceErr = p.Prices.GetAll(ctx)
	}()
	wg.Wait()

	if stnErr != nil {
		return nil, stnErr
	}
	if priceErr != nil {
		return nil, priceErr
	}

	enriched := Enrich(stations, prices, reference)
	log.Debug().
		Int("station_count", len(enriched)).
		Int("price_count", len(prices)).
		Msg("Enrichment pass complete")
	return enriched, nil
}
