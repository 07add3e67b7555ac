// Package poi queries an Overpass-compatible endpoint for fuel stations
// around a position and resolves each result to a street address.
package poi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/petapp4all/petrol-go/internal/cache"
	"github.com/petapp4all/petrol-go/internal/models"
	"github.com/petapp4all/petrol-go/pkg/http/client"
	"github.com/rs/zerolog/log"
)

const (
	// SearchRadiusMeters is the fixed POI search radius.
	SearchRadiusMeters = 20000

	// DefaultStationName is used when the provider supplies no name tag.
	DefaultStationName = "Petrol Station"

	geocodeWorkers = 4
)

// Finder queries fuel stations near a center coordinate.
type Finder struct {
	httpClient client.Interface
	geocoder   Geocoder
	snapshot   *cache.StationSnapshot
}

func NewFinder(httpClient client.Interface, geocoder Geocoder, snapshot *cache.StationSnapshot) *Finder {
	return &Finder{
		httpClient: httpClient,
		geocoder:   geocoder,
		snapshot:   snapshot,
	}
}

type overpassResponse struct {
	Elements []struct {
		ID   int64             `json:"id"`
		Lat  float64           `json:"lat"`
		Lon  float64           `json:"lon"`
		Tags map[string]string `json:"tags"`
	} `json:"elements"`
}

// FindNearby returns every fuel station within SearchRadiusMeters of the
// center, each with a resolved address. A failed POI query propagates; a
// failed address lookup degrades that single station to UnknownLocation.
func (f *Finder) FindNearby(ctx context.Context, center models.Coordinate) ([]models.RawStation, error) {
	if f.snapshot != nil {
		if cached := f.snapshot.Get(center); cached != nil {
			log.Debug().Msg("Cache HIT for POI station list")
			return cached, nil
		}
	}

	query := fmt.Sprintf(`[out:json];node["amenity"="fuel"](around:%d,%f,%f);out;`,
		SearchRadiusMeters, center.Lat, center.Lon)

	resp, err := f.httpClient.Get(ctx, "/api/interpreter?data="+url.QueryEscape(query))
	if err != nil {
		return nil, NewSourceError("fetching fuel stations", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, NewSourceError(fmt.Sprintf("unexpected status code: %d", resp.StatusCode), nil)
	}

	var overpass overpassResponse
	if err := json.Unmarshal(resp.Body, &overpass); err != nil {
		return nil, NewSourceError("decoding response", err)
	}

	stations := make([]models.RawStation, len(overpass.Elements))
	for i, el := range overpass.Elements {
		name := el.Tags["name"]
		if name == "" {
			name = DefaultStationName
		}
		stations[i] = models.RawStation{
			ID:         strconv.FormatInt(el.ID, 10),
			Coordinate: models.Coordinate{Lon: el.Lon, Lat: el.Lat},
			Name:       name,
		}
	}

	f.resolveAddresses(ctx, stations)

	log.Debug().Int("station_count", len(stations)).Msg("Fetched POI station list")

	if f.snapshot != nil {
		f.snapshot.Set(center, stations)
	}
	return stations, nil
}

// resolveAddresses fills in the Address field of every station using a
// small worker pool. Workers write to disjoint indexes, so no locking is
// needed.
func (f *Finder) resolveAddresses(ctx context.Context, stations []models.RawStation) {
	if f.geocoder == nil {
		for i := range stations {
			stations[i].Address = UnknownLocation
		}
		return
	}

	work := make(chan int, len(stations))

	var wg sync.WaitGroup
	for w := 0; w < geocodeWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range work {
				addr, err := f.geocoder.ReverseGeocode(ctx, stations[i].Coordinate)
				if err != nil {
					log.Debug().Err(err).Str("station_id", stations[i].ID).Msg("Address resolution failed")
					addr = UnknownLocation
				}
				stations[i].Address = addr
			}
		}()
	}

	for i := range stations {
		work <- i
	}
	close(work)
	wg.Wait()
}
