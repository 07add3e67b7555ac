package poi

import (
	"context"
	"fmt"

	"github.com/muesli/gominatim"
	"github.com/petapp4all/petrol-go/internal/cache"
	"github.com/petapp4all/petrol-go/internal/models"
	"github.com/rs/zerolog/log"
)

// UnknownLocation is the sentinel address used when reverse geocoding
// fails for a single station. A failed lookup never aborts the batch.
const UnknownLocation = "Unknown Location"

// Geocoder resolves a coordinate to a human-readable address.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, c models.Coordinate) (string, error)
}

// NominatimGeocoder resolves addresses against a Nominatim server.
type NominatimGeocoder struct {
	cache *cache.GeocodeCache
}

// NewNominatimGeocoder points gominatim at the given server. The cache
// may be nil, in which case every lookup goes to the network.
func NewNominatimGeocoder(serverURL string, geocodeCache *cache.GeocodeCache) *NominatimGeocoder {
	gominatim.SetServer(serverURL)
	return &NominatimGeocoder{cache: geocodeCache}
}

func (g *NominatimGeocoder) ReverseGeocode(_ context.Context, c models.Coordinate) (string, error) {
	if g.cache != nil {
		if addr, ok := g.cache.Get(c); ok {
			log.Trace().Float64("lat", c.Lat).Float64("lon", c.Lon).Msg("Geocode cache HIT")
			return addr, nil
		}
	}

	qry := gominatim.ReverseQuery{
		Lat: fmt.Sprintf("%f", c.Lat),
		Lon: fmt.Sprintf("%f", c.Lon),
	}

	resp, err := qry.Get()
	if err != nil {
		return "", fmt.Errorf("reverse geocoding (%f, %f): %w", c.Lat, c.Lon, err)
	}
	if resp.DisplayName == "" {
		return "", fmt.Errorf("reverse geocoding (%f, %f): empty result", c.Lat, c.Lon)
	}

	if g.cache != nil {
		g.cache.Add(c, resp.DisplayName)
	}
	return resp.DisplayName, nil
}
