package cache

import (
	"fmt"
	"sync/atomic"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/petapp4all/petrol-go/internal/config"
	"github.com/petapp4all/petrol-go/internal/models"
)

// GeocodeCache memoizes reverse-geocoding results. Nominatim's usage
// policy caps request rates, and nearby POI batches revisit the same
// coordinates constantly, so resolved addresses are kept in an expiring
// LRU keyed by rounded coordinate. Lookups arrive from the concurrent
// geocode workers, so the counters are atomic.
type GeocodeCache struct {
	lru    *expirable.LRU[string, string]
	hits   atomic.Uint64
	misses atomic.Uint64
}

func NewGeocodeCache(cfg *config.CacheConfig) *GeocodeCache {
	return &GeocodeCache{
		lru: expirable.NewLRU[string, string](cfg.GeocodeLRUSize, nil, cfg.GetGeocodeTTL()),
	}
}

// geocodeKey rounds to 5 decimal places (~1m), enough that re-resolving
// the same POI always hits.
func geocodeKey(c models.Coordinate) string {
	return fmt.Sprintf("%.5f:%.5f", c.Lat, c.Lon)
}

func (g *GeocodeCache) Get(c models.Coordinate) (string, bool) {
	addr, ok := g.lru.Get(geocodeKey(c))
	if ok {
		g.hits.Add(1)
	} else {
		g.misses.Add(1)
	}
	return addr, ok
}

func (g *GeocodeCache) Add(c models.Coordinate, address string) {
	g.lru.Add(geocodeKey(c), address)
}

// Stats returns hit and miss counters for logging.
func (g *GeocodeCache) Stats() (hits, misses uint64) {
	return g.hits.Load(), g.misses.Load()
}
