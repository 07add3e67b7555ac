package cache

import (
	"sync"
	"time"

	"github.com/petapp4all/petrol-go/internal/geo"
	"github.com/petapp4all/petrol-go/internal/models"
)

// StationSnapshot holds the most recent POI result set together with the
// center it was fetched for. A pull-to-refresh from (almost) the same
// position inside the TTL reuses the snapshot instead of re-querying the
// POI service.
type StationSnapshot struct {
	stations    []models.RawStation
	center      models.Coordinate
	lastUpdated time.Time
	ttl         time.Duration
	mu          sync.RWMutex
}

// snapshotReuseMeters bounds how far a new center may drift from the
// cached one before the snapshot is considered a different area. Kept
// below the 50m movement gate so a gated refresh never hits the cache.
const snapshotReuseMeters = 25.0

func NewStationSnapshot(ttl time.Duration) *StationSnapshot {
	return &StationSnapshot{
		lastUpdated: time.Time{}, // Zero time to ensure first fetch
		ttl:         ttl,
	}
}

func (c *StationSnapshot) Get(center models.Coordinate) []models.RawStation {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.isExpired() {
		return nil
	}
	if geo.DistanceMeters(center, c.center) > snapshotReuseMeters {
		return nil
	}
	return c.stations
}

func (c *StationSnapshot) Set(center models.Coordinate, stations []models.RawStation) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stations = stations
	c.center = center
	c.lastUpdated = time.Now()
}

func (c *StationSnapshot) isExpired() bool {
	return time.Since(c.lastUpdated) > c.ttl
}
