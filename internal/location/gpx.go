package location

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/petapp4all/petrol-go/internal/models"
	"github.com/tkrajina/gpxgo/gpx"
)

// GPXProvider replays the track points of a GPX file as position fixes.
// It stands in for a live GPS feed when exercising the refresh pipeline
// from the command line.
type GPXProvider struct {
	points   []models.Coordinate
	interval time.Duration

	mu   sync.Mutex
	last *Fix
}

// NewGPXProvider loads every track point of the file, emitted in order at
// the given interval.
func NewGPXProvider(path string, interval time.Duration) (*GPXProvider, error) {
	data, err := gpx.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("parsing GPX file: %w", err)
	}
	return newGPXProvider(data, interval)
}

// NewGPXProviderFromBytes is the in-memory variant of NewGPXProvider.
func NewGPXProviderFromBytes(raw []byte, interval time.Duration) (*GPXProvider, error) {
	data, err := gpx.ParseBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing GPX data: %w", err)
	}
	return newGPXProvider(data, interval)
}

func newGPXProvider(data *gpx.GPX, interval time.Duration) (*GPXProvider, error) {
	var points []models.Coordinate
	for _, track := range data.Tracks {
		for _, segment := range track.Segments {
			for _, point := range segment.Points {
				points = append(points, models.Coordinate{
					Lat: point.Latitude,
					Lon: point.Longitude,
				})
			}
		}
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("GPX data contains no track points")
	}

	return &GPXProvider{points: points, interval: interval}, nil
}

// Subscribe replays the track once and then closes the channel.
func (p *GPXProvider) Subscribe(ctx context.Context) (<-chan Fix, func(), error) {
	out := make(chan Fix)
	done := make(chan struct{})
	var once sync.Once
	cancel := func() { once.Do(func() { close(done) }) }

	go func() {
		defer close(out)
		for i, coord := range p.points {
			if i > 0 {
				select {
				case <-time.After(p.interval):
				case <-done:
					return
				case <-ctx.Done():
					return
				}
			}

			fix := Fix{Coordinate: coord, Time: time.Now()}
			select {
			case out <- fix:
				p.setLast(fix)
			case <-done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cancel, nil
}

func (p *GPXProvider) LastKnown() (Fix, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.last == nil {
		return Fix{}, false
	}
	return *p.last, true
}

func (p *GPXProvider) setLast(fix Fix) {
	p.mu.Lock()
	p.last = &fix
	p.mu.Unlock()
}
