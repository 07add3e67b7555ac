// Package location abstracts the device location stream. Providers emit
// fixes on a channel with an explicit cancel handle so consumers can be
// torn down without a UI framework in the loop.
package location

import (
	"context"
	"sync"
	"time"

	"github.com/petapp4all/petrol-go/internal/models"
)

// Fix is one resolved position.
type Fix struct {
	Coordinate models.Coordinate
	Time       time.Time
}

// Provider is a source of position fixes.
type Provider interface {
	// Subscribe starts delivering fixes. The returned cancel function
	// stops delivery and closes the channel; it is safe to call more
	// than once.
	Subscribe(ctx context.Context) (<-chan Fix, func(), error)

	// LastKnown returns the most recent fix, if any. Used by
	// pull-to-refresh when no new fix has arrived yet.
	LastKnown() (Fix, bool)
}

// StaticProvider re-emits a fixed coordinate on an interval. Useful for
// one-shot lookups and tests.
type StaticProvider struct {
	coord    models.Coordinate
	interval time.Duration

	mu   sync.Mutex
	last *Fix
}

func NewStaticProvider(coord models.Coordinate, interval time.Duration) *StaticProvider {
	return &StaticProvider{coord: coord, interval: interval}
}

func (p *StaticProvider) Subscribe(ctx context.Context) (<-chan Fix, func(), error) {
	out := make(chan Fix)
	done := make(chan struct{})
	var once sync.Once
	cancel := func() { once.Do(func() { close(done) }) }

	go func() {
		defer close(out)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			fix := Fix{Coordinate: p.coord, Time: time.Now()}
			select {
			case out <- fix:
				p.setLast(fix)
			case <-done:
				return
			case <-ctx.Done():
				return
			}

			select {
			case <-ticker.C:
			case <-done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cancel, nil
}

func (p *StaticProvider) LastKnown() (Fix, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.last == nil {
		return Fix{}, false
	}
	return *p.last, true
}

func (p *StaticProvider) setLast(fix Fix) {
	p.mu.Lock()
	p.last = &fix
	p.mu.Unlock()
}
