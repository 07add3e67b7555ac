// Package refresh owns the reference position and decides when a new
// position update is worth a full fetch-and-enrich pass.
package refresh

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/petapp4all/petrol-go/internal/geo"
	"github.com/petapp4all/petrol-go/internal/location"
	"github.com/petapp4all/petrol-go/internal/models"
	"github.com/rs/zerolog/log"
)

// Pipeline is the full fetch-and-enrich pass invoked on accepted updates.
type Pipeline interface {
	Run(ctx context.Context, reference models.Coordinate) ([]models.EnrichedStation, error)
}

// State of the controller. Refreshing acts as a mutex: updates arriving
// while a pass is in flight are dropped, never queued.
type State int

const (
	StateIdle State = iota
	StateRefreshing
)

const (
	// DefaultGateMeters is the displacement threshold below which a
	// position update is discarded.
	DefaultGateMeters = 50.0

	// DefaultStaleTimeout bounds how long the controller waits for a
	// first fix before surfacing a location-disabled notice.
	DefaultStaleTimeout = 15 * time.Second
)

// Snapshot is the controller's externally visible state at one instant.
type Snapshot struct {
	Reference models.Coordinate
	HasFix    bool
	State     State
	Loading   bool
	Stations  []models.EnrichedStation
	Err       error
}

// Controller gates refreshes on movement. The displacement check always
// runs against the last accepted reference, so small updates never
// accumulate into a refresh.
type Controller struct {
	pipeline     Pipeline
	gateMeters   float64
	staleTimeout time.Duration
	onNotice     func()

	mu          sync.Mutex
	state       State
	reference   models.Coordinate
	hasFix      bool
	loading     bool
	noticeFired bool
	stations    []models.EnrichedStation
	lastErr     error
	staleTimer  *time.Timer
	started     bool
	stopped     bool
	subCancel   func()

	inflight sync.WaitGroup
}

type Option func(*Controller)

// WithGateMeters overrides the movement threshold.
func WithGateMeters(meters float64) Option {
	return func(c *Controller) {
		c.gateMeters = meters
	}
}

// WithStaleTimeout overrides the stale-fix timeout.
func WithStaleTimeout(d time.Duration) Option {
	return func(c *Controller) {
		c.staleTimeout = d
	}
}

// WithNotice registers the location-disabled notice callback.
func WithNotice(fn func()) Option {
	return func(c *Controller) {
		c.onNotice = fn
	}
}

// New creates a controller in the loading state with the degenerate
// origin reference; the first real fix is always far enough to refresh.
func New(pipeline Pipeline, opts ...Option) *Controller {
	c := &Controller{
		pipeline:     pipeline,
		gateMeters:   DefaultGateMeters,
		staleTimeout: DefaultStaleTimeout,
		state:        StateIdle,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.mu.Lock()
	c.enterLoadingLocked()
	c.mu.Unlock()

	return c
}

// Start subscribes to the provider and feeds its fixes into
// OnPositionUpdate until the stream closes or the context ends. The
// controller drives at most one subscription; a second Start is rejected
// so the first subscription's cancel handle is never orphaned.
func (c *Controller) Start(ctx context.Context, provider location.Provider) error {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return errors.New("refresh: controller is stopped")
	}
	if c.started {
		c.mu.Unlock()
		return errors.New("refresh: controller already started")
	}
	c.started = true
	c.mu.Unlock()

	fixes, cancel, err := provider.Subscribe(ctx)
	if err != nil {
		c.mu.Lock()
		c.started = false
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		cancel()
		return errors.New("refresh: controller is stopped")
	}
	c.subCancel = cancel
	c.mu.Unlock()

	go func() {
		for fix := range fixes {
			c.OnPositionUpdate(fix.Coordinate)
		}
	}()

	return nil
}

// OnPositionUpdate applies the movement gate to one fix. Updates below
// the gate, or arriving while a pass is in flight, are dropped with no
// state change.
func (c *Controller) OnPositionUpdate(coord models.Coordinate) {
	c.mu.Lock()

	if c.stopped {
		c.mu.Unlock()
		return
	}

	// A resolved position arrived; the stale-fix timer no longer applies.
	c.stopStaleTimerLocked()

	displacement := geo.DistanceMeters(coord, c.reference)
	if displacement < c.gateMeters {
		log.Debug().Float64("displacement_m", displacement).Msg("Position update below movement gate, dropped")
		c.mu.Unlock()
		return
	}
	if c.state == StateRefreshing {
		log.Debug().Float64("displacement_m", displacement).Msg("Refresh in flight, position update dropped")
		c.mu.Unlock()
		return
	}

	c.reference = coord
	c.hasFix = true
	c.state = StateRefreshing
	c.mu.Unlock()

	log.Debug().
		Float64("lat", coord.Lat).
		Float64("lon", coord.Lon).
		Float64("displacement_m", displacement).
		Msg("Movement gate passed, refreshing")

	c.inflight.Add(1)
	go c.runPipeline(coord)
}

// Refresh forces a pass for the given position, bypassing the movement
// gate (pull-to-refresh). It is still dropped while a pass is in flight.
func (c *Controller) Refresh(coord models.Coordinate) {
	c.mu.Lock()

	if c.stopped || c.state == StateRefreshing {
		c.mu.Unlock()
		return
	}

	c.reference = coord
	c.hasFix = true
	c.state = StateRefreshing
	c.enterLoadingLocked()
	c.mu.Unlock()

	c.inflight.Add(1)
	go c.runPipeline(coord)
}

// runPipeline executes one pass and records its outcome. The pass runs on
// a background context: stopping the controller does not cancel it, the
// result is simply discarded.
func (c *Controller) runPipeline(reference models.Coordinate) {
	defer c.inflight.Done()

	stations, err := c.pipeline.Run(context.Background(), reference)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = StateIdle
	if c.stopped {
		return
	}

	c.loading = false
	if err != nil {
		log.Warn().Err(err).Msg("Enrichment pass failed")
		c.lastErr = err
		return
	}

	c.stations = stations
	c.lastErr = nil
}

// Snapshot returns the current state. The station list is shared, not
// copied; enriched stations are immutable once built.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		Reference: c.reference,
		HasFix:    c.hasFix,
		State:     c.state,
		Loading:   c.loading,
		Stations:  c.stations,
		Err:       c.lastErr,
	}
}

// Stop tears down the subscription and the stale timer. In-flight passes
// complete but their results are discarded. Safe to call repeatedly.
func (c *Controller) Stop() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.stopped = true
	c.stopStaleTimerLocked()
	cancel := c.subCancel
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Wait blocks until any in-flight pass has finished. Intended for
// orderly shutdown and tests.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

func (c *Controller) enterLoadingLocked() {
	c.loading = true
	c.noticeFired = false
	c.stopStaleTimerLocked()
	c.staleTimer = time.AfterFunc(c.staleTimeout, c.onStaleTimeout)
}

func (c *Controller) stopStaleTimerLocked() {
	if c.staleTimer != nil {
		c.staleTimer.Stop()
		c.staleTimer = nil
	}
}

// onStaleTimeout clears the loading state when no fix has arrived in
// time. The reference position is deliberately left untouched.
func (c *Controller) onStaleTimeout() {
	c.mu.Lock()
	if c.stopped || !c.loading || c.noticeFired {
		c.mu.Unlock()
		return
	}
	c.loading = false
	c.noticeFired = true
	notice := c.onNotice
	c.mu.Unlock()

	log.Info().Msg("No location fix received, surfacing location-disabled notice")
	if notice != nil {
		notice()
	}
}
