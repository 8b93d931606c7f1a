package services

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// DefaultTrackingInterval is how often a delivery simulation refreshes its
// position. Purely cosmetic polling; no real geolocation is involved.
const DefaultTrackingInterval = 10 * time.Second

// Position is a simulated delivery location snapshot.
type Position struct {
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TrackingService runs one randomized position simulation per delivering
// order. Each simulation is a timer loop scoped to the caller's context,
// so a watcher going away tears its simulation down rather than leaking
// the ticker.
type TrackingService struct {
	interval time.Duration

	mu   sync.RWMutex
	sims map[string]*simulation
}

type simulation struct {
	cancel   context.CancelFunc
	mu       sync.RWMutex
	position Position
}

// NewTrackingService creates a tracking service. Pass a short interval in
// tests.
func NewTrackingService(interval time.Duration) *TrackingService {
	return &TrackingService{
		interval: interval,
		sims:     make(map[string]*simulation),
	}
}

// Start launches the simulation for an order if one is not already
// running, and returns the current position. The simulation stops when
// ctx is cancelled or Stop is called.
func (t *TrackingService) Start(ctx context.Context, orderID string) Position {
	t.mu.Lock()
	if sim, ok := t.sims[orderID]; ok {
		t.mu.Unlock()
		return sim.current()
	}

	simCtx, cancel := context.WithCancel(ctx)
	sim := &simulation{
		cancel: cancel,
		// Start near the city center; every tick nudges the position.
		position: Position{Lat: 12.9716, Lng: 77.5946, UpdatedAt: time.Now()},
	}
	t.sims[orderID] = sim
	t.mu.Unlock()

	go t.run(simCtx, orderID, sim)
	return sim.current()
}

func (t *TrackingService) run(ctx context.Context, orderID string, sim *simulation) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.mu.Lock()
			delete(t.sims, orderID)
			t.mu.Unlock()
			return
		case <-ticker.C:
			sim.mu.Lock()
			sim.position.Lat += (rand.Float64() - 0.5) * 0.01
			sim.position.Lng += (rand.Float64() - 0.5) * 0.01
			sim.position.UpdatedAt = time.Now()
			sim.mu.Unlock()
		}
	}
}

// Position returns the latest simulated position for an order.
func (t *TrackingService) Position(orderID string) (Position, bool) {
	t.mu.RLock()
	sim, ok := t.sims[orderID]
	t.mu.RUnlock()
	if !ok {
		return Position{}, false
	}
	return sim.current(), true
}

// Stop tears down the simulation for an order. Unknown orders are a no-op.
func (t *TrackingService) Stop(orderID string) {
	t.mu.RLock()
	sim, ok := t.sims[orderID]
	t.mu.RUnlock()
	if ok {
		sim.cancel()
	}
}

// Active returns the number of running simulations (for testing assertions).
func (t *TrackingService) Active() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.sims)
}

func (s *simulation) current() Position {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.position
}

var trackingServiceInstance *TrackingService

// InitTrackingService initializes the global tracking service instance.
func InitTrackingService(interval time.Duration) *TrackingService {
	trackingServiceInstance = NewTrackingService(interval)
	return trackingServiceInstance
}

// GetTrackingService returns the initialized tracking service instance.
func GetTrackingService() *TrackingService {
	return trackingServiceInstance
}

// SetTrackingService sets the tracking service instance (primarily for testing).
func SetTrackingService(s *TrackingService) {
	trackingServiceInstance = s
}
