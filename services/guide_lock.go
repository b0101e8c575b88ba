package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// GuideLocks hands out one binary semaphore per guide so that booking creation
// and status transitions for the same guide never interleave. Different guides
// never contend with each other.
type GuideLocks struct {
	mu      sync.Mutex
	locks   map[uuid.UUID]chan struct{}
	maxWait time.Duration
}

func NewGuideLocks(maxWait time.Duration) *GuideLocks {
	return &GuideLocks{
		locks:   make(map[uuid.UUID]chan struct{}),
		maxWait: maxWait,
	}
}

func (g *GuideLocks) semaphore(guideID uuid.UUID) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	sem, ok := g.locks[guideID]
	if !ok {
		sem = make(chan struct{}, 1)
		g.locks[guideID] = sem
	}
	return sem
}

// Acquire enters the guide's critical section, waiting at most the configured
// bound. On timeout it returns ErrBusy so callers can retry with backoff. The
// returned release function must be called on every exit path.
func (g *GuideLocks) Acquire(guideID uuid.UUID) (func(), error) {
	sem := g.semaphore(guideID)

	timer := time.NewTimer(g.maxWait)
	defer timer.Stop()

	select {
	case sem <- struct{}{}:
		return func() { <-sem }, nil
	case <-timer.C:
		return nil, ErrBusy
	}
}
