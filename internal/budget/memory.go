package budget

import (
	"context"
	"sync"
	"time"
)

// MemoryGuard is an in-process Guard used in tests and offline development.
// It keeps the same per-day key semantics as ValkeyGuard but offers no
// crash-safety.
type MemoryGuard struct {
	mu           sync.Mutex
	spend        map[string]float64
	cap          float64
	warnFraction float64

	// Now is overridable so tests can cross the day boundary.
	Now func() time.Time
}

// NewMemoryGuard creates an in-memory budget guard.
func NewMemoryGuard(cap, warnFraction float64) *MemoryGuard {
	return &MemoryGuard{
		spend:        make(map[string]float64),
		cap:          cap,
		warnFraction: warnFraction,
		Now:          time.Now,
	}
}

// Check reads the current day's counter.
func (g *MemoryGuard) Check(ctx context.Context) (Status, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return status(g.spend[DayKey("budget", g.Now())], g.cap, g.warnFraction), nil
}

// Record adds cost to the current day's counter.
func (g *MemoryGuard) Record(ctx context.Context, cost float64) (Status, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := DayKey("budget", g.Now())
	g.spend[key] += cost
	return status(g.spend[key], g.cap, g.warnFraction), nil
}
