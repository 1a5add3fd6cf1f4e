// Package budget tracks cumulative daily LLM spend and blocks further
// mapping calls once a hard cap is hit. Exhaustion is a backpressure signal,
// not an error: affected events are deferred to the next day.
package budget

import (
	"context"
	"time"
)

// Status is the result of a budget check.
type Status struct {
	Blocked bool    `json:"blocked"`
	Warning bool    `json:"warning"`
	Spend   float64 `json:"spend"`
	Cap     float64 `json:"cap"`
}

// Guard is the daily spend counter consulted before every mapping call. It
// is passed explicitly into the mapper rather than living as ambient global
// state, so the gate is testable in isolation.
type Guard interface {
	// Check reports the current day's spend against the warning and hard
	// cap thresholds.
	Check(ctx context.Context) (Status, error)

	// Record atomically adds cost to the current day's counter and returns
	// the new status.
	Record(ctx context.Context, cost float64) (Status, error)
}

// DayKey returns the per-day counter key for t in UTC, e.g.
// "budget:2026-08-26". A fresh key starts at zero, so no explicit reset job
// is needed at the day boundary.
func DayKey(prefix string, t time.Time) string {
	return prefix + ":" + t.UTC().Format("2006-01-02")
}

func status(spend, cap, warnFraction float64) Status {
	return Status{
		Blocked: spend >= cap,
		Warning: spend >= cap*warnFraction,
		Spend:   spend,
		Cap:     cap,
	}
}
