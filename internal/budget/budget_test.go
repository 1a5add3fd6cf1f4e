package budget

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayKey(t *testing.T) {
	at := time.Date(2026, 8, 26, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "budget:2026-08-26", DayKey("budget", at))

	// Non-UTC times are keyed by their UTC day.
	est := time.FixedZone("EST", -5*3600)
	lateEvening := time.Date(2026, 8, 26, 22, 0, 0, 0, est)
	assert.Equal(t, "budget:2026-08-27", DayKey("budget", lateEvening))
}

func TestMemoryGuard_FreshDayReadsZero(t *testing.T) {
	g := NewMemoryGuard(10.0, 0.8)

	st, err := g.Check(context.Background())
	assert.NoError(t, err)
	assert.False(t, st.Blocked)
	assert.False(t, st.Warning)
	assert.Equal(t, 0.0, st.Spend)
	assert.Equal(t, 10.0, st.Cap)
}

func TestMemoryGuard_Monotonic(t *testing.T) {
	g := NewMemoryGuard(10.0, 0.8)
	ctx := context.Background()

	prev := 0.0
	for i := 0; i < 5; i++ {
		st, err := g.Record(ctx, 1.5)
		assert.NoError(t, err)
		assert.Greater(t, st.Spend, prev)
		prev = st.Spend
	}
	assert.InDelta(t, 7.5, prev, 1e-9)
}

func TestMemoryGuard_WarningThenBlocked(t *testing.T) {
	g := NewMemoryGuard(10.0, 0.8)
	ctx := context.Background()

	st, err := g.Record(ctx, 7.9)
	assert.NoError(t, err)
	assert.False(t, st.Warning)
	assert.False(t, st.Blocked)

	st, err = g.Record(ctx, 0.2)
	assert.NoError(t, err)
	assert.True(t, st.Warning, "spend above 80%% of cap should warn")
	assert.False(t, st.Blocked, "warning level must not block")

	st, err = g.Record(ctx, 2.0)
	assert.NoError(t, err)
	assert.True(t, st.Blocked)

	// Blocked stays blocked for the rest of the day.
	st, err = g.Check(ctx)
	assert.NoError(t, err)
	assert.True(t, st.Blocked)
}

func TestMemoryGuard_ResetsAtDayBoundary(t *testing.T) {
	g := NewMemoryGuard(10.0, 0.8)
	ctx := context.Background()

	day := time.Date(2026, 8, 26, 23, 0, 0, 0, time.UTC)
	g.Now = func() time.Time { return day }

	st, err := g.Record(ctx, 12.0)
	assert.NoError(t, err)
	assert.True(t, st.Blocked)

	// Crossing UTC midnight lands on a fresh key.
	g.Now = func() time.Time { return day.Add(2 * time.Hour) }

	st, err = g.Check(ctx)
	assert.NoError(t, err)
	assert.False(t, st.Blocked)
	assert.Equal(t, 0.0, st.Spend)
}

func TestMemoryGuard_ConcurrentRecord(t *testing.T) {
	g := NewMemoryGuard(1000.0, 0.8)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := g.Record(ctx, 0.1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	st, err := g.Check(ctx)
	assert.NoError(t, err)
	assert.InDelta(t, 5.0, st.Spend, 1e-9)
}
