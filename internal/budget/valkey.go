package budget

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/config"
)

// ValkeyGuard is a Guard backed by a Valkey/Redis counter keyed per UTC day.
// The counter lives outside the process, so a mid-day restart resumes the
// running total instead of forgetting it. Keys expire after a multi-day TTL
// for debuggability.
type ValkeyGuard struct {
	client       *redis.Client
	cap          float64
	warnFraction float64
	keyPrefix    string
	ttl          time.Duration
	log          *zap.Logger

	now func() time.Time
}

// NewValkeyGuard creates a budget guard backed by the given Valkey instance.
func NewValkeyGuard(ctx context.Context, valkeyCfg *config.Valkey, budgetCfg *config.Budget, log *zap.Logger) (*ValkeyGuard, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", valkeyCfg.Host, valkeyCfg.Port),
		Password: valkeyCfg.Password,
		DB:       valkeyCfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping valkey: %w", err)
	}

	log.Info("Valkey budget counter connected",
		zap.String("host", valkeyCfg.Host),
		zap.Float64("daily_cap_usd", budgetCfg.DailyCapUSD))

	return &ValkeyGuard{
		client:       client,
		cap:          budgetCfg.DailyCapUSD,
		warnFraction: budgetCfg.WarningFraction,
		keyPrefix:    budgetCfg.CounterKeyPrefix,
		ttl:          time.Duration(budgetCfg.CounterTTLDays) * 24 * time.Hour,
		log:          log,
		now:          time.Now,
	}, nil
}

// Check reads the current day's counter. A missing key reads as zero spend.
func (g *ValkeyGuard) Check(ctx context.Context) (Status, error) {
	key := DayKey(g.keyPrefix, g.now())

	spend, err := g.client.Get(ctx, key).Float64()
	if errors.Is(err, redis.Nil) {
		spend = 0
	} else if err != nil {
		return Status{}, fmt.Errorf("failed to read budget counter: %w", err)
	}

	return status(spend, g.cap, g.warnFraction), nil
}

// Record atomically increments the current day's counter and refreshes its
// TTL.
func (g *ValkeyGuard) Record(ctx context.Context, cost float64) (Status, error) {
	key := DayKey(g.keyPrefix, g.now())

	pipe := g.client.TxPipeline()
	incr := pipe.IncrByFloat(ctx, key, cost)
	pipe.Expire(ctx, key, g.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return Status{}, fmt.Errorf("failed to record budget spend: %w", err)
	}

	st := status(incr.Val(), g.cap, g.warnFraction)
	if st.Blocked {
		g.log.Warn("Daily LLM budget exhausted",
			zap.Float64("spend", st.Spend),
			zap.Float64("cap", st.Cap))
	} else if st.Warning {
		g.log.Warn("Daily LLM budget warning threshold crossed",
			zap.Float64("spend", st.Spend),
			zap.Float64("cap", st.Cap))
	}
	return st, nil
}

// Close releases the Valkey connection.
func (g *ValkeyGuard) Close() error {
	return g.client.Close()
}
