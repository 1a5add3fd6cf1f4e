package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Service holds process-level settings shared by the API and worker binaries.
type Service struct {
	Environment string `envconfig:"SERVICE_ENVIRONMENT" required:"true"`
	APIPort     string `envconfig:"SERVICE_API_PORT" default:"8080"`
	Host        string `envconfig:"SERVICE_HOST" default:"localhost:8080"`
}

// Store configures the relational core store.
type Store struct {
	Path string `envconfig:"STORE_PATH" default:"data/proximity.db"`
}

// ClickHouse configures the operational telemetry store (run records and the
// audit log).
type ClickHouse struct {
	Host            string `envconfig:"CLICKHOUSE_HOST" required:"true"`
	Port            string `envconfig:"CLICKHOUSE_PORT" required:"true"`
	Database        string `envconfig:"CLICKHOUSE_DB" required:"true"`
	User            string `envconfig:"CLICKHOUSE_USER" default:""`
	Password        string `envconfig:"CLICKHOUSE_PASSWORD" default:""`
	UseTLS          bool   `envconfig:"CLICKHOUSE_USE_TLS" default:"false"`
	MaxOpenConns    int    `envconfig:"CLICKHOUSE_MAX_OPEN_CONNS" default:"5"`
	MaxIdleConns    int    `envconfig:"CLICKHOUSE_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime int    `envconfig:"CLICKHOUSE_CONN_MAX_LIFETIME_SEC" default:"3600"`
}

// Valkey configures the key-value store backing the daily budget counters.
type Valkey struct {
	Host     string `envconfig:"VALKEY_HOST" required:"true"`
	Port     string `envconfig:"VALKEY_PORT" required:"true"`
	Password string `envconfig:"VALKEY_PASSWORD" default:""`
	DB       int    `envconfig:"VALKEY_DB" default:"0"`
}

// SQS configures the raw-event intake queue.
type SQS struct {
	Endpoint string `envconfig:"SQS_ENDPOINT"`
	QueueURL string `envconfig:"SQS_QUEUE_URL" required:"true"`
	Region   string `envconfig:"SQS_REGION" required:"true"`
}

// LLM configures the signpost-mapping model provider.
type LLM struct {
	BaseURL             string  `envconfig:"LLM_BASE_URL" default:"https://api.openai.com/v1"`
	APIKey              string  `envconfig:"LLM_API_KEY" default:""`
	Model               string  `envconfig:"LLM_MODEL" default:"gpt-4o-mini"`
	TimeoutSec          int     `envconfig:"LLM_TIMEOUT_SEC" default:"60"`
	PromptCostPer1K     float64 `envconfig:"LLM_PROMPT_COST_PER_1K" default:"0.00015"`
	CompletionCostPer1K float64 `envconfig:"LLM_COMPLETION_COST_PER_1K" default:"0.0006"`
}

// Budget configures the daily LLM spend guard.
type Budget struct {
	DailyCapUSD      float64 `envconfig:"BUDGET_DAILY_CAP_USD" default:"10.0"`
	WarningFraction  float64 `envconfig:"BUDGET_WARNING_FRACTION" default:"0.8"`
	CounterTTLDays   int     `envconfig:"BUDGET_COUNTER_TTL_DAYS" default:"7"`
	CounterKeyPrefix string  `envconfig:"BUDGET_COUNTER_KEY_PREFIX" default:"budget"`
}

// Mapper configures the signpost mapping stage.
type Mapper struct {
	AutoApproveThreshold float64 `envconfig:"MAPPER_AUTO_APPROVE_THRESHOLD" default:"0.6"`
	MaxEventChars        int     `envconfig:"MAPPER_MAX_EVENT_CHARS" default:"4000"`
	RetryBackoffSec      int     `envconfig:"MAPPER_RETRY_BACKOFF_SEC" default:"5"`
}

// Scheduler configures the worker's daily job loop.
type Scheduler struct {
	DailyRunHourUTC      int `envconfig:"SCHEDULER_DAILY_RUN_HOUR_UTC" default:"6"`
	CredibilityEveryDays int `envconfig:"SCHEDULER_CREDIBILITY_EVERY_DAYS" default:"7"`
}

// Consumer configures the intake pipeline.
type Consumer struct {
	HealthCheckPort string `envconfig:"CONSUMER_HEALTH_CHECK_PORT" default:"8081"`
	BufferSize      int    `envconfig:"CONSUMER_BUFFER_SIZE" default:"100"`
	RunFlushSec     int    `envconfig:"CONSUMER_RUN_FLUSH_SEC" default:"60"`
}

// Config is the full configuration for both binaries.
type Config struct {
	Service    Service
	Store      Store
	ClickHouse ClickHouse
	Valkey     Valkey
	SQS        SQS
	LLM        LLM
	Budget     Budget
	Mapper     Mapper
	Scheduler  Scheduler
	Consumer   Consumer
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.Budget.DailyCapUSD <= 0 {
		return nil, fmt.Errorf("budget daily cap must be positive, got %f", cfg.Budget.DailyCapUSD)
	}
	if cfg.Mapper.AutoApproveThreshold < 0 || cfg.Mapper.AutoApproveThreshold > 1 {
		return nil, fmt.Errorf("auto-approve threshold must be within [0,1], got %f", cfg.Mapper.AutoApproveThreshold)
	}

	return &cfg, nil
}
