package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/aggregator"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/budget"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/catalog"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/config"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/ingest"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/llm"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/logger"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/mapper"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/queue/sqs"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/repository/clickhouse"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/repository/sqlite"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/scheduler"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	log, err := logger.New(cfg.Service.Environment)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func(log *zap.Logger) {
		err := log.Sync()
		if err != nil {
			log.Error("Failed to sync logger", zap.Error(err))
		}
	}(log)

	log.Info("Starting worker service",
		zap.String("environment", cfg.Service.Environment))

	ctx := context.Background()

	// Initialize the relational store
	store, err := sqlite.NewClient(cfg.Store.Path, log)
	if err != nil {
		log.Fatal("Failed to open store", zap.Error(err))
	}

	events := sqlite.NewEventRepository(store, log)
	sources := sqlite.NewSourceRepository(store, log)
	signposts := sqlite.NewSignpostRepository(store, log)
	links := sqlite.NewLinkRepository(store, log)
	snapshots := sqlite.NewSnapshotRepository(store, log)
	presets := sqlite.NewPresetRepository(store, log)

	if err := signposts.Seed(ctx, catalog.Default()); err != nil {
		log.Fatal("Failed to seed signpost catalog", zap.Error(err))
	}
	if _, err := presets.EnsureDefault(ctx); err != nil {
		log.Fatal("Failed to ensure default preset", zap.Error(err))
	}

	// Initialize the telemetry store
	chClient, err := clickhouse.NewClient(ctx, &cfg.ClickHouse, log)
	if err != nil {
		log.Fatal("Failed to create ClickHouse client", zap.Error(err))
	}
	runs := clickhouse.NewRunRepository(chClient, log)
	defer func() {
		if err := runs.Close(); err != nil {
			log.Error("Failed to close ClickHouse client", zap.Error(err))
		}
	}()

	// Initialize schema (create tables if not exist)
	if err := runs.InitSchema(ctx); err != nil {
		log.Fatal("Failed to initialize telemetry schema", zap.Error(err))
	}
	log.Info("Telemetry schema initialized")

	// Initialize SQS client
	sqsClient, err := sqs.NewClient(ctx, cfg.SQS, log)
	if err != nil {
		log.Fatal("Failed to create SQS client", zap.Error(err))
	}

	// Initialize the budget guard
	guard, err := budget.NewValkeyGuard(ctx, &cfg.Valkey, &cfg.Budget, log)
	if err != nil {
		log.Fatal("Failed to create budget guard", zap.Error(err))
	}

	// Initialize the daily pipeline stages
	provider := llm.NewOpenAIProvider(&cfg.LLM, log)
	signpostMapper := mapper.NewMapper(events, links, signposts, provider, guard, cfg.Mapper, log)
	indexAggregator := aggregator.NewAggregator(signposts, links, snapshots, log)
	runService := service.NewRunService(signpostMapper, indexAggregator, presets, runs, log)
	credibilityService := service.NewCredibilityService(sources, events, log)
	sched := scheduler.New(runService, credibilityService, cfg.Scheduler, log)

	// Initialize ingest pipeline
	pipeline := ingest.NewPipeline(cfg, sqsClient, events, sources, runs, log)

	// Start health check endpoint
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			if err := runs.Ping(r.Context()); err != nil {
				log.Warn("Health check failed", zap.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
		})

		addr := ":" + cfg.Consumer.HealthCheckPort
		log.Info("Health check server starting", zap.String("address", addr))
		if err := http.ListenAndServe(addr, nil); err != nil {
			log.Error("Health check server error", zap.Error(err))
		}
	}()

	workerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Info("Worker starting")

	go func() {
		if err := pipeline.Start(workerCtx); err != nil {
			log.Fatal("Ingest pipeline error", zap.Error(err))
		}
	}()

	go sched.Run(workerCtx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down worker gracefully")
	cancel()
}
