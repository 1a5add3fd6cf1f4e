package main

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/hankthevc/AGITracker-audit-mirror-sub002/docs"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/aggregator"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/budget"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/catalog"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/config"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/handler"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/llm"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/logger"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/mapper"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/queue/sqs"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/repository/clickhouse"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/repository/sqlite"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/service"
)

// @title AGI Proximity Index API
// @version 1.0
// @description API for ingesting evidence events and serving the proximity index
// @host localhost:8080
// @BasePath /
// @schemes http https
func main() {
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

	log.Info("Starting API service",
		zap.String("environment", cfg.Service.Environment),
		zap.String("port", cfg.Service.APIPort))

	// Configure Swagger host dynamically
	docs.SwaggerInfo.Host = cfg.Service.Host

	ctx := context.Background()

	// Initialize the relational store
	store, err := sqlite.NewClient(cfg.Store.Path, log)
	if err != nil {
		log.Fatal("Failed to open store", zap.Error(err))
	}

	events := sqlite.NewEventRepository(store, log)
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
	if err := runs.InitSchema(ctx); err != nil {
		log.Fatal("Failed to initialize telemetry schema", zap.Error(err))
	}

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

	// Initialize pipeline stages used by on-demand runs
	provider := llm.NewOpenAIProvider(&cfg.LLM, log)
	signpostMapper := mapper.NewMapper(events, links, signposts, provider, guard, cfg.Mapper, log)
	indexAggregator := aggregator.NewAggregator(signposts, links, snapshots, log)

	// Initialize services
	eventService := service.NewEventService(sqsClient, events, runs, log)
	reviewService := service.NewReviewService(links, runs, log)
	indexService := service.NewIndexService(snapshots, presets, indexAggregator, log)
	runService := service.NewRunService(signpostMapper, indexAggregator, presets, runs, log)

	// Initialize handler
	h := handler.NewHandler(eventService, reviewService, indexService, runService, log)

	addr := fmt.Sprintf(":%s", cfg.Service.APIPort)
	log.Info("API server starting", zap.String("address", addr))

	if err := http.ListenAndServe(addr, h); err != nil {
		log.Fatal("Failed to start API server", zap.Error(err))
	}
}
