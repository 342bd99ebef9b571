package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go-gin-event-hub/config"
	"go-gin-event-hub/internal/cache"
	"go-gin-event-hub/internal/database"
	"go-gin-event-hub/internal/importer"
	"go-gin-event-hub/internal/normalize"
	"go-gin-event-hub/internal/repository"
	"go-gin-event-hub/internal/service"
	"go-gin-event-hub/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	var (
		file    = flag.String("file", "events.yaml", "path to YAML or JSON list of events")
		workers = flag.Int("workers", 8, "number of concurrent inserts")
		migrate = flag.Bool("migrate", true, "apply schema before importing")
	)
	flag.Parse()

	log := logger.WithComponent("importer")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", zap.Error(err))
	}

	pools, err := database.NewPoolCache(&cfg.Database)
	if err != nil {
		log.Fatal("Invalid database configuration", zap.Error(err))
	}
	redisClients := database.NewRedisCache(&cfg.Redis)

	events, err := importer.LoadFile(*file)
	if err != nil {
		log.Fatal("Failed to read events file", zap.String("file", *file), zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	if *migrate {
		pool, err := pools.Acquire(ctx)
		if err != nil {
			log.Fatal("Failed to connect database", zap.Error(err))
		}
		if err := database.Migrate(ctx, pool); err != nil {
			log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	eventService := service.NewEventService(
		repository.NewEventRepository(pools),
		cache.NewRedisEventCache(redisClients, cfg.Redis.CacheTTL),
		normalize.NewPipeline(),
	)

	result := importer.NewImporter(eventService, *workers).Run(ctx, events)
	log.Info("Import finished",
		zap.String("file", *file),
		zap.Int("total", len(events)),
		zap.Int("created", len(result.Created)),
		zap.Int("failed", len(result.Failures)))

	stop()
	pools.Close()
	redisClients.Close()
	_ = logger.L.Sync()

	if len(result.Failures) > 0 {
		os.Exit(1)
	}
}
