package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go-gin-event-hub/config"
	"go-gin-event-hub/internal/cache"
	"go-gin-event-hub/internal/database"
	"go-gin-event-hub/internal/handler"
	"go-gin-event-hub/internal/normalize"
	"go-gin-event-hub/internal/repository"
	"go-gin-event-hub/internal/service"
	"go-gin-event-hub/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	log := logger.WithComponent("server")
	defer func() { _ = logger.L.Sync() }()

	// 設定錯誤時直接終止，不進入服務狀態
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", zap.Error(err))
	}

	pools, err := database.NewPoolCache(&cfg.Database)
	if err != nil {
		log.Fatal("Invalid database configuration", zap.Error(err))
	}
	defer pools.Close()

	redisClients := database.NewRedisCache(&cfg.Redis)
	defer redisClients.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// schema 需要在接受請求前就緒；連線本身仍由 PoolCache 管理
	pool, err := pools.Acquire(ctx)
	if err != nil {
		log.Fatal("Failed to connect database", zap.Error(err))
	}
	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}

	eventRepo := repository.NewEventRepository(pools)
	eventCache := cache.NewRedisEventCache(redisClients, cfg.Redis.CacheTTL)
	eventService := service.NewEventService(eventRepo, eventCache, normalize.NewPipeline())

	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/ping", handler.Ping)
	handler.NewEventHandler(eventService).RegisterRoutes(router)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}
}
