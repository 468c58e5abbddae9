package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"oil-dashboard/internal/api"
	"oil-dashboard/internal/cache"
	"oil-dashboard/internal/config"
	"oil-dashboard/internal/dashboard"
	"oil-dashboard/internal/jobs"
	"oil-dashboard/internal/kafka"
	"oil-dashboard/internal/logging"
	"oil-dashboard/internal/metrics"
	"oil-dashboard/internal/store"
)

func main() {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	cfg := config.Load()

	level := slog.LevelInfo
	if os.Getenv("DEBUG_MODE") == "1" {
		level = slog.LevelDebug
	}
	logger := logging.NewLogger(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("oil-dashboard starting")

	// Snapshot store. The service cannot answer anything without it, so a
	// failed bootstrap is fatal.
	mongoStore, err := store.NewMongoStore(ctx, cfg.Mongo.URI, cfg.Mongo.PredictURI,
		cfg.Mongo.SnapshotDB, cfg.Mongo.PredictDB, logger)
	if err != nil {
		logger.Error("failed to connect to snapshot store", "err", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoStore.Close(shutdownCtx); err != nil {
			logger.Warn("error closing snapshot store", "err", err)
		}
	}()
	logger.Info("snapshot store connected", "db", cfg.Mongo.SnapshotDB)

	// Cache is advisory: disabled or unreachable means always-miss.
	var c cache.Cache
	var cacheHealth store.HealthChecker
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Warn("redis not available, running without cache", "err", err)
		} else {
			logger.Info("redis cache connected", "addr", cfg.Redis.Addr)
			c = redisCache
			cacheHealth = redisCache
			defer func() {
				if err := redisCache.Close(); err != nil {
					logger.Warn("error closing redis cache", "err", err)
				}
			}()
		}
	} else {
		logger.Info("redis disabled")
	}

	var producer *kafka.Producer
	if cfg.Kafka.Enabled {
		producer = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer func() {
			if err := producer.Close(); err != nil {
				logger.Warn("error closing kafka producer", "err", err)
			}
		}()
		logger.Info("kafka producer ready", "topic", cfg.Kafka.Topic)
	}

	computer := metrics.New(mongoStore, logger)
	svc := dashboard.NewService(computer, c, logger)

	if cfg.Refresh.Enabled && c != nil {
		refresher := jobs.NewRefresher(svc, producer, cfg.Refresh.Hour, logger)
		go refresher.Run(ctx)
	}

	handler := api.NewHandler(svc, mongoStore, cacheHealth, cfg.Server.RequestTimeout, logger)
	router := api.SetupRoutes(handler)

	addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.Server.RequestTimeout + 5*time.Second,
	}

	go func() {
		logger.Info("http server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http server shutdown", "err", err)
	}
	logger.Info("oil-dashboard stopped")
}
