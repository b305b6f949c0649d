package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kolejki-fizjo/internal/config"
	httpapi "kolejki-fizjo/internal/http"
	applog "kolejki-fizjo/internal/logger"
	"kolejki-fizjo/internal/repository"
	"kolejki-fizjo/internal/service"
	"kolejki-fizjo/internal/store"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, err := applog.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	kv := store.NewRedisKV(redisClient)
	repo := repository.NewStateRepo(kv, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := service.NewApp(ctx, repo, logger)
	if err != nil {
		logger.Fatal("could not load application state", zap.Error(err))
	}
	defer app.Close()

	authStore, err := httpapi.NewAuthStore(ctx, repo)
	if err != nil {
		logger.Fatal("could not load accounts", zap.Error(err))
	}

	probe := service.NewCloudProbe(cfg.Cloud.URL, cfg.Cloud.AnonKey, logger)
	go probe.Check(ctx)

	router := httpapi.NewRouter(logger)
	router.RegisterImportRoutes(httpapi.NewImportHandler(app, logger))
	router.RegisterQueueRoutes(httpapi.NewQueueHandler(app, logger))
	router.RegisterPatientRoutes(httpapi.NewPatientHandler(app, logger))
	router.RegisterTourRoutes(httpapi.NewTourHandler(app, logger))
	router.RegisterSettingsRoutes(httpapi.NewSettingsHandler(app, logger))
	router.RegisterAuthRoutes(httpapi.NewAuthHandler(authStore, logger))
	router.RegisterStatusRoutes(httpapi.NewStatusHandler(probe, logger))

	srv := service.NewServer(cfg.HTTP.Addr, router, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		cancel()
	case err := <-errCh:
		logger.Error("HTTP server stopped", zap.Error(err))
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	_ = redisClient.Close()
}
