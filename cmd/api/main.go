package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/archcoach-backend/config"
	"github.com/GoSim-25-26J-441/archcoach-backend/internal/bootstrap"
	"github.com/GoSim-25-26J-441/archcoach-backend/internal/chat"
	"github.com/GoSim-25-26J-441/archcoach-backend/internal/llm"
	"github.com/GoSim-25-26J-441/archcoach-backend/internal/logging"
)

const serviceName = "archcoach-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.App.LogLevel, cfg.App.Environment)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped with error", zap.String("error", logging.SanitizeError(err)))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bootstrap.SetGinMode(cfg.App.Environment)

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{
		DSN:      cfg.Database.URL,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return err
	}
	defer pool.Close()
	logger.Info("database ready", zap.String("dsn", logging.SanitizeConnectionString(cfg.Database.URL)))

	rdb, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Warn("redis unavailable, share links will fail until it recovers",
			zap.String("addr", cfg.Redis.Addr), zap.String("error", logging.SanitizeError(err)))
	}
	defer func() { _ = rdb.Close() }()

	ai, err := llm.New(cfg.LLMConfig(), logger)
	if err != nil {
		return err
	}

	catalog, err := chat.LoadCatalog(cfg.App.ScenariosFile)
	if err != nil {
		return err
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:  serviceName,
		Version:      cfg.App.Version,
		AllowOrigins: cfg.Server.AllowOrigins,
		ShareBaseURL: cfg.Share.BaseURL,
		ShareTTL:     cfg.Share.TTL,
		DB:           pool,
		Redis:        rdb,
		AI:           ai,
		AIMetrics:    ai.Metrics,
		Catalog:      catalog,
		Logger:       logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.App.Environment),
			zap.String("ai_provider", cfg.AI.Provider),
			zap.Int("scenarios", len(catalog.List())))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
