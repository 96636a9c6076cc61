package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fplcentral/recommender-api/internal/cache"
	"github.com/fplcentral/recommender-api/internal/config"
	"github.com/fplcentral/recommender-api/internal/fpl"
	"github.com/fplcentral/recommender-api/internal/handlers"
	"github.com/fplcentral/recommender-api/internal/logic"
)

func main() {
	cfg := config.Load()

	logger := newLogger(cfg.Env)
	defer logger.Sync()
	sugar := logger.Sugar()

	store, err := newStore(cfg)
	if err != nil {
		sugar.Fatalw("cache init failed", "error", err)
	}

	client := fpl.NewClient(fpl.Config{
		BaseURL:    cfg.FPLBaseURL,
		HTTPClient: &http.Client{Timeout: cfg.HTTPTimeout},
	})

	recommender := logic.NewRecommendService(client, store, sugar)

	h := handlers.New(handlers.Config{
		Logger:      logger,
		Recommender: recommender,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      h.Routes(cfg.AllowedOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		sugar.Infow("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	sugar.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("shutdown failed", "error", err)
	}
}

// newStore picks the cache backend: Redis when REDIS_URL is configured,
// otherwise the on-disk snapshot file.
func newStore(cfg *config.Config) (cache.Store, error) {
	if cfg.RedisURL == "" {
		return cache.NewFileStore(cfg.CacheDir, cfg.CacheTTL), nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	return cache.NewRedisStore(redis.NewClient(opts), cfg.CacheTTL), nil
}

func newLogger(env string) *zap.Logger {
	var logger *zap.Logger
	var err error
	if env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	return logger
}
