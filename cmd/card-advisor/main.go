// cmd/card-advisor/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"card-advisor/internal/ai"
	"card-advisor/internal/ai/gemini"
	"card-advisor/internal/catalog"
	"card-advisor/internal/common/config"
	"card-advisor/internal/common/database"
	"card-advisor/internal/common/logger"
	"card-advisor/internal/httpapi"
	"card-advisor/internal/recommend"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting card-advisor",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	ctx := context.Background()

	// --- Catalog ---
	var store catalog.Store
	switch cfg.Catalog.Source {
	case "postgres":
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		store = catalog.NewPostgresStore(pg.DB, cfg.Catalog.Table)
	default:
		store = catalog.NewFileStore(cfg.Catalog.Path)
	}

	cat, err := catalog.Open(ctx, store)
	if err != nil {
		zapLog.Fatal("catalog load failed", zap.Error(err))
	}
	zapLog.Info("catalog loaded", zap.Int("cards", cat.Len()))

	// --- Optional structuring cache ---
	var structuringCache *ai.StructuringCache
	if cfg.Database.Redis.Enabled {
		var rdb *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			rdb, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return rdb.Ping(ctx)
		}, 5, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer rdb.Close()
		structuringCache = ai.NewStructuringCache(
			rdb.GetClient(), config.GetDuration(cfg.Database.Redis.CacheTTL), log)
		zapLog.Info("structuring cache enabled", zap.String("address", cfg.Database.Redis.Address))
	}

	// --- Text-generation services ---
	generator, err := gemini.NewGenerator(ctx, cfg.GenAI.APIKey, cfg.GenAI.Model, cfg.GenAI.Temperature)
	if err != nil {
		zapLog.Fatal("genai client failed", zap.Error(err))
	}
	zapLog.Info("genai client ready", zap.String("model", generator.Model()))

	llmTimeout := config.GetDuration(cfg.GenAI.Timeout)
	structurer := ai.NewStructurer(generator, structuringCache, llmTimeout, log)
	explainer := ai.NewExplainer(generator, llmTimeout, log)

	recommender := recommend.New(cat, explainer, recommend.ScoringOptions{
		FeePenaltyEnabled: cfg.Scoring.FeePenaltyEnabled,
		TopK:              cfg.Scoring.TopK,
	}, log)

	// --- HTTP server ---
	handler := httpapi.NewHandler(structurer, recommender, log)

	var limiter *httpapi.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = httpapi.NewRateLimiter(cfg.RateLimit.Capacity, config.GetDuration(cfg.RateLimit.RefillMs))
		defer limiter.Stop()
	}

	mux := httpapi.NewServeMux(handler, limiter, log)
	server := httpapi.NewHTTPServer(cfg.Server, mux)

	serverErr := make(chan error, 1)
	go func() {
		zapLog.Info("http server listening", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		zapLog.Error("server error", zap.Error(err))
		return
	case sig := <-quit:
		zapLog.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("shutdown error", zap.Error(err))
	}

	zapLog.Info("server exited")
}
