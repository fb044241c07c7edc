// RxGuard API checks prescriptions for drug interactions, dosage problems
// and recalls. Reference tables ship in the binary; recall advisories are
// refreshed in the background from the openFDA enforcement registry.
package main

import (
	"context"
	"errors"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/rxguard/rxguard-api/analysis"
	"github.com/rxguard/rxguard-api/config"
	"github.com/rxguard/rxguard-api/data"
	"github.com/rxguard/rxguard-api/external"
	"github.com/rxguard/rxguard-api/handlers"
	"github.com/rxguard/rxguard-api/interfaces"
	"github.com/rxguard/rxguard-api/logging"
	"github.com/rxguard/rxguard-api/safety"
	"github.com/rxguard/rxguard-api/scheduler"
	"github.com/rxguard/rxguard-api/server"
	"github.com/rxguard/rxguard-api/validation"
)

func main() {
	// .env is optional; in production the environment is set by the host
	if err := godotenv.Load(); err != nil {
		logging.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Error("Configuration error", "error", err)
		os.Exit(1)
	}

	logging.InitLogger("logs")

	dataContainer := data.NewDataContainer()
	dataContainer.SetServerStartTime(time.Now())

	// External services. Both degrade to local behavior when not
	// configured: no Redis means an in-process cache, no OpenAI key means
	// deterministic summaries and no text fallback for safety checks.
	var cache external.Cache
	if cfg.RedisAddr != "" {
		redisCache := external.NewRedisCache(cfg.RedisAddr)
		pingCtx, cancel := context.WithTimeout(context.Background(), cfg.ExternalTimeout)
		if err := redisCache.Ping(pingCtx); err != nil {
			logging.Warn("Redis unavailable, using in-memory cache", "addr", cfg.RedisAddr, "error", err)
		} else {
			cache = redisCache
		}
		cancel()
	}

	registry := external.NewRecallClient(cfg.RecallAPIBase, cfg.ExternalTimeout, cache)

	var textClient interfaces.TextClient = external.NoopTextClient{}
	if cfg.OpenAIAPIKey != "" {
		textClient = external.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		logging.Info("Text generation enabled", "model", cfg.OpenAIModel)
	} else {
		logging.Info("No OpenAI key configured, using deterministic summaries")
	}

	checker := safety.NewChecker(dataContainer, registry, textClient, cfg.ExternalTimeout)
	analyzer := analysis.NewAnalyzer(dataContainer, checker, textClient, cfg.ExternalTimeout)
	handler := handlers.NewHTTPHandler(dataContainer, validation.NewValidator(), checker, analyzer, textClient, cfg.ExternalTimeout)

	recallScheduler := scheduler.NewScheduler(dataContainer, registry, cfg.RecallRefreshHours, 2*time.Minute)
	if err := recallScheduler.Start(); err != nil {
		logging.Error("Failed to start recall scheduler", "error", err)
		os.Exit(1)
	}
	defer recallScheduler.Stop()

	srv := server.NewServer(cfg, handler)

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Block until a signal is received
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Shutdown error", "error", err)
		os.Exit(1)
	}
}
