// cmd/frontdesk/main.go
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

	"go.uber.org/zap"

	"listing-frontdesk/internal/api"
	"listing-frontdesk/internal/cache"
	"listing-frontdesk/internal/common/config"
	"listing-frontdesk/internal/common/database"
	httpclient "listing-frontdesk/internal/common/http"
	"listing-frontdesk/internal/common/logger"
	"listing-frontdesk/internal/common/observability"
	"listing-frontdesk/internal/server"
	"listing-frontdesk/internal/session"
	"listing-frontdesk/internal/uploader"
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
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting listing front desk...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New("frontdesk")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Redis for the location cache (optional) ---
	var redis *database.RedisClient
	if cfg.Database.Redis.Address != "" {
		err = retryWithBackoff(func() error {
			var err error
			redis, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			// Test the connection with context
			return redis.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Warn("redis unavailable, serving dropdowns uncached", zap.Error(err))
			redis = nil
		} else {
			defer redis.Close()
			zapLog.Info("Redis connected successfully")
		}
	} else {
		zapLog.Info("Redis not configured, location caching disabled")
	}

	// --- Init Upstream API Clients ---
	apiCfg := api.Config{BaseURL: cfg.Upstream.BaseURL}
	apiHTTP := httpclient.NewClient(config.GetDuration(cfg.Upstream.Timeout))
	submitHTTP := httpclient.NewClient(config.GetDuration(cfg.Upstream.SubmitTimeout))

	dropdowns := api.NewDropdownClient(apiCfg, apiHTTP, log)
	authClient := api.NewAuthClient(apiCfg, apiHTTP, log)
	mediaClient := api.NewMediaClient(apiCfg, submitHTTP, log)
	listings := api.NewListingClient(apiCfg, apiHTTP, submitHTTP, log)

	zapLog.Info("All upstream API clients initialized")

	locations := cache.NewLocationCache(dropdowns, redis, cfg.Locations.CacheTTLDuration(), log)

	imageUploader := uploader.New(mediaClient, uploader.Config{
		MaxConcurrent: cfg.Uploader.MaxConcurrent,
		MaxImageBytes: cfg.Uploader.MaxImageBytes,
		MaxImages:     cfg.Uploader.MaxImages,
		MaxRetries:    cfg.Uploader.MaxRetries,
	}, log)

	sessions := session.NewManager(cfg.Session.Secret, time.Duration(cfg.Session.TTL)*time.Minute)

	srv := server.New(cfg.Server, server.Dependencies{
		Locations: locations,
		Auth:      authClient,
		Listings:  listings,
		Uploader:  imageUploader,
		Sessions:  sessions,
	}, log)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}

	zapLog.Info("Front desk stopped gracefully")
}
