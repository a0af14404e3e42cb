package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/travex/travex/internal/amadeus"
	"github.com/travex/travex/internal/api"
	"github.com/travex/travex/internal/cache"
	"github.com/travex/travex/internal/config"
	"github.com/travex/travex/internal/itinerary"
	"github.com/travex/travex/internal/weather"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := run(log); err != nil {
		log.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg := config.Load()
	ctx := context.Background()

	// Missing provider credentials degrade features instead of failing
	// startup; the health endpoint reports what is available.
	if !cfg.TravelEnabled() {
		log.Warn("amadeus credentials not configured: destination, flight and hotel search are disabled")
	}
	if !cfg.WeatherEnabled() {
		log.Warn("openweathermap key not configured: weather is disabled")
	}

	// The search cache is optional: no Redis URL (or an unreachable Redis)
	// means searches always go to the provider.
	var (
		searchCache api.SearchCache = cache.Noop{}
		redisClient *redis.Client
	)
	if cfg.RedisURL != "" {
		client, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			log.Warn("redis unavailable, search cache disabled", "err", err)
		} else {
			redisClient = client
			searchCache = cache.New(client)
			defer func() { _ = client.Close() }()
		}
	}

	// Wire dependencies.
	tokens := amadeus.NewTokenSource(cfg.AmadeusBaseURL, cfg.AmadeusAPIKey, cfg.AmadeusAPISecret)
	travel := amadeus.NewClient(cfg.AmadeusBaseURL, tokens)
	weatherClient := weather.NewClient(cfg.WeatherBaseURL, cfg.WeatherAPIKey)
	store := itinerary.NewStore()
	handoff := itinerary.NewHandoff()

	handlers := api.NewHandlers(travel, weatherClient, searchCache, store, handoff, log)

	var cachePinger api.Pinger
	if redisClient != nil {
		cachePinger = &redisPingerAdapter{client: redisClient}
	}
	features := api.Features{Travel: cfg.TravelEnabled(), Weather: cfg.WeatherEnabled()}

	router := api.NewRouter(handlers, cfg.APIToken, cachePinger, features, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("server goroutine panicked", "recover", r)
				errCh <- fmt.Errorf("server panicked: %v", r)
			}
		}()
		log.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("listening: %w", err)
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	log.Info("server shut down cleanly")
	return nil
}

// redisPingerAdapter adapts redis.Client to the api.Pinger interface.
type redisPingerAdapter struct {
	client *redis.Client
}

func (r *redisPingerAdapter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
