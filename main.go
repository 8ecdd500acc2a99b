package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"fbauer/flatwatcher/config"
	"fbauer/flatwatcher/internal/extract"
	"fbauer/flatwatcher/internal/fetch"
	"fbauer/flatwatcher/internal/notify"
	"fbauer/flatwatcher/internal/state"
	"fbauer/flatwatcher/internal/watcher"
	"fbauer/flatwatcher/logger"
	"fbauer/flatwatcher/services/cache"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Str("target_url", cfg.TargetURL).
		Str("notify_method", cfg.NotifyMethod).
		Dur("poll_interval", cfg.PollInterval).
		Msg("Starting application")

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	w, cleanup, err := buildWatcher(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}
	defer cleanup()

	// Run the watch loop in a goroutine
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	// Wait for shutdown signal or loop exit
	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
		<-done
	case <-done:
	}

	log.Info().Msg("Shutting down gracefully...")
}

// buildWatcher wires the configured store, cache, fetcher, extractor and
// notifier into a watcher.
func buildWatcher(ctx context.Context, cfg config.Config) (*watcher.Watcher, func(), error) {
	log := logger.Default
	cleanup := func() {}

	baseURL, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, cleanup, fmt.Errorf("failed to parse base URL: %w", err)
	}

	var store state.Store
	switch cfg.StateBackend {
	case config.BackendRedis:
		redisStore := state.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisDB)
		store = redisStore
		cleanup = func() { redisStore.Close() }
		log.Info().Str("addr", cfg.RedisAddr).Int("db", cfg.RedisDB).Msg("Using Redis state store")
	default:
		fileStore, err := state.NewFileStore(cfg.StateDir)
		if err != nil {
			return nil, cleanup, err
		}
		store = fileStore
		log.Info().Str("dir", cfg.StateDir).Msg("Using file state store")
	}

	var cacheSvc cache.CacheService
	if cfg.MemcacheAddr != "" {
		cacheSvc = cache.NewMemcacheService(cfg.MemcacheAddr, "flatwatcher:")
		log.Info().Str("addr", cfg.MemcacheAddr).Msg("Connected to Memcache")
	}

	heuristic, err := extract.NewHeuristicStrategy(cfg.FallbackKeywords)
	if err != nil {
		return nil, cleanup, err
	}

	extractor := extract.New(
		logger.ForComponent("extractor"),
		extract.NewStructuralStrategy(extract.DefaultStructuralConfig()),
		heuristic,
	)

	fetcher := fetch.New(cfg.TargetURL, cfg.UserAgent, cacheSvc, logger.ForComponent("fetcher"))
	notifier := notify.New(cfg, logger.ForComponent("notifier"))

	w := watcher.New(
		fetcher,
		extractor,
		store,
		notifier,
		baseURL,
		cfg.PollInterval,
		logger.ForComponent("watcher"),
	)

	return w, cleanup, nil
}
