package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"rentalhub-storefront-api/internal/cache"
	"rentalhub-storefront-api/internal/config"
	"rentalhub-storefront-api/internal/handler"
	"rentalhub-storefront-api/internal/metrics"
	"rentalhub-storefront-api/internal/repository"
	"rentalhub-storefront-api/internal/router"
	"rentalhub-storefront-api/internal/seo"
	"rentalhub-storefront-api/internal/service"
	"rentalhub-storefront-api/internal/sitemap"
	"rentalhub-storefront-api/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/time/rate"
)

func main() {
	// Load configuration
	cfg := config.MustLoad()

	log := logger.New(logger.Config{
		Development: cfg.App.IsDevelopment(),
		Level:       cfg.App.EffectiveLogLevel(),
	})
	slog.SetDefault(log)
	log.Info("starting storefront api",
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("environment", cfg.App.Environment),
	)

	if !cfg.Inventory.Configured() {
		log.Warn("INVENTORY_API_KEY is not set; inventory requests will fail with 500")
	}

	// Metrics registry
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Read-through cache
	searchCache, cacheType := newCache(cfg, log)
	defer searchCache.Close()

	// Inventory client, throttled and cached
	limiter := rate.NewLimiter(rate.Limit(cfg.Inventory.RateLimit), max(cfg.Inventory.RateBurst, 1))
	index := repository.NewIndexInventoryRepository(repository.IndexConfig{
		BaseURL:             cfg.Inventory.BaseURL,
		APIKey:              cfg.Inventory.APIKey,
		Timeout:             cfg.Inventory.Timeout,
		DefaultLimit:        cfg.Inventory.DefaultLimit,
		CandidateMultiplier: cfg.Inventory.CandidateMultiplier,
		ImageBaseURL:        cfg.Images.BaseURL,
	}, limiter, m, log)
	inventoryRepo := repository.NewCachedInventoryRepository(index, searchCache, cfg.Cache.TTL, m, log)

	// Domain services
	area := cfg.ServiceArea.Area()
	inventoryService := service.NewInventoryService(inventoryRepo, area,
		cfg.Inventory.DefaultLimit*cfg.Inventory.CandidateMultiplier, log)

	resolver := seo.NewResolver(area, cfg.Site.Locales)
	metadata, err := seo.NewMetadataBuilder(cfg.Site.BaseURL, cfg.Site.Locales, area)
	if err != nil {
		log.Error("invalid site configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	generator := sitemap.NewGenerator(resolver.Suffix(), resolver.Locales())

	// Initialize handlers
	r := router.New(router.Config{
		Handler:          handler.New(cfg.App.Name, cfg.App.Version, cfg.Inventory.Configured(), searchCache),
		EquipmentHandler: handler.NewEquipmentHandler(inventoryService, log),
		PageHandler:      handler.NewPageHandler(resolver, metadata, inventoryService, m, log),
		SitemapHandler:   handler.NewSitemapHandler(generator, cfg.Site.BaseURL, log),
		AdminHandler:     handler.NewAdminHandler(searchCache, cacheType, limiter, area),
		Metrics:          m,
		Logger:           log,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorLog:     slog.NewLogLogger(log.Handler(), slog.LevelError),
	}

	// Start server in goroutine
	go func() {
		log.Info("server listening", slog.String("addr", cfg.Server.Address()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown error", slog.String("error", err.Error()))
	}

	log.Info("server stopped")
}

// newCache returns the configured cache, falling back to memory when Redis
// is unreachable at startup.
func newCache(cfg *config.Config, log *slog.Logger) (cache.Cache, string) {
	memory := func() (cache.Cache, string) {
		return cache.NewMemoryCache(cfg.Cache.TTL, 2*cfg.Cache.TTL), "memory"
	}

	if cfg.Cache.Type != "redis" {
		return memory()
	}

	redisCache, err := cache.NewRedisCache(cache.RedisCacheConfig{
		Addr:      cfg.Cache.RedisAddress(),
		Password:  cfg.Cache.RedisPassword,
		DB:        cfg.Cache.RedisDB,
		KeyPrefix: cfg.Cache.KeyPrefix,
	})
	if err != nil {
		log.Warn("redis unavailable, using in-memory cache", slog.String("error", err.Error()))
		return memory()
	}
	log.Info("redis cache initialized", slog.String("addr", cfg.Cache.RedisAddress()))
	return redisCache, "redis"
}
