// Package app assembles the catalog, cache and services from configuration.
package app

import (
	"context"
	"fmt"

	"github.com/rooted/backend/config"
	"github.com/rooted/backend/internal/domain"
	"github.com/rooted/backend/internal/infrastructure/cache"
	"github.com/rooted/backend/internal/infrastructure/catalog"
	"github.com/rooted/backend/internal/usecase"
	"go.uber.org/zap"
)

const redisKeyPrefix = "rooted:"

// App holds the wired application services
type App struct {
	Catalog   *catalog.Store
	Cache     domain.CacheRepository
	Assistant *usecase.AssistantService
	Farms     *usecase.CatalogService

	closers []func() error
}

// New loads the catalog and connects the cache selected by cfg
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	source, err := catalog.NewSource(cfg.Catalog.Source, cfg.Catalog.Path, cfg.Catalog.BaseURL, cfg.Catalog.Timeout, logger)
	if err != nil {
		return nil, err
	}

	store, err := catalog.Load(ctx, source)
	if err != nil {
		return nil, err
	}
	logger.Info("catalog loaded",
		zap.String("source", cfg.Catalog.Source),
		zap.Int("farms", store.Size()),
	)

	a := &App{Catalog: store}

	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(cfg.Cache.RedisURL, redisKeyPrefix)
		if err != nil {
			return nil, err
		}
		if err := redisCache.Ping(ctx); err != nil {
			redisCache.Close()
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		a.Cache = redisCache
		a.closers = append(a.closers, redisCache.Close)
	default:
		memoryCache := cache.NewMemoryCache(0)
		a.Cache = memoryCache
		a.closers = append(a.closers, memoryCache.Close)
	}
	logger.Info("cache ready", zap.String("type", cfg.Cache.Type), zap.Duration("ttl", cfg.Cache.TTL))

	a.Assistant = usecase.NewAssistantService(a.Cache, store, usecase.AssistantServiceConfig{
		CacheTTL:      cfg.Cache.TTL,
		ResponseDelay: cfg.Assistant.ResponseDelay,
		Currency:      cfg.Assistant.Currency,
		Vocabulary:    cfg.Assistant.Vocabulary,
	}, logger)
	a.Farms = usecase.NewCatalogService(store)

	return a, nil
}

// Close releases cache connections
func (a *App) Close() error {
	var firstErr error
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
