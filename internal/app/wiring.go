package app

import (
	"context"
	"fmt"

	"toolrental-charges/internal/config"
	"toolrental-charges/internal/domain"
	"toolrental-charges/internal/logger"
	"toolrental-charges/internal/repository"
	"toolrental-charges/internal/repository/memory"
	"toolrental-charges/internal/repository/postgres"
	"toolrental-charges/internal/repository/redis"
	"toolrental-charges/internal/service"
)

// LoadPolicies returns the rate table selected by the catalog source
func LoadPolicies(ctx context.Context, cfg *config.Config) ([]domain.ToolRatePolicy, error) {
	switch cfg.Catalog.Source {
	case config.CatalogSourceBuiltin, "":
		return memory.DefaultPolicies(), nil
	case config.CatalogSourceConfig:
		return cfg.Catalog.Policies()
	case config.CatalogSourcePostgres:
		db, err := postgres.Open(ctx, cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return postgres.LoadPolicies(ctx, db, cfg.Catalog.Table)
	default:
		return nil, fmt.Errorf("unknown catalog source: %q", cfg.Catalog.Source)
	}
}

// NewCatalog builds the read-only catalog once; it is shared by every request
func NewCatalog(ctx context.Context, cfg *config.Config) (repository.CatalogRepository, error) {
	policies, err := LoadPolicies(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load rate policies: %w", err)
	}
	catalog, err := memory.NewCatalog(policies)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog: %w", err)
	}
	logger.Info("Rate catalog loaded", "source", cfg.Catalog.Source, "tools", len(policies))
	return catalog, nil
}

// NewCache returns nil when caching is disabled. The close func is never nil.
func NewCache(ctx context.Context, cfg *config.Config) (repository.CacheRepository, func(), error) {
	if cfg.Cache.Type != config.CacheTypeRedis {
		return nil, func() {}, nil
	}
	cache := redis.NewCache(cfg.Cache.Addr, cfg.Cache.Prefix)
	if err := cache.Ping(ctx); err != nil {
		cache.Close()
		return nil, func() {}, fmt.Errorf("failed to reach redis at %s: %w", cfg.Cache.Addr, err)
	}
	logger.Info("Charge-day cache enabled", "addr", cfg.Cache.Addr, "ttl", cfg.CacheTTL())
	return cache, func() { cache.Close() }, nil
}

// NewAgreementService wires catalog and cache into the charge engine
func NewAgreementService(ctx context.Context, cfg *config.Config) (service.AgreementService, func(), error) {
	catalog, err := NewCatalog(ctx, cfg)
	if err != nil {
		return nil, func() {}, err
	}
	cache, closeCache, err := NewCache(ctx, cfg)
	if err != nil {
		return nil, func() {}, err
	}
	return service.NewAgreementService(catalog, cache, cfg.CacheTTL()), closeCache, nil
}
