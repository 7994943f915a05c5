package repository

import (
	"context"
	"errors"
	"time"

	"toolrental-charges/internal/domain"
)

var ErrToolNotFound = errors.New("tool not found")

// ErrCacheMiss is returned by CacheRepository.Get when no entry exists
var ErrCacheMiss = errors.New("cache miss")

type CatalogRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.ToolRatePolicy, error)
	List(ctx context.Context) ([]domain.ToolRatePolicy, error)
}

type CacheRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}
