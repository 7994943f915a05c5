package service

import (
	"context"
	"time"

	"toolrental-charges/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockCatalogRepo
type MockCatalogRepo struct {
	mock.Mock
}

func (m *MockCatalogRepo) GetByCode(ctx context.Context, code string) (*domain.ToolRatePolicy, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ToolRatePolicy), args.Error(1)
}

func (m *MockCatalogRepo) List(ctx context.Context) ([]domain.ToolRatePolicy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ToolRatePolicy), args.Error(1)
}

// MockCache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}
