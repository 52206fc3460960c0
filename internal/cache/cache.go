package cache

import (
	"context"
	"time"

	"github.com/rezainiet/inventory-backend/internal/domain"
)

// SalesCache keeps computed sales summaries warm between dashboard polls.
type SalesCache interface {
	Get(ctx context.Context, key string) (*domain.SalesSummary, bool, error)
	Set(ctx context.Context, key string, value *domain.SalesSummary, ttl time.Duration) error
}

// NoopSalesCache is used when redis is not configured; every read misses.
type NoopSalesCache struct{}

func (NoopSalesCache) Get(_ context.Context, _ string) (*domain.SalesSummary, bool, error) {
	return nil, false, nil
}

func (NoopSalesCache) Set(_ context.Context, _ string, _ *domain.SalesSummary, _ time.Duration) error {
	return nil
}
