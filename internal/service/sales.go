package service

import (
	"context"
	"log"
	"time"

	"github.com/rezainiet/inventory-backend/internal/domain"
)

const (
	trendingWindowDays = 30
	rankedSalesLimit   = 5
)

// salesSummary aggregates orders inside the window. Profit is computed from
// the line-item price snapshot against each product's production cost; items
// whose product is gone or has no recorded cost contribute no profit.
func (s *Service) salesSummary(ctx context.Context, cacheKey string, from time.Time, to time.Time) (domain.SalesSummary, error) {
	if cached, ok, err := s.salesCache.Get(ctx, cacheKey); err == nil && ok {
		return *cached, nil
	} else if err != nil {
		log.Printf("[service] WARN: sales cache read failed for %s: %v", cacheKey, err)
	}

	orders, err := s.repo.ListOrdersBetween(ctx, from, to)
	if err != nil {
		return domain.SalesSummary{}, err
	}

	idSet := make(map[string]struct{})
	for _, o := range orders {
		for _, item := range o.Products {
			idSet[item.ProductID] = struct{}{}
		}
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	products, err := s.repo.GetProductsByIDs(ctx, ids)
	if err != nil {
		return domain.SalesSummary{}, err
	}

	summary := domain.SalesSummary{Sales: orders}
	for _, o := range orders {
		summary.TotalSales += o.FinalAmount
		for _, item := range o.Products {
			product, ok := products[item.ProductID]
			if !ok || product.ProductionCost == nil {
				continue
			}
			summary.TotalProfit += (item.Price - *product.ProductionCost) * float64(item.Quantity)
		}
	}

	if err := s.salesCache.Set(ctx, cacheKey, &summary, s.cacheTTL); err != nil {
		log.Printf("[service] WARN: sales cache write failed for %s: %v", cacheKey, err)
	}
	return summary, nil
}

func (s *Service) TodaySales(ctx context.Context) (domain.SalesSummary, error) {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return s.salesSummary(ctx, "sales:today", start, start.Add(24*time.Hour))
}

func (s *Service) Last7DaysSales(ctx context.Context) (domain.SalesSummary, error) {
	now := time.Now().UTC()
	return s.salesSummary(ctx, "sales:last7days", now.AddDate(0, 0, -7), now)
}

func (s *Service) LastMonthSales(ctx context.Context) (domain.SalesSummary, error) {
	now := time.Now().UTC()
	return s.salesSummary(ctx, "sales:lastmonth", now.AddDate(0, -1, 0), now)
}

func (s *Service) TotalSales(ctx context.Context) (domain.SalesSummary, error) {
	return s.salesSummary(ctx, "sales:total", time.Time{}, time.Time{})
}

func (s *Service) TrendingProducts(ctx context.Context) ([]domain.ProductSales, error) {
	since := time.Now().UTC().AddDate(0, 0, -trendingWindowDays)
	return s.repo.TrendingProducts(ctx, since, rankedSalesLimit)
}

func (s *Service) TopSellingProducts(ctx context.Context) ([]domain.ProductSales, error) {
	return s.repo.TopSellingProducts(ctx, rankedSalesLimit)
}
