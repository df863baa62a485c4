package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/pizza-nz/ordering-service/internal/models"
	"github.com/pizza-nz/ordering-service/internal/redis"
)

// StatisticsStore aggregates order figures per time bucket. Implemented by
// repository.StatisticsRepository.
type StatisticsStore interface {
	Get(ctx context.Context, businessID uuid.UUID, start, end time.Time, interval models.StatisticsInterval) ([]models.StatisticsPeriod, error)
}

// StatisticsCache is the read-through cache for aggregated statistics.
// Implemented by the redis client.
type StatisticsCache interface {
	GetCache(ctx context.Context, key string, dest interface{}) error
	SetCache(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// StatisticsService serves cached per-business order statistics
type StatisticsService struct {
	store StatisticsStore
	cache StatisticsCache
	ttl   time.Duration
}

// NewStatisticsService creates a new statistics service. cache may be nil to
// disable caching.
func NewStatisticsService(store StatisticsStore, cache StatisticsCache, ttl time.Duration) *StatisticsService {
	return &StatisticsService{
		store: store,
		cache: cache,
		ttl:   ttl,
	}
}

// cacheKey names the cache entry for one statistics query
func cacheKey(businessID uuid.UUID, f models.StatisticsFilter) string {
	return fmt.Sprintf("statistics:%s:start=%s:end=%s:interval=%s",
		businessID,
		f.StartDate.Format("2006-01-02"),
		f.EndDate.Format("2006-01-02"),
		f.Interval,
	)
}

// Get returns aggregated statistics for a business over the filter range,
// served from cache when possible.
func (s *StatisticsService) Get(ctx context.Context, businessID uuid.UUID, f models.StatisticsFilter) (*models.Statistics, error) {
	if !f.Interval.Valid() {
		return nil, fmt.Errorf("%w: unknown interval %q", models.ErrInvalidRequest, f.Interval)
	}
	if f.EndDate.Before(f.StartDate) {
		return nil, fmt.Errorf("%w: end date precedes start date", models.ErrInvalidRequest)
	}

	key := cacheKey(businessID, f)

	if s.cache != nil {
		var cached models.Statistics
		err := s.cache.GetCache(ctx, key, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, redis.ErrCacheMiss) {
			log.Printf("Statistics cache read failed: %v", err)
		}
	}

	start := f.StartDate.Truncate(24 * time.Hour)
	end := f.EndDate.Truncate(24 * time.Hour).Add(24*time.Hour - time.Nanosecond)

	periods, err := s.store.Get(ctx, businessID, start, end, f.Interval)
	if err != nil {
		return nil, err
	}

	stats := &models.Statistics{
		DateMin:  f.StartDate.Format("2006-01-02"),
		DateMax:  f.EndDate.Format("2006-01-02"),
		Interval: f.Interval,
		Totals:   aggregateTotals(periods),
		Periods:  periods,
	}

	if s.cache != nil {
		if err := s.cache.SetCache(ctx, key, stats, s.ttl); err != nil {
			log.Printf("Statistics cache write failed: %v", err)
		}
	}

	return stats, nil
}

// aggregateTotals sums period counts and weights averages by order count
func aggregateTotals(periods []models.StatisticsPeriod) models.StatisticsTotals {
	totals := models.StatisticsTotals{}
	var priceSum, timeSum float64

	for _, p := range periods {
		totals.OrdersCount += p.OrdersCount
		totals.NewClientsCount += p.NewClientsCount
		priceSum += p.AvgOrderPrice * float64(p.OrdersCount)
		timeSum += p.AvgOrderTime * float64(p.OrdersCount)
	}

	if totals.OrdersCount > 0 {
		totals.AvgOrderPrice = priceSum / float64(totals.OrdersCount)
		totals.AvgOrderTime = timeSum / float64(totals.OrdersCount)
	}

	return totals
}
