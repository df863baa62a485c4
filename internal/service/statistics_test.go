package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pizza-nz/ordering-service/internal/models"
	"github.com/pizza-nz/ordering-service/internal/redis"
)

type fakeStatisticsStore struct {
	periods []models.StatisticsPeriod
	calls   int
}

func (f *fakeStatisticsStore) Get(ctx context.Context, businessID uuid.UUID, start, end time.Time, interval models.StatisticsInterval) ([]models.StatisticsPeriod, error) {
	f.calls++
	return f.periods, nil
}

type fakeStatisticsCache struct {
	entries map[string][]byte
	sets    int
}

func newFakeStatisticsCache() *fakeStatisticsCache {
	return &fakeStatisticsCache{entries: make(map[string][]byte)}
}

func (f *fakeStatisticsCache) GetCache(ctx context.Context, key string, dest interface{}) error {
	data, ok := f.entries[key]
	if !ok {
		return redis.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (f *fakeStatisticsCache) SetCache(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.entries[key] = data
	f.sets++
	return nil
}

func statisticsFilter() models.StatisticsFilter {
	return models.StatisticsFilter{
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		Interval:  models.IntervalDaily,
	}
}

func TestStatisticsGet(t *testing.T) {
	store := &fakeStatisticsStore{periods: []models.StatisticsPeriod{
		{Period: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), OrdersCount: 4, NewClientsCount: 2, AvgOrderPrice: 10, AvgOrderTime: 100},
		{Period: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), OrdersCount: 1, NewClientsCount: 0, AvgOrderPrice: 20, AvgOrderTime: 200},
	}}
	svc := NewStatisticsService(store, newFakeStatisticsCache(), time.Minute)

	stats, err := svc.Get(context.Background(), uuid.New(), statisticsFilter())
	require.NoError(t, err)

	assert.Equal(t, "2025-01-01", stats.DateMin)
	assert.Equal(t, "2025-01-31", stats.DateMax)
	assert.Equal(t, models.IntervalDaily, stats.Interval)
	require.Len(t, stats.Periods, 2)

	// Totals weight averages by order count
	assert.Equal(t, 5, stats.Totals.OrdersCount)
	assert.Equal(t, 2, stats.Totals.NewClientsCount)
	assert.InDelta(t, 12.0, stats.Totals.AvgOrderPrice, 0.001)
	assert.InDelta(t, 120.0, stats.Totals.AvgOrderTime, 0.001)
}

func TestStatisticsCached(t *testing.T) {
	store := &fakeStatisticsStore{periods: []models.StatisticsPeriod{
		{Period: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), OrdersCount: 1, AvgOrderPrice: 10},
	}}
	cache := newFakeStatisticsCache()
	svc := NewStatisticsService(store, cache, time.Minute)
	businessID := uuid.New()

	first, err := svc.Get(context.Background(), businessID, statisticsFilter())
	require.NoError(t, err)
	assert.Equal(t, 1, store.calls)
	assert.Equal(t, 1, cache.sets)

	// A second identical query is served from cache
	second, err := svc.Get(context.Background(), businessID, statisticsFilter())
	require.NoError(t, err)
	assert.Equal(t, 1, store.calls)
	assert.Equal(t, first.Totals, second.Totals)

	// A different business misses the cache
	_, err = svc.Get(context.Background(), uuid.New(), statisticsFilter())
	require.NoError(t, err)
	assert.Equal(t, 2, store.calls)
}

func TestStatisticsNilCache(t *testing.T) {
	store := &fakeStatisticsStore{}
	svc := NewStatisticsService(store, nil, time.Minute)

	_, err := svc.Get(context.Background(), uuid.New(), statisticsFilter())
	require.NoError(t, err)
	assert.Equal(t, 1, store.calls)
}

func TestStatisticsValidation(t *testing.T) {
	svc := NewStatisticsService(&fakeStatisticsStore{}, nil, time.Minute)
	ctx := context.Background()

	f := statisticsFilter()
	f.Interval = "hourly"
	_, err := svc.Get(ctx, uuid.New(), f)
	assert.ErrorIs(t, err, models.ErrInvalidRequest)

	f = statisticsFilter()
	f.StartDate, f.EndDate = f.EndDate, f.StartDate
	_, err = svc.Get(ctx, uuid.New(), f)
	assert.ErrorIs(t, err, models.ErrInvalidRequest)
}
