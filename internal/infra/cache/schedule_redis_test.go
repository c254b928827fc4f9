package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/nail-salon/internal/domain/schedule"
	"github.com/BruksfildServices01/nail-salon/internal/infra/cache"
)

func TestScheduleRedisCacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	c := cache.NewScheduleRedisCache(cache.NewRedisClient(mr.Addr(), "", 0), time.Hour)
	ctx := context.Background()

	_, ok := c.GetDays(ctx)
	assert.False(t, ok)

	ys := schedule.New()
	ys.GenerateDefault(2025)
	require.NoError(t, ys.UpdateDayStatus("2025-01-01", false))
	require.NoError(t, c.SetDays(ctx, ys.Days()))

	days, ok := c.GetDays(ctx)
	require.True(t, ok)
	assert.Len(t, days, 365)
	assert.False(t, days[0].IsOpen)
	assert.Equal(t, "2025-01-01", days[0].Date)

	mr.FastForward(2 * time.Hour)
	_, ok = c.GetDays(ctx)
	assert.False(t, ok)
}

func TestScheduleRedisCacheUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	c := cache.NewScheduleRedisCache(cache.NewRedisClient(mr.Addr(), "", 0), 0)
	mr.Close()

	_, ok := c.GetDays(context.Background())
	assert.False(t, ok)
	assert.Error(t, c.SetDays(context.Background(), nil))
}

func TestNilScheduleCache(t *testing.T) {
	var c *cache.ScheduleRedisCache
	_, ok := c.GetDays(context.Background())
	assert.False(t, ok)
	assert.NoError(t, c.SetDays(context.Background(), nil))
}
