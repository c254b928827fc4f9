package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/nail-salon/internal/domain/schedule"
)

const scheduleKey = "salon:schedule:days"

// ScheduleRedisCache keeps the last loaded or committed calendar so reads
// survive a database outage.
type ScheduleRedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewScheduleRedisCache(client *redis.Client, ttl time.Duration) *ScheduleRedisCache {
	return &ScheduleRedisCache{client: client, ttl: ttl}
}

func (c *ScheduleRedisCache) GetDays(ctx context.Context) ([]schedule.DaySchedule, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	val, err := c.client.Get(ctx, scheduleKey).Bytes()
	if err != nil {
		return nil, false
	}

	var days []schedule.DaySchedule
	if err := json.Unmarshal(val, &days); err != nil {
		return nil, false
	}
	return days, true
}

func (c *ScheduleRedisCache) SetDays(ctx context.Context, days []schedule.DaySchedule) error {
	if c == nil || c.client == nil {
		return nil
	}
	data, err := json.Marshal(days)
	if err != nil {
		return err
	}
	// ttl 0 keeps the key until it is overwritten
	return c.client.Set(ctx, scheduleKey, data, c.ttl).Err()
}
