package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/shampooches/salon-scheduler/internal/config"
	domain "github.com/shampooches/salon-scheduler/internal/domain/booking"
)

// AvailabilityCache keeps availability query results in redis for a short
// TTL. It is strictly best effort: a nil client, a miss, or any redis error
// all mean "compute from the database". Staleness is fine on the read path
// because the booking transaction re-validates under lock.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAvailabilityCache(cfg *config.Config) *AvailabilityCache {
	if cfg.RedisAddr == "" {
		return &AvailabilityCache{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	return &AvailabilityCache{
		client: client,
		ttl:    60 * time.Second,
	}
}

func key(groomerID uint, date time.Time, serviceID uint) string {
	// groomerID 0 means "any groomer"
	return fmt.Sprintf("availability:%d:%s:%d", groomerID, date.Format("2006-01-02"), serviceID)
}

func (c *AvailabilityCache) Get(
	ctx context.Context,
	groomerID uint,
	date time.Time,
	serviceID uint,
) ([]domain.GroomerWindow, bool) {

	if c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, key(groomerID, date, serviceID)).Bytes()
	if err != nil {
		return nil, false
	}

	var windows []domain.GroomerWindow
	if err := json.Unmarshal(raw, &windows); err != nil {
		return nil, false
	}
	return windows, true
}

func (c *AvailabilityCache) Set(
	ctx context.Context,
	groomerID uint,
	date time.Time,
	serviceID uint,
	windows []domain.GroomerWindow,
) {
	if c.client == nil {
		return
	}

	raw, err := json.Marshal(windows)
	if err != nil {
		return
	}
	c.client.Set(ctx, key(groomerID, date, serviceID), raw, c.ttl)
}

// InvalidateDay drops every cached availability entry touching a groomer's
// date after a booking or slot change.
func (c *AvailabilityCache) InvalidateDay(ctx context.Context, groomerID uint, date time.Time) {
	if c.client == nil {
		return
	}

	patterns := []string{
		fmt.Sprintf("availability:%d:%s:*", groomerID, date.Format("2006-01-02")),
		fmt.Sprintf("availability:0:%s:*", date.Format("2006-01-02")),
	}

	for _, pattern := range patterns {
		iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
		for iter.Next(ctx) {
			c.client.Del(ctx, iter.Val())
		}
	}
}
