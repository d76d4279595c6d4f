package forecast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const forecastKeyPrefix = "forecast:"

// Cache keeps the full forecast payload for a short period so dashboard
// polling does not recompute every regression. Cache failures only cost a
// recompute; they are logged and otherwise ignored.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func cacheKey(windowDays int) string {
	return fmt.Sprintf("%s%d", forecastKeyPrefix, windowDays)
}

func (c *Cache) Get(ctx context.Context, windowDays int) ([]ItemForecast, bool) {
	raw, err := c.client.Get(ctx, cacheKey(windowDays)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("forecast cache: get failed: %v", err)
		}
		return nil, false
	}

	var out []ItemForecast
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Printf("forecast cache: bad payload, ignoring: %v", err)
		return nil, false
	}
	return out, true
}

func (c *Cache) Set(ctx context.Context, windowDays int, forecasts []ItemForecast) {
	raw, err := json.Marshal(forecasts)
	if err != nil {
		log.Printf("forecast cache: marshal failed: %v", err)
		return
	}
	if err := c.client.Set(ctx, cacheKey(windowDays), raw, c.ttl).Err(); err != nil {
		log.Printf("forecast cache: set failed: %v", err)
	}
}
