package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

const availabilityTTL = 60 * time.Second

// AvailabilityCache is a short-TTL read cache for availability grids. A nil
// cache is valid and disables caching, so callers never branch on it.
type AvailabilityCache struct {
	rdb *redis.Client
	log zerolog.Logger
}

func NewAvailabilityCache(addr string, logger zerolog.Logger) *AvailabilityCache {
	if addr == "" {
		return nil
	}
	return &AvailabilityCache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		log: logger,
	}
}

func Key(barberID uint, startDate, endDate string, slotMinutes int) string {
	return fmt.Sprintf("availability:%d:%s:%s:%d", barberID, startDate, endDate, slotMinutes)
}

func (c *AvailabilityCache) Get(ctx context.Context, key string, out any) bool {
	if c == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

func (c *AvailabilityCache) Set(ctx context.Context, key string, v any) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, availabilityTTL).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("availability cache set failed")
	}
}

// InvalidateBarber drops every cached grid for the barber. Called after a
// booking commit changes what is free.
func (c *AvailabilityCache) InvalidateBarber(ctx context.Context, barberID uint) {
	if c == nil {
		return
	}
	pattern := fmt.Sprintf("availability:%d:*", barberID)
	keys, err := c.rdb.Keys(ctx, pattern).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn().Err(err).Uint("barber_id", barberID).Msg("availability cache invalidation failed")
	}
}
