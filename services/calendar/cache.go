// File: services/calendar/cache.go
package calendar

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"schedulo/models"

	"github.com/go-redis/redis/v8"
)

const (
	availabilityKeyPrefix = "calendar:avail:"
	availabilityGenKey    = "calendar:avail:gen"
)

// AvailabilityCache caches free-slot query results in Redis, keyed by the
// queried range. A generation counter is bumped on every write to the
// calendar so stale entries die immediately instead of waiting out the TTL.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAvailabilityCache(client *redis.Client, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{client: client, ttl: ttl}
}

func (c *AvailabilityCache) key(ctx context.Context, start, end time.Time) string {
	gen, err := c.client.Get(ctx, availabilityGenKey).Result()
	if err != nil {
		gen = "0"
	}
	sum := md5.Sum([]byte(fmt.Sprintf("%s_%s", start.Format(time.RFC3339), end.Format(time.RFC3339))))
	return availabilityKeyPrefix + gen + ":" + hex.EncodeToString(sum[:])
}

// Get returns the cached slots for the range, or (nil, false) on miss.
func (c *AvailabilityCache) Get(ctx context.Context, start, end time.Time) ([]models.AvailableSlot, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, c.key(ctx, start, end)).Result()
	if err != nil {
		return nil, false
	}
	var slots []models.AvailableSlot
	if err := json.Unmarshal([]byte(data), &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *AvailabilityCache) Set(ctx context.Context, start, end time.Time, slots []models.AvailableSlot) {
	if c == nil || c.client == nil {
		return
	}
	b, err := json.Marshal(slots)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, c.key(ctx, start, end), b, c.ttl).Err()
}

// Invalidate drops all cached availability by advancing the generation.
// Called after any event create/update/delete so the next query reflects the
// new busy interval.
func (c *AvailabilityCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Incr(ctx, availabilityGenKey).Err()
}
