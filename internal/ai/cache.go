// internal/ai/cache.go
package ai

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"card-advisor/internal/common/logger"
	"card-advisor/internal/common/metrics"
	"card-advisor/internal/models"

	"github.com/redis/go-redis/v9"
)

// StructuringCache memoizes structured profiles in Redis, keyed by a hash
// of the raw answer payload. Cache failures fall through to the model.
type StructuringCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

// NewStructuringCache creates a cache over an existing Redis client.
func NewStructuringCache(client *redis.Client, ttl time.Duration, log logger.Logger) *StructuringCache {
	return &StructuringCache{
		client: client,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "structuring-cache"}),
	}
}

func cacheKey(payload []byte) string {
	sum := sha256.Sum256(payload)
	return fmt.Sprintf("structure:%x", sum[:])
}

// Get returns a previously structured profile for the same answers.
func (c *StructuringCache) Get(ctx context.Context, payload []byte) (models.UserProfile, bool) {
	var profile models.UserProfile

	val, err := c.client.Get(ctx, cacheKey(payload)).Result()
	if err == redis.Nil {
		metrics.StructuringCacheHits.WithLabelValues("miss").Inc()
		return profile, false
	}
	if err != nil {
		metrics.StructuringCacheHits.WithLabelValues("error").Inc()
		c.logger.Warn("cache get failed", map[string]interface{}{"error": err.Error()})
		return profile, false
	}

	if err := json.Unmarshal([]byte(val), &profile); err != nil {
		metrics.StructuringCacheHits.WithLabelValues("error").Inc()
		return profile, false
	}

	metrics.StructuringCacheHits.WithLabelValues("hit").Inc()
	return profile, true
}

// Set stores a structured profile. Errors are logged, not propagated.
func (c *StructuringCache) Set(ctx context.Context, payload []byte, profile models.UserProfile) {
	data, err := json.Marshal(profile)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey(payload), data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache set failed", map[string]interface{}{"error": err.Error()})
	}
}
