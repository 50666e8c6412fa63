package controllers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// CategoryListCacheKey and BrandListCacheKey hold the cached list
	// responses. The catalog taxonomy changes rarely, so both lists are
	// cached for an hour.
	CategoryListCacheKey = "catalog:categories"
	BrandListCacheKey    = "catalog:brands"

	// DefaultCacheTTL matches the upstream list-endpoint cache policy.
	DefaultCacheTTL = time.Hour
)

// CacheManager handles Redis caching of list responses. A nil redis
// client disables caching entirely.
type CacheManager struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewCacheManager creates a CacheManager with the default TTL.
func NewCacheManager(redisClient *redis.Client) *CacheManager {
	return &CacheManager{redis: redisClient, ttl: DefaultCacheTTL}
}

// Get loads a cached response into dest, reporting whether it was found.
func (cm *CacheManager) Get(ctx context.Context, key string, dest interface{}) bool {
	if cm == nil || cm.redis == nil {
		return false
	}

	cached, err := cm.redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}

	if err := json.Unmarshal([]byte(cached), dest); err != nil {
		zap.L().Warn("Failed to unmarshal cached response", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// SetAsync caches a response without blocking the request path.
func (cm *CacheManager) SetAsync(key string, value interface{}) {
	if cm == nil || cm.redis == nil {
		return
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		b, err := json.Marshal(value)
		if err != nil {
			zap.L().Warn("Failed to marshal response for cache", zap.String("key", key), zap.Error(err))
			return
		}

		if err := cm.redis.Set(bgCtx, key, b, cm.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache response", zap.String("key", key), zap.Error(err))
		}
	}()
}
