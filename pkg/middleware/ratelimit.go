package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"tastepalette/pkg/utils"
)

const RateLimitKeyPrefix = "ratelimit:"

// RateLimitStore counts hits in a fixed window.
type RateLimitStore interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// redisCounter is the part of *redis.Client the limiter uses.
type redisCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
}

type redisRateLimitStore struct {
	client redisCounter
}

func NewRedisRateLimitStore(client *redis.Client) RateLimitStore {
	return &redisRateLimitStore{client: client}
}

// Incr counts a hit. A key left without an expiry, on its first hit or after
// a failed EXPIRE, gets the window applied again.
func (r *redisRateLimitStore) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, err
	}

	ttl, err := r.client.TTL(ctx, key).Result()
	if err != nil {
		return count, window, nil
	}
	if ttl < 0 {
		if err := r.client.Expire(ctx, key, window).Err(); err != nil {
			return count, 0, fmt.Errorf("expire %s: %w", key, err)
		}
		ttl = window
	}
	return count, ttl, nil
}

// RateLimitMiddleware limits requests per client IP and route. Store errors
// let the request through.
func RateLimitMiddleware(store RateLimitStore, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil || limit <= 0 {
			c.Next()
			return
		}

		key := RateLimitKeyPrefix + c.ClientIP() + ":" + c.FullPath()
		count, ttl, err := store.Incr(c.Request.Context(), key, window)
		if err != nil {
			log.Printf("Rate limiter unavailable, allowing request: %v", err)
			c.Next()
			return
		}

		remaining := int64(limit) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.Itoa(int(ttl.Seconds())))

		if count > int64(limit) {
			c.Header("Retry-After", strconv.Itoa(int(ttl.Seconds())))
			utils.RespondError(c, http.StatusTooManyRequests, "Too many requests. Please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
