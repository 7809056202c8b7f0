package infra

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"tastepalette/internal/config"
)

// ConnectRedis returns nil when REDIS_URL is unset or unreachable; callers
// fall back to in-process state.
func ConnectRedis(cfg *config.Config) *redis.Client {
	if cfg.RedisURL == "" {
		return nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Printf("Invalid REDIS_URL: %v", err)
		return nil
	}

	opt.PoolSize = 10
	opt.MinIdleConns = 2
	opt.MaxRetries = 3
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second
	opt.PoolTimeout = 4 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unavailable, continuing without it: %v", err)
		_ = client.Close()
		return nil
	}

	log.Println("Connected to Redis")
	return client
}
