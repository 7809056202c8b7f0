package memcache_fx

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"tastepalette/internal/config"
	"tastepalette/internal/infra"
	mem "tastepalette/pkg/memcache"
	"tastepalette/pkg/middleware"
)

var Module = fx.Provide(provideRedis, provideRateLimitStore)

// provideRedis may return a nil client; see provideRateLimitStore.
func provideRedis(lc fx.Lifecycle, cfg *config.Config) *redis.Client {
	client := infra.ConnectRedis(cfg)
	if client != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return client.Close()
			},
		})
	}
	return client
}

func provideRateLimitStore(client *redis.Client) middleware.RateLimitStore {
	if client == nil {
		log.Println("Rate limiting with in-process counters")
		return mem.NewWindowCounter()
	}
	return middleware.NewRedisRateLimitStore(client)
}
