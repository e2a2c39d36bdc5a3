package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"quantdesk/internal/config"
)

type Store interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// New picks the backend from config. Unknown backends and a redis backend
// without an address fall back to the in-memory store.
func New(cfg config.CacheConfig, logger *zap.Logger) Store {
	switch cfg.Backend {
	case "", "memory":
		return NewMemoryStore()
	case "redis":
		if cfg.RedisAddr == "" {
			if logger != nil {
				logger.Warn("cache.backend=redis but cache.redis_addr is empty, using memory")
			}
			return NewMemoryStore()
		}
		return NewRedisStore(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	default:
		if logger != nil {
			logger.Warn("unknown cache backend, using memory", zap.String("backend", cfg.Backend))
		}
		return NewMemoryStore()
	}
}
