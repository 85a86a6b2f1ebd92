package database

import (
	"context"
	"time"

	"sauna-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects to Redis for rate limiting. Returns nil when Redis is not
// configured or unreachable; callers degrade by disabling rate limiting.
func InitRedis(config utils.RedisConfig) *redis.Client {
	if config.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}

	return client
}
