package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/srgjo27/rail_ticket/internal/config"
)

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Ping fails fast when redis is unreachable so the server never starts
// without its session lock.
func Ping(ctx context.Context, client *redis.Client) error {
	logrus.WithField("addr", client.Options().Addr).Info("connecting to redis")

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}

	logrus.Info("redis connected")
	return nil
}
