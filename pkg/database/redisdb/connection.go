package redisdb

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"gearguard/pkg/config"
)

// Connect открывает клиент Redis и проверяет соединение.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if _, err := client.Ping(pingCtx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("не удалось подключиться к Redis (%s): %w", cfg.Address, err)
	}
	return client, nil
}
