package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/gzydong/go-lottery/config"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient 初始化 Redis 连接
func NewRedisClient(conf *config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:        conf.Redis.Host,
		Password:    conf.Redis.Auth,
		DB:          conf.Redis.Database,
		ReadTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		panic(fmt.Sprintf("Redis 连接失败: %s", err))
	}

	return client
}
