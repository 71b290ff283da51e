package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitStorage 用户抽奖频率限制
type RateLimitStorage struct {
	redis *redis.Client
}

func NewRateLimitStorage(redis *redis.Client) *RateLimitStorage {
	return &RateLimitStorage{redis}
}

// Incr 计数一次并返回窗口内累计次数，首次计数时设置窗口过期
func (r *RateLimitStorage) Incr(ctx context.Context, userId int64, campaignId int64, window time.Duration) (int64, error) {
	key := r.name(userId, campaignId)

	num, err := r.redis.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}

	if num == 1 {
		r.redis.Expire(ctx, key, window)
	}
	return num, nil
}

// Current 查询窗口内已抽奖次数
func (r *RateLimitStorage) Current(ctx context.Context, userId int64, campaignId int64) (int64, error) {
	num, err := r.redis.Get(ctx, r.name(userId, campaignId)).Int64()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, err
	}
	return num, nil
}

func (r *RateLimitStorage) name(userId int64, campaignId int64) string {
	return fmt.Sprintf("lottery:rate:draw:%d:%d", campaignId, userId)
}
