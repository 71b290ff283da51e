package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// JwtTokenStorage 令牌黑名单，退出登录后的令牌在有效期内拒绝访问
type JwtTokenStorage struct {
	redis *redis.Client
}

func NewTokenSessionStorage(redis *redis.Client) *JwtTokenStorage {
	return &JwtTokenStorage{redis: redis}
}

func (j *JwtTokenStorage) SetBlackList(ctx context.Context, token string, expire time.Duration) error {
	return j.redis.Set(ctx, j.name(token), 1, expire).Err()
}

func (j *JwtTokenStorage) IsBlackList(ctx context.Context, token string) bool {
	return j.redis.Exists(ctx, j.name(token)).Val() > 0
}

func (j *JwtTokenStorage) name(token string) string {
	sum := md5.Sum([]byte(token))
	return fmt.Sprintf("jwt:blacklist:%s", hex.EncodeToString(sum[:]))
}
