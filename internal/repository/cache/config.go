package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConfigStorage 配置分组快照缓存
// 档位分类容忍有界的配置陈旧，Settle 事务内的库存/预算读取不走这里
type ConfigStorage struct {
	redis *redis.Client
}

func NewConfigStorage(redis *redis.Client) *ConfigStorage {
	return &ConfigStorage{redis}
}

// Get 读取分组快照，未命中返回 false
func (c *ConfigStorage) Get(ctx context.Context, groupName string) (map[string]string, bool) {
	raw, err := c.redis.Get(ctx, c.name(groupName)).Result()
	if err != nil || raw == "" {
		return nil, false
	}

	var values map[string]string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, false
	}
	return values, true
}

// Set 写入分组快照，exp 为允许的最大陈旧窗口
func (c *ConfigStorage) Set(ctx context.Context, groupName string, values map[string]string, exp time.Duration) error {
	raw, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return c.redis.Set(ctx, c.name(groupName), raw, exp).Err()
}

// Del 删除分组快照（配置变更后由后台触发）
func (c *ConfigStorage) Del(ctx context.Context, groupName string) error {
	return c.redis.Del(ctx, c.name(groupName)).Err()
}

func (c *ConfigStorage) name(groupName string) string {
	return fmt.Sprintf("lottery:config:group:%s", groupName)
}
