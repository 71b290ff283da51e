package service

import (
	"context"
	"time"

	"github.com/gzydong/go-lottery/config"
	"github.com/gzydong/go-lottery/internal/repository/cache"
	"github.com/gzydong/go-lottery/internal/repository/repo"
)

// ConfigSource 配置中心读取入口
// 配置库为准，Redis 缓存分组快照，陈旧窗口有界
// 档位分类容忍轻微陈旧；结算事务内的库存/预算读取不经过这里
type ConfigSource struct {
	ConfigRepo    *repo.Config
	ConfigStorage *cache.ConfigStorage

	// 缓存允许的最大陈旧窗口，0 表示不缓存
	CacheTTL time.Duration
}

func NewConfigSource(conf *config.Config, configRepo *repo.Config, configStorage *cache.ConfigStorage) *ConfigSource {
	cacheTTL := 30 * time.Second
	if conf.Lottery != nil {
		cacheTTL = time.Duration(conf.Lottery.ConfigCacheTTLSeconds) * time.Second
	}

	return &ConfigSource{
		ConfigRepo:    configRepo,
		ConfigStorage: configStorage,
		CacheTTL:      cacheTTL,
	}
}

// GetGroup 读取分组配置，优先命中缓存快照
func (c *ConfigSource) GetGroup(ctx context.Context, groupName string) (map[string]string, error) {
	if c.ConfigStorage != nil && c.CacheTTL > 0 {
		if values, ok := c.ConfigStorage.Get(ctx, groupName); ok {
			return values, nil
		}
	}

	values, err := c.ConfigRepo.GetGroup(ctx, groupName)
	if err != nil {
		return nil, err
	}

	if c.ConfigStorage != nil && c.CacheTTL > 0 {
		// 回填失败不影响本次读取
		_ = c.ConfigStorage.Set(ctx, groupName, values, c.CacheTTL)
	}
	return values, nil
}
