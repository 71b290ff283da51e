package repo

import (
	"context"
	"time"

	"github.com/gzydong/go-lottery/internal/repository/model"
	"gorm.io/gorm"
)

type Config struct {
	db *gorm.DB
}

func NewConfig(db *gorm.DB) *Config {
	return &Config{db: db}
}

// GetGroup 查询分组下当前生效的配置，返回 key -> value
// 同名配置按优先级升序遍历后覆盖，优先级大的生效
func (c *Config) GetGroup(ctx context.Context, groupName string) (map[string]string, error) {
	now := time.Now()

	var items []*model.ConfigItem
	err := c.db.WithContext(ctx).
		Where("group_name = ? AND enabled = ?", groupName, true).
		Where("start_at IS NULL OR start_at <= ?", now).
		Where("end_at IS NULL OR end_at > ?", now).
		Order("priority ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	values := make(map[string]string, len(items))
	for _, item := range items {
		values[item.Name] = item.Value
	}
	return values, nil
}
