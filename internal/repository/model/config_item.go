package model

import "time"

// ConfigItem 版本化配置项
// 按分组下发，同组同名配置取优先级最高且在生效窗口内的一条
type ConfigItem struct {
	Id        int64      `gorm:"column:id;primary_key;AUTO_INCREMENT" json:"id"`
	GroupName string     `gorm:"column:group_name;index:idx_config_group" json:"group_name"` // 分组 budget_tier/pressure_tier/pity/...
	Name      string     `gorm:"column:name;index:idx_config_group" json:"name"`             // 配置键
	Value     string     `gorm:"column:value" json:"value"`                                  // 配置值（字符串，使用方解析）
	Priority  int        `gorm:"column:priority" json:"priority"`                            // 优先级，大值优先
	Enabled   bool       `gorm:"column:enabled" json:"enabled"`                              // 是否启用
	StartAt   *time.Time `gorm:"column:start_at" json:"start_at"`                            // 生效开始时间，空表示不限
	EndAt     *time.Time `gorm:"column:end_at" json:"end_at"`                                // 生效结束时间，空表示不限
	CreatedAt time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (ConfigItem) TableName() string {
	return "lottery_config_item"
}
