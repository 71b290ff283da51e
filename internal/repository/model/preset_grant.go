package model

import "time"

// PresetGrant 预设中奖队列
// 运营为指定用户预先安排的必中奖品，按优先级消费
type PresetGrant struct {
	Id         int64     `gorm:"column:id;primary_key;AUTO_INCREMENT" json:"id"`
	UserId     int64     `gorm:"column:user_id;index:idx_preset_user_campaign" json:"user_id"`
	CampaignId int64     `gorm:"column:campaign_id;index:idx_preset_user_campaign" json:"campaign_id"`
	PrizeId    int64     `gorm:"column:prize_id" json:"prize_id"`       // 预设奖品ID
	Priority   int       `gorm:"column:priority" json:"priority"`       // 优先级，小值先消费
	Status     string    `gorm:"column:status;index" json:"status"`     // 状态 pending/consumed/expired
	ExpiredAt  time.Time `gorm:"column:expired_at;index" json:"expired_at"` // 过期时间
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (PresetGrant) TableName() string {
	return "lottery_preset_grant"
}
