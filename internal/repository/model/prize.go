package model

import "time"

// Prize 活动奖品
type Prize struct {
	Id         int64     `gorm:"column:id;primary_key;AUTO_INCREMENT" json:"id"`
	CampaignId int64     `gorm:"column:campaign_id;index" json:"campaign_id"` // 所属活动ID
	Name       string    `gorm:"column:name" json:"name"`                     // 奖品名称
	Tier       string    `gorm:"column:tier;index" json:"tier"`               // 奖励档位 high/mid/low
	Stock      int       `gorm:"column:stock" json:"stock"`                   // 剩余库存，中奖时扣减
	TotalStock int       `gorm:"column:total_stock" json:"total_stock"`       // 初始库存
	Weight     int64     `gorm:"column:weight" json:"weight"`                 // 档位内抽取权重
	SortOrder  int       `gorm:"column:sort_order" json:"sort_order"`         // 排序值，保底/兜底选取的决胜依据
	Value      int64     `gorm:"column:value" json:"value"`                   // 奖品积分等值（扣减预算用）
	Status     string    `gorm:"column:status;index" json:"status"`           // 状态 active/inactive
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Prize) TableName() string {
	return "lottery_prize"
}
