package model

import "time"

// Campaign 抽奖活动
// 活动配置仅由管理后台维护，抽奖流水线对其只读
type Campaign struct {
	Id               int64     `gorm:"column:id;primary_key;AUTO_INCREMENT" json:"id"`
	Title            string    `gorm:"column:title" json:"title"`                             // 活动名称
	Status           string    `gorm:"column:status;index" json:"status"`                     // 状态 active/paused/ended
	DrawCost         int64     `gorm:"column:draw_cost" json:"draw_cost"`                     // 单次抽奖消耗积分
	DiscountRate     float64   `gorm:"column:discount_rate" json:"discount_rate"`             // 促销折扣 (0,1]，1 表示无折扣
	PityEnabled      bool      `gorm:"column:pity_enabled" json:"pity_enabled"`               // 是否启用保底
	PityThreshold    int       `gorm:"column:pity_threshold" json:"pity_threshold"`           // 保底阈值，默认 10
	GuaranteePrizeId int64     `gorm:"column:guarantee_prize_id" json:"guarantee_prize_id"`   // 指定保底奖品ID，0 表示未指定
	TotalBudget      int64     `gorm:"column:total_budget" json:"total_budget"`               // 奖池总预算（积分等值）
	RemainBudget     int64     `gorm:"column:remain_budget" json:"remain_budget"`             // 奖池剩余预算
	OverdrawAllowed  bool      `gorm:"column:overdraw_allowed" json:"overdraw_allowed"`       // 预算耗尽后是否允许透支
	FallbackWeight   int64     `gorm:"column:fallback_weight" json:"fallback_weight"`         // 未中奖空档基础权重
	StartAt          time.Time `gorm:"column:start_at;index" json:"start_at"`                 // 开始时间
	EndAt            time.Time `gorm:"column:end_at;index" json:"end_at"`                     // 结束时间
	CreatedAt        time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Campaign) TableName() string {
	return "lottery_campaign"
}
