package model

import "time"

// DrawRecord 抽奖结果流水
// 由 Settle 阶段在事务内一次性写入，之后不可变更
// idempotency_key 唯一索引是幂等的最终裁决依据
type DrawRecord struct {
	Id             int64     `gorm:"column:id;primary_key;AUTO_INCREMENT" json:"id"`
	IdempotencyKey string    `gorm:"column:idempotency_key;uniqueIndex" json:"idempotency_key"` // 调用方幂等键
	UserId         int64     `gorm:"column:user_id;index:idx_user_campaign" json:"user_id"`
	CampaignId     int64     `gorm:"column:campaign_id;index:idx_user_campaign" json:"campaign_id"`
	PrizeId        int64     `gorm:"column:prize_id" json:"prize_id"`           // 中奖奖品ID，0 表示未中奖
	RewardTier     string    `gorm:"column:reward_tier" json:"reward_tier"`     // 奖励档位，未中奖为 fallback
	DecisionSource string    `gorm:"column:decision_source" json:"decision_source"` // 决策来源 normal/preset/override
	CostCharged    int64     `gorm:"column:cost_charged" json:"cost_charged"`   // 实际扣减积分
	PrizeValue     int64     `gorm:"column:prize_value" json:"prize_value"`     // 奖品积分等值（扣减预算额）
	SessionId      string    `gorm:"column:session_id" json:"session_id"`      // 会话标识
	RequestId      string    `gorm:"column:request_id" json:"request_id"`      // 请求标识
	CreatedAt      time.Time `gorm:"column:created_at;index" json:"created_at"`
}

func (DrawRecord) TableName() string {
	return "lottery_draw_record"
}

// DecisionSnapshot 决策快照
// 提交前组装、与抽奖流水一同落库，用于事后审计与问题回放
type DecisionSnapshot struct {
	Id             int64     `gorm:"column:id;primary_key;AUTO_INCREMENT" json:"id"`
	IdempotencyKey string    `gorm:"column:idempotency_key;uniqueIndex" json:"idempotency_key"`
	DrawRecordId   int64     `gorm:"column:draw_record_id;index" json:"draw_record_id"`
	Payload        string    `gorm:"column:payload;type:json" json:"payload"` // 快照内容，JSON 格式
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
}

func (DecisionSnapshot) TableName() string {
	return "lottery_decision_snapshot"
}
