package model

import "time"

// PointsAccount 积分账户
type PointsAccount struct {
	Id          int64     `gorm:"column:id;primary_key;AUTO_INCREMENT" json:"id"`
	UserId      int64     `gorm:"column:user_id;uniqueIndex" json:"user_id"`
	Balance     int64     `gorm:"column:balance" json:"balance"`           // 可用积分
	TotalEarned int64     `gorm:"column:total_earned" json:"total_earned"` // 历史累计获得
	Status      string    `gorm:"column:status" json:"status"`             // 账户状态 normal/frozen
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (PointsAccount) TableName() string {
	return "points_account"
}

func (p *PointsAccount) IsFrozen() bool {
	return p.Status == PointsAccountStatusFrozen
}

// 积分账户状态
const (
	PointsAccountStatusNormal = "normal" // 正常
	PointsAccountStatusFrozen = "frozen" // 冻结
)

// 积分交易类型
const (
	PointsTxTypeDrawCost   = "draw_cost"   // 抽奖扣减
	PointsTxTypePrizeGrant = "prize_grant" // 奖品积分入账
	PointsTxTypeAdjust     = "adjust"      // 管理员调整
)

// PointsTransaction 积分交易流水
type PointsTransaction struct {
	Id        int64     `gorm:"column:id;primary_key;AUTO_INCREMENT" json:"id"`
	UserId    int64     `gorm:"column:user_id;index" json:"user_id"`
	Amount    int64     `gorm:"column:amount" json:"amount"`   // 变动金额，支出为负
	Balance   int64     `gorm:"column:balance" json:"balance"` // 变动后余额
	Type      string    `gorm:"column:type" json:"type"`       // 交易类型 draw_cost/prize_grant/adjust
	Remark    string    `gorm:"column:remark" json:"remark"`   // 备注
	CreatedAt time.Time `gorm:"column:created_at;index" json:"created_at"`
}

func (PointsTransaction) TableName() string {
	return "points_transaction"
}
