package model

import "time"

// 库存物品状态
const (
	InventoryStatusUnused  = "unused"  // 未使用
	InventoryStatusUsed    = "used"    // 已使用
	InventoryStatusExpired = "expired" // 已过期
)

// UserInventory 用户奖品库存
// 中奖后由 Settle 阶段与抽奖流水同事务写入
type UserInventory struct {
	Id           int64      `gorm:"column:id;primary_key;AUTO_INCREMENT" json:"id"`
	UserId       int64      `gorm:"column:user_id;index" json:"user_id"`
	CampaignId   int64      `gorm:"column:campaign_id" json:"campaign_id"`
	PrizeId      int64      `gorm:"column:prize_id" json:"prize_id"`
	DrawRecordId int64      `gorm:"column:draw_record_id;index" json:"draw_record_id"` // 来源抽奖流水
	PrizeName    string     `gorm:"column:prize_name" json:"prize_name"`
	Status       string     `gorm:"column:status;index" json:"status"` // 状态 unused/used/expired
	UsedAt       *time.Time `gorm:"column:used_at" json:"used_at"`     // 使用时间
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (UserInventory) TableName() string {
	return "user_inventory"
}
