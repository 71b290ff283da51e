package repo

import (
	"context"
	"errors"
	"time"

	"github.com/gzydong/go-lottery/internal/repository/model"
	"gorm.io/gorm"
)

var ErrInventoryUsed = errors.New("inventory item already used")

type Inventory struct {
	db *gorm.DB
}

func NewInventory(db *gorm.DB) *Inventory {
	return &Inventory{db: db}
}

// ListByUser 分页查询用户奖品库存，新在前
func (i *Inventory) ListByUser(ctx context.Context, userId int64, status string, page int, pageSize int) ([]*model.UserInventory, int64, error) {
	query := i.db.WithContext(ctx).
		Model(&model.UserInventory{}).
		Where("user_id = ?", userId)

	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []*model.UserInventory
	err := query.
		Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&items).Error
	return items, total, err
}

// Use 核销库存物品，每件物品只能使用一次
func (i *Inventory) Use(ctx context.Context, userId int64, itemId int64) error {
	now := time.Now()
	result := i.db.WithContext(ctx).
		Model(&model.UserInventory{}).
		Where("id = ? AND user_id = ? AND status = ?", itemId, userId, model.InventoryStatusUnused).
		Updates(map[string]any{
			"status":     model.InventoryStatusUsed,
			"used_at":    now,
			"updated_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInventoryUsed
	}
	return nil
}
