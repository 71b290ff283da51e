package repo

import (
	"context"
	"errors"
	"time"

	"github.com/gzydong/go-lottery/internal/entity"
	"github.com/gzydong/go-lottery/internal/repository/model"
	"gorm.io/gorm"
)

type Preset struct {
	db *gorm.DB
}

func NewPreset(db *gorm.DB) *Preset {
	return &Preset{db: db}
}

// NextPending 查询用户在活动内优先级最高的待发放预设
// 不存在时返回 nil
func (p *Preset) NextPending(ctx context.Context, userId int64, campaignId int64) (*model.PresetGrant, error) {
	var grant model.PresetGrant
	err := p.db.WithContext(ctx).
		Where("user_id = ? AND campaign_id = ? AND status = ? AND expired_at > ?",
			userId, campaignId, entity.PresetStatusPending, time.Now()).
		Order("priority ASC, id ASC").
		First(&grant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &grant, nil
}

// MarkConsumed 标记预设已发放（仅允许 pending -> consumed）
func (p *Preset) MarkConsumed(ctx context.Context, tx *gorm.DB, id int64) error {
	if tx == nil {
		tx = p.db.WithContext(ctx)
	}

	result := tx.Model(&model.PresetGrant{}).
		Where("id = ? AND status = ?", id, entity.PresetStatusPending).
		Update("status", entity.PresetStatusConsumed)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("预设状态已变更，无法消费")
	}
	return nil
}

// ExpireOverdue 将已过期的待发放预设批量标记为过期，返回处理条数
func (p *Preset) ExpireOverdue(ctx context.Context) (int64, error) {
	result := p.db.WithContext(ctx).
		Model(&model.PresetGrant{}).
		Where("status = ? AND expired_at <= ?", entity.PresetStatusPending, time.Now()).
		Update("status", entity.PresetStatusExpired)
	return result.RowsAffected, result.Error
}
