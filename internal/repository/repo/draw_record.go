package repo

import (
	"context"
	"errors"
	"time"

	"github.com/gzydong/go-lottery/internal/entity"
	"github.com/gzydong/go-lottery/internal/repository/model"
	"gorm.io/gorm"
)

type DrawRecord struct {
	db *gorm.DB
}

func NewDrawRecord(db *gorm.DB) *DrawRecord {
	return &DrawRecord{db: db}
}

// FindByIdempotencyKey 根据幂等键查找已提交的抽奖流水
func (d *DrawRecord) FindByIdempotencyKey(ctx context.Context, key string) (*model.DrawRecord, error) {
	var record model.DrawRecord
	err := d.db.WithContext(ctx).Where("idempotency_key = ?", key).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// CountByUserAndCampaign 统计用户在活动内的累计抽奖次数
// 保底判定依赖该计数，与 Settle 写入的是同一张表，保证单调
func (d *DrawRecord) CountByUserAndCampaign(ctx context.Context, userId int64, campaignId int64) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).
		Model(&model.DrawRecord{}).
		Where("user_id = ? AND campaign_id = ?", userId, campaignId).
		Count(&count).Error
	return count, err
}

// RecentTierSequence 查询用户在活动内最近 n 次的奖励档位序列，新在前
func (d *DrawRecord) RecentTierSequence(ctx context.Context, userId int64, campaignId int64, n int) ([]entity.RewardTier, error) {
	var tiers []string
	err := d.db.WithContext(ctx).
		Model(&model.DrawRecord{}).
		Where("user_id = ? AND campaign_id = ?", userId, campaignId).
		Order("id DESC").
		Limit(n).
		Pluck("reward_tier", &tiers).Error
	if err != nil {
		return nil, err
	}

	result := make([]entity.RewardTier, 0, len(tiers))
	for _, t := range tiers {
		result = append(result, entity.RewardTier(t))
	}
	return result, nil
}

// SpendSince 统计活动自某时刻起发放的奖品等值积分（压力档位的消耗速度信号）
func (d *DrawRecord) SpendSince(ctx context.Context, campaignId int64, since time.Time) (int64, error) {
	var spend int64
	err := d.db.WithContext(ctx).
		Model(&model.DrawRecord{}).
		Where("campaign_id = ? AND created_at >= ?", campaignId, since).
		Select("COALESCE(SUM(prize_value), 0)").
		Scan(&spend).Error
	return spend, err
}

// RecentValueStats 统计用户在活动内最近 n 次抽奖的投入与回报（幸运债信号）
// 截取最近 N 条必须放在子查询内完成，外层直接 LIMIT 会在聚合之后才生效，窗口失效
func (d *DrawRecord) RecentValueStats(ctx context.Context, userId int64, campaignId int64, n int) (cost int64, value int64, err error) {
	recent := d.db.WithContext(ctx).
		Model(&model.DrawRecord{}).
		Select("cost_charged, prize_value").
		Where("user_id = ? AND campaign_id = ?", userId, campaignId).
		Order("id DESC").
		Limit(n)

	var stats struct {
		Cost  int64
		Value int64
	}
	err = d.db.WithContext(ctx).
		Table("(?) AS recent", recent).
		Select("COALESCE(SUM(cost_charged), 0) AS cost, COALESCE(SUM(prize_value), 0) AS value").
		Scan(&stats).Error
	return stats.Cost, stats.Value, err
}

// ListByUser 分页查询用户抽奖历史，新在前
func (d *DrawRecord) ListByUser(ctx context.Context, userId int64, campaignId int64, page int, pageSize int) ([]*model.DrawRecord, int64, error) {
	query := d.db.WithContext(ctx).
		Model(&model.DrawRecord{}).
		Where("user_id = ?", userId)

	if campaignId > 0 {
		query = query.Where("campaign_id = ?", campaignId)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []*model.DrawRecord
	err := query.
		Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&records).Error
	return records, total, err
}
