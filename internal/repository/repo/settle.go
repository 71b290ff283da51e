package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gzydong/go-lottery/internal/entity"
	"github.com/gzydong/go-lottery/internal/repository/model"
	"gorm.io/gorm"
)

var (
	ErrStockDepleted  = errors.New("prize stock depleted")
	ErrBudgetDepleted = errors.New("campaign budget depleted")
)

// Settle 抽奖结算写入器
// 整个抽奖链路中唯一的状态变更入口，库存、预算、积分、流水在同一事务内提交
type Settle struct {
	db     *gorm.DB
	points *Points
	preset *Preset
}

func NewSettle(db *gorm.DB, points *Points, preset *Preset) *Settle {
	return &Settle{db: db, points: points, preset: preset}
}

// CommitDrawParams 结算入参
type CommitDrawParams struct {
	IdempotencyKey string
	UserId         int64
	CampaignId     int64
	PrizeId        int64 // 0 表示未中奖
	PrizeName      string
	PrizeValue     int64 // 奖品积分等值，扣减预算额
	RewardTier     entity.RewardTier
	DecisionSource entity.DecisionSource
	Cost           int64 // 本次抽奖实际扣减积分
	PresetId       int64 // 消费的预设ID，0 表示无
	Snapshot       string
	SessionId      string
	RequestId      string
}

// CommitDraw 原子提交一次抽奖结果
// 返回值 replayed=true 表示幂等键已提交过，返回的是既有结果
//
// 事务内顺序：
//  1. 幂等键查重，命中则直接返回既有流水
//  2. 条件扣减奖品库存（stock > 0 守卫，并发竞争时失败）
//  3. 条件扣减活动预算（允许透支的活动跳过余额守卫）
//  4. 行锁扣减用户积分并写交易流水
//  5. 中奖时写入用户库存
//  6. 写入抽奖流水与决策快照
//
// 任一步失败整体回滚，不产生中间状态
func (s *Settle) CommitDraw(ctx context.Context, params *CommitDrawParams) (*model.DrawRecord, bool, error) {
	var (
		record   *model.DrawRecord
		replayed bool
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 幂等回放检查
		var existing model.DrawRecord
		err := tx.Where("idempotency_key = ?", params.IdempotencyKey).First(&existing).Error
		if err == nil {
			record = &existing
			replayed = true
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now()

		if params.PrizeId > 0 {
			// 条件更新扣库存，两个并发事务只有一个能赢
			result := tx.Model(&model.Prize{}).
				Where("id = ? AND stock > 0", params.PrizeId).
				Updates(map[string]any{
					"stock":      gorm.Expr("stock - 1"),
					"updated_at": now,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrStockDepleted
			}
		}

		if params.PrizeValue > 0 {
			budget := tx.Model(&model.Campaign{}).
				Where("id = ?", params.CampaignId)

			var campaign model.Campaign
			if err := tx.Select("overdraw_allowed").
				Where("id = ?", params.CampaignId).
				First(&campaign).Error; err != nil {
				return err
			}
			if !campaign.OverdrawAllowed {
				budget = budget.Where("remain_budget >= ?", params.PrizeValue)
			}

			result := budget.Updates(map[string]any{
				"remain_budget": gorm.Expr("remain_budget - ?", params.PrizeValue),
				"updated_at":    now,
			})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrBudgetDepleted
			}
		}

		if params.Cost > 0 {
			remark := fmt.Sprintf("抽奖消耗，活动 %d", params.CampaignId)
			if _, err := s.points.ApplyChange(ctx, tx, params.UserId, -params.Cost, model.PointsTxTypeDrawCost, remark); err != nil {
				return err
			}
		}

		if params.PresetId > 0 {
			if err := s.preset.MarkConsumed(ctx, tx, params.PresetId); err != nil {
				return err
			}
		}

		record = &model.DrawRecord{
			IdempotencyKey: params.IdempotencyKey,
			UserId:         params.UserId,
			CampaignId:     params.CampaignId,
			PrizeId:        params.PrizeId,
			RewardTier:     string(params.RewardTier),
			DecisionSource: string(params.DecisionSource),
			CostCharged:    params.Cost,
			PrizeValue:     params.PrizeValue,
			SessionId:      params.SessionId,
			RequestId:      params.RequestId,
			CreatedAt:      now,
		}
		if err := tx.Create(record).Error; err != nil {
			return err
		}

		if params.PrizeId > 0 {
			inventory := &model.UserInventory{
				UserId:       params.UserId,
				CampaignId:   params.CampaignId,
				PrizeId:      params.PrizeId,
				DrawRecordId: record.Id,
				PrizeName:    params.PrizeName,
				Status:       model.InventoryStatusUnused,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := tx.Create(inventory).Error; err != nil {
				return err
			}
		}

		snapshot := &model.DecisionSnapshot{
			IdempotencyKey: params.IdempotencyKey,
			DrawRecordId:   record.Id,
			Payload:        params.Snapshot,
			CreatedAt:      now,
		}
		return tx.Create(snapshot).Error
	})

	if err != nil {
		// 两个同幂等键的事务竞争时，输家触发唯一索引冲突，按回放处理
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var existing model.DrawRecord
			if findErr := s.db.WithContext(ctx).
				Where("idempotency_key = ?", params.IdempotencyKey).
				First(&existing).Error; findErr == nil {
				return &existing, true, nil
			}
		}
		return nil, false, err
	}

	return record, replayed, nil
}
