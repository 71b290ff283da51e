package draw

import (
	"context"
	"errors"

	"github.com/gzydong/go-lottery/internal/entity"
	"github.com/gzydong/go-lottery/internal/repository/repo"
)

// SettleStage 结算提交，整条流水线唯一的写入阶段
// 库存、预算、积分、流水、快照在一个事务内提交；幂等键命中时回放既有结果
type SettleStage struct {
	Ledger Ledger
}

func (s *SettleStage) Name() string   { return "SettleStage" }
func (s *SettleStage) Required() bool { return true }
func (s *SettleStage) Writer() bool   { return true }

func (s *SettleStage) Execute(ctx context.Context, dc *Context) (any, error) {
	params := &repo.CommitDrawParams{
		IdempotencyKey: dc.IdempotencyKey,
		UserId:         dc.UserId,
		CampaignId:     dc.CampaignId,
		RewardTier:     dc.ChosenTier,
		DecisionSource: dc.Source,
		Cost:           dc.Cost,
		Snapshot:       dc.SnapshotJSON,
		SessionId:      dc.SessionId,
		RequestId:      dc.RequestId,
	}
	if dc.ChosenPrize != nil {
		params.PrizeId = dc.ChosenPrize.Id
		params.PrizeName = dc.ChosenPrize.Name
		params.PrizeValue = dc.ChosenPrize.Value
	}
	if dc.Preset != nil && dc.Source == entity.DecisionSourcePreset {
		params.PresetId = dc.Preset.Id
	}

	record, replayed, err := s.Ledger.CommitDraw(ctx, params)
	if err != nil {
		return nil, s.mapError(err)
	}

	dc.Record = record
	dc.Replayed = replayed

	return map[string]any{
		"record_id": record.Id,
		"replayed":  replayed,
	}, nil
}

// mapError 将结算层哨兵错误映射为业务码
// 库存/预算竞争属可重试竞态，调用方重试后会携新数据重新进入奖池构建
func (s *SettleStage) mapError(err error) error {
	switch {
	case errors.Is(err, repo.ErrStockDepleted):
		return WrapError(entity.ErrNoPrizeAvailable, entity.ErrCodeText[entity.ErrNoPrizeAvailable], err)
	case errors.Is(err, repo.ErrBudgetDepleted):
		return WrapError(entity.ErrBudgetExhausted, entity.ErrCodeText[entity.ErrBudgetExhausted], err)
	case errors.Is(err, repo.ErrBalanceShort):
		return WrapError(entity.ErrInsufficientBalance, entity.ErrCodeText[entity.ErrInsufficientBalance], err)
	case errors.Is(err, repo.ErrAccountFrozen):
		return WrapError(entity.ErrUserIneligible, entity.ErrCodeText[entity.ErrUserIneligible], err)
	default:
		return err
	}
}
