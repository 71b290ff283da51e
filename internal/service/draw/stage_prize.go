package draw

import (
	"context"

	"github.com/gzydong/go-lottery/internal/entity"
)

// PrizePickStage 档位内奖品加权随机抽取
// 候选列表保持 (排序值, ID) 升序，等权重决胜确定
// 失败（并发库存耗尽）时中止，调用方重试会携新库存数据重新进入奖池构建
type PrizePickStage struct{}

func (s *PrizePickStage) Name() string   { return "PrizePickStage" }
func (s *PrizePickStage) Required() bool { return true }
func (s *PrizePickStage) Writer() bool   { return false }

func (s *PrizePickStage) Execute(ctx context.Context, dc *Context) (any, error) {
	// 预设路径：预设奖品直接成为中奖结果，仍走后续快照与结算
	if dc.Source == entity.DecisionSourcePreset {
		prize := dc.PresetPrize
		if prize == nil || prize.Stock <= 0 {
			return nil, NewError(entity.ErrNoPrizeAvailable, entity.ErrCodeText[entity.ErrNoPrizeAvailable])
		}
		dc.ChosenPrize = prize
		dc.ChosenTier = entity.RewardTier(prize.Tier)
		return map[string]any{"prize_id": prize.Id, "preset": true}, nil
	}

	if dc.GuaranteeTriggered {
		dc.ChosenPrize = dc.GuaranteePrize
		return map[string]any{"prize_id": dc.GuaranteePrize.Id, "guarantee": true}, nil
	}

	if dc.ChosenTier == entity.RewardTierFallback {
		dc.ChosenPrize = nil
		return map[string]any{"prize_id": int64(0)}, nil
	}

	prizes := dc.Pool.TierPrizes(dc.ChosenTier)
	if len(prizes) == 0 {
		return nil, NewError(entity.ErrNoPrizeAvailable, entity.ErrCodeText[entity.ErrNoPrizeAvailable])
	}

	prize, ok := PickPrize(dc.Rng, prizes)
	if !ok {
		return nil, NewError(entity.ErrNoPrizeAvailable, entity.ErrCodeText[entity.ErrNoPrizeAvailable])
	}

	dc.ChosenPrize = prize
	return map[string]any{"prize_id": prize.Id}, nil
}
