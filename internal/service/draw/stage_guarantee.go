package draw

import (
	"context"
	"fmt"

	"github.com/gzydong/go-lottery/internal/entity"
	"github.com/gzydong/go-lottery/internal/repository/model"
)

// GuaranteeStage 保底判定（可选阶段）
// 触发条件通过历史抽奖计数取模推导，无存储计数器，重置随下一次抽奖自动完成
// 保底进度严格限定在 (用户, 活动) 维度内
type GuaranteeStage struct {
	History HistoryReader
}

func (s *GuaranteeStage) Name() string   { return "GuaranteeStage" }
func (s *GuaranteeStage) Required() bool { return false }
func (s *GuaranteeStage) Writer() bool   { return false }

func (s *GuaranteeStage) Execute(ctx context.Context, dc *Context) (any, error) {
	if dc.Source != entity.DecisionSourceNormal {
		return map[string]any{"skipped": true}, nil
	}

	// 活动关闭保底时直接短路，不查询历史
	if !dc.Campaign.PityEnabled {
		return map[string]any{"triggered": false}, nil
	}

	// 阈值取值顺序：活动配置 > 配置中心全局默认 > 内置常量
	threshold := dc.Campaign.PityThreshold
	if threshold <= 0 {
		threshold = dc.Settings.Pity.DefaultThreshold
	}
	if threshold <= 0 {
		threshold = entity.DefaultPityThreshold
	}

	count, err := s.History.CountByUserAndCampaign(ctx, dc.UserId, dc.CampaignId)
	if err != nil {
		return nil, err
	}

	next := count + 1
	dc.NextDrawNumber = next

	if next%int64(threshold) != 0 {
		return map[string]any{
			"triggered":        false,
			"next_draw_number": next,
		}, nil
	}

	prize := s.selectGuaranteePrize(dc)
	if prize == nil {
		// 候选全部无库存时放弃保底，绝不发放无库存奖品
		// 本阶段为可选，流水线按未触发继续
		return nil, fmt.Errorf("保底触发但无可用保底奖品，活动 %d", dc.CampaignId)
	}

	dc.GuaranteeTriggered = true
	dc.GuaranteePrize = prize

	return map[string]any{
		"triggered":        true,
		"next_draw_number": next,
		"prize_id":         prize.Id,
	}, nil
}

// selectGuaranteePrize 保底奖品选取
// 优先活动指定的保底奖品，其次高档内排序值最小者，高档无货时降级中档
func (s *GuaranteeStage) selectGuaranteePrize(dc *Context) *model.Prize {
	if id := dc.Campaign.GuaranteePrizeId; id > 0 {
		for _, tier := range []entity.RewardTier{entity.RewardTierHigh, entity.RewardTierMid, entity.RewardTierLow} {
			for _, prize := range dc.Pool.TierPrizes(tier) {
				if prize.Id == id {
					return prize
				}
			}
		}
	}

	// 奖池组内保持 (排序值, ID) 升序，取首个即可
	if prizes := dc.Pool.TierPrizes(entity.RewardTierHigh); len(prizes) > 0 {
		return prizes[0]
	}
	if prizes := dc.Pool.TierPrizes(entity.RewardTierMid); len(prizes) > 0 {
		return prizes[0]
	}
	return nil
}
