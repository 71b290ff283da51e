package draw

import (
	"context"
	"log/slog"

	"github.com/gzydong/go-lottery/internal/entity"
)

// LoadDecisionSourceStage 确定决策来源
// 管理强制参数优先，其次消费预设队列，否则走正常概率路径
type LoadDecisionSourceStage struct {
	Presets PresetReader
}

func (s *LoadDecisionSourceStage) Name() string   { return "LoadDecisionSourceStage" }
func (s *LoadDecisionSourceStage) Required() bool { return true }
func (s *LoadDecisionSourceStage) Writer() bool   { return false }

func (s *LoadDecisionSourceStage) Execute(ctx context.Context, dc *Context) (any, error) {
	// 管理测试路径：强制结果同样走完整的结算记账，不允许绕过预算/库存
	if dc.ForceTier != "" || dc.ForceStrategy != "" {
		if dc.ForceTier != "" && !dc.ForceTier.Valid() {
			return nil, NewError(entity.ErrInternal, "非法的强制档位参数")
		}
		dc.Source = entity.DecisionSourceOverride
		return map[string]any{
			"source":         dc.Source,
			"force_tier":     dc.ForceTier,
			"force_strategy": dc.ForceStrategy,
		}, nil
	}

	grant, err := s.Presets.NextPending(ctx, dc.UserId, dc.CampaignId)
	if err != nil {
		return nil, err
	}

	if grant != nil {
		// 预设奖品必须仍在上架奖品列表中，否则降级为正常路径
		for _, prize := range dc.Prizes {
			if prize.Id == grant.PrizeId {
				dc.Source = entity.DecisionSourcePreset
				dc.Preset = grant
				dc.PresetPrize = prize
				return map[string]any{
					"source":    dc.Source,
					"preset_id": grant.Id,
					"prize_id":  grant.PrizeId,
				}, nil
			}
		}

		slog.WarnContext(ctx, "预设奖品已不可用，降级为正常抽取",
			"preset_id", grant.Id,
			"prize_id", grant.PrizeId,
			"campaign_id", dc.CampaignId,
		)
	}

	dc.Source = entity.DecisionSourceNormal
	return map[string]any{"source": dc.Source}, nil
}
