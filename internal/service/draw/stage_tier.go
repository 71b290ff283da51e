package draw

import (
	"context"

	"github.com/gzydong/go-lottery/internal/entity"
)

// TierPickStage 档位加权随机抽取
// 保底触发或预设/强制路径时跳过随机，直接采用既定档位
type TierPickStage struct {
	History HistoryReader
}

func (s *TierPickStage) Name() string   { return "TierPickStage" }
func (s *TierPickStage) Required() bool { return true }
func (s *TierPickStage) Writer() bool   { return false }

func (s *TierPickStage) Execute(ctx context.Context, dc *Context) (any, error) {
	switch {
	case dc.Source == entity.DecisionSourcePreset:
		// 预设路径档位随奖品确定，由 PrizePickStage 填充
		return map[string]any{"skipped": true}, nil

	case dc.Source == entity.DecisionSourceOverride && dc.ForceTier != "":
		dc.ChosenTier = dc.ForceTier
		return map[string]any{"tier": dc.ChosenTier, "forced": true}, nil

	case dc.GuaranteeTriggered:
		dc.ChosenTier = entity.RewardTier(dc.GuaranteePrize.Tier)
		return map[string]any{"tier": dc.ChosenTier, "guarantee": true}, nil
	}

	weights := dc.Pool.TierWeights()

	if err := s.applyAntiStreak(ctx, dc, weights); err != nil {
		return nil, err
	}
	if err := s.applyLuckDebt(ctx, dc, weights); err != nil {
		return nil, err
	}

	tier, ok := PickTier(dc.Rng, weights)
	if !ok {
		// BuildPrizePoolStage 成功后正常不会走到这里
		return nil, NewError(entity.ErrNoTierAvailable, entity.ErrCodeText[entity.ErrNoTierAvailable])
	}

	dc.ChosenTier = tier

	return map[string]any{
		"tier":    tier,
		"weights": weights,
	}, nil
}

// applyAntiStreak 防连续极端结果
// 连续空奖达到阈值时清零空奖权重（强制本次中奖）
// 连续高奖达到阈值时清零高档权重（抑制连续爆奖）
func (s *TierPickStage) applyAntiStreak(ctx context.Context, dc *Context, weights map[entity.RewardTier]float64) error {
	antiEmpty := dc.Settings.AntiEmpty
	antiHigh := dc.Settings.AntiHigh
	if !antiEmpty.Enabled && !antiHigh.Enabled {
		return nil
	}

	window := antiEmpty.MaxStreak
	if antiHigh.MaxStreak > window {
		window = antiHigh.MaxStreak
	}

	recent, err := s.History.RecentTierSequence(ctx, dc.UserId, dc.CampaignId, window)
	if err != nil {
		return err
	}

	if antiEmpty.Enabled && StreakLen(recent, entity.RewardTierFallback) >= antiEmpty.MaxStreak {
		weights[entity.RewardTierFallback] = 0
	}
	if antiHigh.Enabled && StreakLen(recent, entity.RewardTierHigh) >= antiHigh.MaxStreak {
		weights[entity.RewardTierHigh] = 0
	}
	return nil
}

// applyLuckDebt 幸运债补偿
// 近期回报低于投入的比例达到阈值时，上调中高档权重
func (s *TierPickStage) applyLuckDebt(ctx context.Context, dc *Context, weights map[entity.RewardTier]float64) error {
	debt := dc.Settings.LuckDebt
	if !debt.Enabled || debt.Window <= 0 {
		return nil
	}

	cost, value, err := s.History.RecentValueStats(ctx, dc.UserId, dc.CampaignId, debt.Window)
	if err != nil {
		return err
	}
	if cost <= 0 {
		return nil
	}

	ratio := float64(cost-value) / float64(cost)
	if ratio >= debt.Threshold {
		weights[entity.RewardTierHigh] *= debt.Boost
		weights[entity.RewardTierMid] *= debt.Boost
	}
	return nil
}
