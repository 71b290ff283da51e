package draw

import (
	"context"
	"testing"

	"github.com/gzydong/go-lottery/internal/entity"
)

func tierContext(settings *Settings) *Context {
	campaign := testCampaign()
	dc := NewContext(Request{UserId: 1, CampaignId: 1}, settings, NewSeededRNG(1))
	dc.Campaign = campaign
	dc.Prizes = testPrizes()
	dc.Pool = BuildPool(dc.Prizes, campaign.FallbackWeight, nil)
	return dc
}

func pickedWeights(t *testing.T, data any) map[entity.RewardTier]float64 {
	t.Helper()
	m, ok := data.(map[string]any)
	if !ok {
		t.Fatalf("stage data = %T, want map", data)
	}
	weights, ok := m["weights"].(map[entity.RewardTier]float64)
	if !ok {
		t.Fatalf("weights = %T, want map[RewardTier]float64", m["weights"])
	}
	return weights
}

func TestTierPickStage_AntiEmptyStreak(t *testing.T) {
	settings := testSettings()
	settings.AntiEmpty = AntiStreakSettings{Enabled: true, MaxStreak: 5}

	history := &fakeHistory{recent: []entity.RewardTier{
		entity.RewardTierFallback, entity.RewardTierFallback, entity.RewardTierFallback,
		entity.RewardTierFallback, entity.RewardTierFallback,
	}}

	dc := tierContext(settings)
	stage := &TierPickStage{History: history}

	data, err := stage.Execute(context.Background(), dc)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	weights := pickedWeights(t, data)
	if weights[entity.RewardTierFallback] != 0 {
		t.Errorf("fallback weight = %v, want 0 after empty streak", weights[entity.RewardTierFallback])
	}
	if dc.ChosenTier == entity.RewardTierFallback {
		t.Error("chosen tier = fallback, want forced win")
	}
}

func TestTierPickStage_AntiHighStreak(t *testing.T) {
	settings := testSettings()
	settings.AntiHigh = AntiStreakSettings{Enabled: true, MaxStreak: 2}

	history := &fakeHistory{recent: []entity.RewardTier{
		entity.RewardTierHigh, entity.RewardTierHigh, entity.RewardTierLow,
	}}

	dc := tierContext(settings)
	stage := &TierPickStage{History: history}

	data, err := stage.Execute(context.Background(), dc)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	weights := pickedWeights(t, data)
	if weights[entity.RewardTierHigh] != 0 {
		t.Errorf("high weight = %v, want 0 after high streak", weights[entity.RewardTierHigh])
	}
}

func TestTierPickStage_StreakBelowThresholdUntouched(t *testing.T) {
	settings := testSettings()
	settings.AntiEmpty = AntiStreakSettings{Enabled: true, MaxStreak: 5}

	history := &fakeHistory{recent: []entity.RewardTier{
		entity.RewardTierFallback, entity.RewardTierFallback, entity.RewardTierLow,
	}}

	dc := tierContext(settings)
	data, err := (&TierPickStage{History: history}).Execute(context.Background(), dc)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	weights := pickedWeights(t, data)
	if weights[entity.RewardTierFallback] != 900 {
		t.Errorf("fallback weight = %v, want 900 untouched", weights[entity.RewardTierFallback])
	}
}

func TestTierPickStage_LuckDebtBoost(t *testing.T) {
	settings := testSettings()
	settings.LuckDebt = LuckDebtSettings{Enabled: true, Window: 20, Threshold: 0.8, Boost: 1.5}

	// 近 20 次投入 2000 回报 100，欠账比例 0.95 >= 0.8
	history := &fakeHistory{stats: repeatStats(20, 100, 5)}

	dc := tierContext(settings)
	data, err := (&TierPickStage{History: history}).Execute(context.Background(), dc)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	weights := pickedWeights(t, data)
	if weights[entity.RewardTierHigh] != 150 {
		t.Errorf("high weight = %v, want 150 (boosted)", weights[entity.RewardTierHigh])
	}
	if weights[entity.RewardTierMid] != 450 {
		t.Errorf("mid weight = %v, want 450 (boosted)", weights[entity.RewardTierMid])
	}
	if weights[entity.RewardTierLow] != 600 {
		t.Errorf("low weight = %v, want 600 untouched", weights[entity.RewardTierLow])
	}
}

func TestTierPickStage_LuckDebtBelowThreshold(t *testing.T) {
	settings := testSettings()
	settings.LuckDebt = LuckDebtSettings{Enabled: true, Window: 20, Threshold: 0.8, Boost: 1.5}

	// 欠账比例 0.5，未达阈值
	history := &fakeHistory{stats: repeatStats(20, 100, 50)}

	dc := tierContext(settings)
	data, err := (&TierPickStage{History: history}).Execute(context.Background(), dc)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	weights := pickedWeights(t, data)
	if weights[entity.RewardTierHigh] != 100 {
		t.Errorf("high weight = %v, want 100 untouched", weights[entity.RewardTierHigh])
	}
}

func TestTierPickStage_LuckDebtWindowBounded(t *testing.T) {
	settings := testSettings()
	settings.LuckDebt = LuckDebtSettings{Enabled: true, Window: 5, Threshold: 0.8, Boost: 1.5}

	// 窗口内 5 次投入回报持平，窗口之外存在大量全空历史
	// 欠账只看窗口内的 5 次，历史欠账不得累入
	stats := append(repeatStats(5, 100, 100), repeatStats(30, 100, 0)...)
	history := &fakeHistory{stats: stats}

	dc := tierContext(settings)
	data, err := (&TierPickStage{History: history}).Execute(context.Background(), dc)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	weights := pickedWeights(t, data)
	if weights[entity.RewardTierHigh] != 100 {
		t.Errorf("high weight = %v, want 100 (debt outside window ignored)", weights[entity.RewardTierHigh])
	}
	if weights[entity.RewardTierMid] != 300 {
		t.Errorf("mid weight = %v, want 300 (debt outside window ignored)", weights[entity.RewardTierMid])
	}
}

func TestTierPickStage_GuaranteeBypassesRandom(t *testing.T) {
	dc := tierContext(testSettings())
	dc.GuaranteeTriggered = true
	dc.GuaranteePrize = dc.Prizes[1] // 中档

	if _, err := (&TierPickStage{History: &fakeHistory{}}).Execute(context.Background(), dc); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if dc.ChosenTier != entity.RewardTierMid {
		t.Errorf("chosen tier = %s, want mid (guarantee prize tier)", dc.ChosenTier)
	}
}
