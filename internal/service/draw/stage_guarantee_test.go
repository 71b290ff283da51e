package draw

import (
	"context"
	"testing"

	"github.com/gzydong/go-lottery/internal/entity"
	"github.com/gzydong/go-lottery/internal/repository/model"
)

func guaranteeContext(campaign *model.Campaign, prizes []*model.Prize) *Context {
	dc := NewContext(Request{UserId: 1, CampaignId: campaign.Id}, testSettings(), NewSeededRNG(1))
	dc.Campaign = campaign
	dc.Prizes = prizes
	dc.Pool = BuildPool(prizes, campaign.FallbackWeight, nil)
	return dc
}

func TestGuaranteeStage_TriggerByCount(t *testing.T) {
	tests := []struct {
		name      string
		count     int64
		threshold int
		want      bool
	}{
		{"first draw", 0, 10, false},
		{"ninth draw", 8, 10, false},
		{"tenth draw triggers", 9, 10, true},
		{"eleventh draw resets", 10, 10, false},
		{"nineteenth draw", 18, 10, false},
		{"twentieth draw triggers", 19, 10, true},
		{"custom threshold", 4, 5, true},
		{"zero threshold falls back to default", 9, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			campaign := testCampaign()
			campaign.PityThreshold = tt.threshold

			dc := guaranteeContext(campaign, testPrizes())
			stage := &GuaranteeStage{History: &fakeHistory{count: tt.count}}

			if _, err := stage.Execute(context.Background(), dc); err != nil {
				t.Fatalf("Execute() error = %v", err)
			}

			if dc.GuaranteeTriggered != tt.want {
				t.Errorf("triggered = %v, want %v", dc.GuaranteeTriggered, tt.want)
			}
			if dc.NextDrawNumber != tt.count+1 {
				t.Errorf("next draw number = %d, want %d", dc.NextDrawNumber, tt.count+1)
			}
		})
	}
}

func TestGuaranteeStage_GlobalDefaultThreshold(t *testing.T) {
	// 活动未配置阈值时使用配置中心的全局默认值
	campaign := testCampaign()
	campaign.PityThreshold = 0

	settings := testSettings()
	settings.Pity = PitySettings{DefaultThreshold: 5}

	dc := NewContext(Request{UserId: 1, CampaignId: campaign.Id}, settings, NewSeededRNG(1))
	dc.Campaign = campaign
	dc.Prizes = testPrizes()
	dc.Pool = BuildPool(dc.Prizes, campaign.FallbackWeight, nil)

	stage := &GuaranteeStage{History: &fakeHistory{count: 4}}
	if _, err := stage.Execute(context.Background(), dc); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !dc.GuaranteeTriggered {
		t.Error("triggered = false, want true on fifth draw with global threshold 5")
	}
}

func TestGuaranteeStage_ProgressIsolatedPerUserAndCampaign(t *testing.T) {
	// 用户1 在活动1 已抽 9 次；活动2 的大量抽奖与其他用户的进度互不影响
	history := &fakeHistory{counts: map[[2]int64]int64{
		{1, 1}: 9,
		{1, 2}: 47,
		{2, 1}: 3,
	}}
	stage := &GuaranteeStage{History: history}

	campaignA := testCampaign()
	dcA := guaranteeContext(campaignA, testPrizes())
	if _, err := stage.Execute(context.Background(), dcA); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !dcA.GuaranteeTriggered {
		t.Error("campaign 1 triggered = false, want true on tenth draw")
	}

	campaignB := testCampaign()
	campaignB.Id = 2
	dcB := guaranteeContext(campaignB, testPrizes())
	if _, err := stage.Execute(context.Background(), dcB); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if dcB.GuaranteeTriggered {
		t.Error("campaign 2 triggered = true, want false (progress counted per campaign)")
	}
	if dcB.NextDrawNumber != 48 {
		t.Errorf("campaign 2 next draw number = %d, want 48", dcB.NextDrawNumber)
	}

	dcC := NewContext(Request{UserId: 2, CampaignId: 1}, testSettings(), NewSeededRNG(1))
	dcC.Campaign = campaignA
	dcC.Prizes = testPrizes()
	dcC.Pool = BuildPool(dcC.Prizes, campaignA.FallbackWeight, nil)
	if _, err := stage.Execute(context.Background(), dcC); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if dcC.GuaranteeTriggered {
		t.Error("user 2 triggered = true, want false (progress counted per user)")
	}
	if dcC.NextDrawNumber != 4 {
		t.Errorf("user 2 next draw number = %d, want 4", dcC.NextDrawNumber)
	}
}

func TestGuaranteeStage_DisabledSkipsHistory(t *testing.T) {
	campaign := testCampaign()
	campaign.PityEnabled = false

	history := &fakeHistory{count: 9, onCount: func() {
		t.Fatal("保底关闭时不应查询抽奖历史")
	}}

	dc := guaranteeContext(campaign, testPrizes())
	stage := &GuaranteeStage{History: history}

	if _, err := stage.Execute(context.Background(), dc); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if dc.GuaranteeTriggered {
		t.Error("triggered = true, want false")
	}
}

func TestGuaranteeStage_SkipsNonNormalSource(t *testing.T) {
	dc := guaranteeContext(testCampaign(), testPrizes())
	dc.Source = entity.DecisionSourcePreset

	history := &fakeHistory{count: 9, onCount: func() {
		t.Fatal("预设路径不应查询抽奖历史")
	}}

	if _, err := (&GuaranteeStage{History: history}).Execute(context.Background(), dc); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if dc.GuaranteeTriggered {
		t.Error("triggered = true, want false")
	}
}

func TestGuaranteeStage_PrizeSelection(t *testing.T) {
	t.Run("campaign designated prize", func(t *testing.T) {
		campaign := testCampaign()
		campaign.GuaranteePrizeId = 102

		dc := guaranteeContext(campaign, testPrizes())
		stage := &GuaranteeStage{History: &fakeHistory{count: 9}}

		if _, err := stage.Execute(context.Background(), dc); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if dc.GuaranteePrize == nil || dc.GuaranteePrize.Id != 102 {
			t.Errorf("guarantee prize = %+v, want id 102", dc.GuaranteePrize)
		}
	})

	t.Run("first high tier prize by default", func(t *testing.T) {
		dc := guaranteeContext(testCampaign(), testPrizes())
		stage := &GuaranteeStage{History: &fakeHistory{count: 9}}

		if _, err := stage.Execute(context.Background(), dc); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if dc.GuaranteePrize == nil || dc.GuaranteePrize.Id != 101 {
			t.Errorf("guarantee prize = %+v, want id 101", dc.GuaranteePrize)
		}
	})

	t.Run("falls back to mid tier", func(t *testing.T) {
		prizes := testPrizes()
		prizes[0].Stock = 0 // 高档无货

		dc := guaranteeContext(testCampaign(), prizes)
		stage := &GuaranteeStage{History: &fakeHistory{count: 9}}

		if _, err := stage.Execute(context.Background(), dc); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if dc.GuaranteePrize == nil || dc.GuaranteePrize.Id != 102 {
			t.Errorf("guarantee prize = %+v, want id 102", dc.GuaranteePrize)
		}
	})

	t.Run("no candidate keeps untriggered", func(t *testing.T) {
		prizes := []*model.Prize{
			{Id: 103, Tier: string(entity.RewardTierLow), Stock: 10, Weight: 600, Status: entity.PrizeStatusActive},
		}

		dc := guaranteeContext(testCampaign(), prizes)
		stage := &GuaranteeStage{History: &fakeHistory{count: 9}}

		if _, err := stage.Execute(context.Background(), dc); err == nil {
			t.Fatal("Execute() error = nil, want error when no guarantee candidate")
		}
		if dc.GuaranteeTriggered {
			t.Error("triggered = true, want false")
		}
	})
}
