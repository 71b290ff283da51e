package draw

import (
	"context"
	"time"

	"github.com/gzydong/go-lottery/internal/entity"
)

// BudgetContextStage 预算与压力档位分类
// 档位是当前状态的纯函数，可随时重算，仅在决策快照中留档
type BudgetContextStage struct {
	History HistoryReader
}

func (s *BudgetContextStage) Name() string   { return "BudgetContextStage" }
func (s *BudgetContextStage) Required() bool { return true }
func (s *BudgetContextStage) Writer() bool   { return false }

func (s *BudgetContextStage) Execute(ctx context.Context, dc *Context) (any, error) {
	// 预设/强制路径不做概率调节，无需分类
	if dc.Source != entity.DecisionSourceNormal {
		return map[string]any{"skipped": true}, nil
	}

	campaign := dc.Campaign
	if campaign.RemainBudget <= 0 && !campaign.OverdrawAllowed {
		return nil, NewError(entity.ErrBudgetExhausted, entity.ErrCodeText[entity.ErrBudgetExhausted])
	}

	dc.BudgetTier = dc.Settings.ClassifyBudget(campaign.RemainBudget, campaign.TotalBudget)

	window := time.Duration(dc.Settings.Pressure.WindowMinutes) * time.Minute
	spend, err := s.History.SpendSince(ctx, dc.CampaignId, dc.Now.Add(-window))
	if err != nil {
		return nil, err
	}
	dc.PressureTier = dc.Settings.ClassifyPressure(spend, campaign.TotalBudget)

	// 矩阵缺项是内部不变量被破坏，必须响亮失败
	entry, err := dc.Settings.MatrixEntry(dc.BudgetTier, dc.PressureTier)
	if err != nil {
		return nil, err
	}
	dc.Matrix = &entry

	return map[string]any{
		"budget_tier":   dc.BudgetTier,
		"pressure_tier": dc.PressureTier,
		"window_spend":  spend,
	}, nil
}
