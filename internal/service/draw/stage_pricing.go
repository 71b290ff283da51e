package draw

import (
	"context"
	"math"

	"github.com/gzydong/go-lottery/internal/entity"
)

// PricingStage 计算本次抽奖实际扣减积分
// 支持促销折扣；折后价仍需不超过资格校验时确认的余额（防御性复查）
type PricingStage struct{}

func (s *PricingStage) Name() string   { return "PricingStage" }
func (s *PricingStage) Required() bool { return true }
func (s *PricingStage) Writer() bool   { return false }

func (s *PricingStage) Execute(ctx context.Context, dc *Context) (any, error) {
	cost := dc.Campaign.DrawCost

	if rate := dc.Campaign.DiscountRate; rate > 0 && rate < 1 {
		cost = int64(math.Round(float64(cost) * rate))
	}
	if cost < 0 {
		return nil, NewError(entity.ErrPricingInconsistency, entity.ErrCodeText[entity.ErrPricingInconsistency])
	}

	if cost > dc.Balance {
		return nil, NewError(entity.ErrPricingInconsistency, entity.ErrCodeText[entity.ErrPricingInconsistency])
	}

	dc.Cost = cost

	return map[string]any{"cost": cost}, nil
}
