package draw

import (
	"github.com/gzydong/go-lottery/internal/entity"
	"github.com/gzydong/go-lottery/internal/repository/model"
	"github.com/samber/lo"
)

// PrizePool 本次抽取的候选奖池
// 仅包含上架且有库存的奖品，按档位分组，组内保持 (排序值, ID) 升序
type PrizePool struct {
	byTier  map[entity.RewardTier][]*model.Prize
	weights map[entity.RewardTier]float64
}

// BuildPool 物化候选奖池并计算各档位基础权重
// matrix 为空（非 normal 路径）时不应用乘数
func BuildPool(prizes []*model.Prize, fallbackWeight int64, matrix *MatrixEntry) *PrizePool {
	eligible := lo.Filter(prizes, func(p *model.Prize, _ int) bool {
		return p.Status == entity.PrizeStatusActive && p.Stock > 0
	})

	byTier := lo.GroupBy(eligible, func(p *model.Prize) entity.RewardTier {
		return entity.RewardTier(p.Tier)
	})

	weights := map[entity.RewardTier]float64{
		entity.RewardTierHigh:     sumWeight(byTier[entity.RewardTierHigh]),
		entity.RewardTierMid:      sumWeight(byTier[entity.RewardTierMid]),
		entity.RewardTierLow:      sumWeight(byTier[entity.RewardTierLow]),
		entity.RewardTierFallback: float64(fallbackWeight),
	}

	if matrix != nil {
		// 预算乘数压缩高档权重暴露，空奖乘数放大低档与空奖权重
		weights[entity.RewardTierHigh] *= matrix.BudgetCapMult
		weights[entity.RewardTierLow] *= matrix.EmptyBoostMult
		weights[entity.RewardTierFallback] *= matrix.EmptyBoostMult
	}

	return &PrizePool{byTier: byTier, weights: weights}
}

// Empty 奖池是否没有任何可中奖品（不含空奖档）
func (p *PrizePool) Empty() bool {
	for tier, prizes := range p.byTier {
		if tier != entity.RewardTierFallback && len(prizes) > 0 {
			return false
		}
	}
	return true
}

// TierPrizes 指定档位的候选奖品
func (p *PrizePool) TierPrizes(tier entity.RewardTier) []*model.Prize {
	return p.byTier[tier]
}

// TierWeights 各档位当前权重的拷贝
func (p *PrizePool) TierWeights() map[entity.RewardTier]float64 {
	return lo.Assign(map[entity.RewardTier]float64{}, p.weights)
}

// CandidateSummary 奖池概要（档位 -> 奖品ID 列表），用于决策快照
func (p *PrizePool) CandidateSummary() map[string][]int64 {
	summary := make(map[string][]int64, len(p.byTier))
	for tier, prizes := range p.byTier {
		summary[string(tier)] = lo.Map(prizes, func(prize *model.Prize, _ int) int64 {
			return prize.Id
		})
	}
	return summary
}

// PickTier 按权重随机抽取档位
// 随机数落在累计权重区间上，权重相加不比较，不存在平票
func PickTier(rng RandomSource, weights map[entity.RewardTier]float64) (entity.RewardTier, bool) {
	// 固定遍历顺序，保证同种子结果可复现
	order := []entity.RewardTier{
		entity.RewardTierHigh,
		entity.RewardTierMid,
		entity.RewardTierLow,
		entity.RewardTierFallback,
	}

	var total float64
	for _, tier := range order {
		if w := weights[tier]; w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return "", false
	}

	r := rng.Float64() * total
	var cumulative float64
	for _, tier := range order {
		w := weights[tier]
		if w <= 0 {
			continue
		}
		cumulative += w
		if r < cumulative {
			return tier, true
		}
	}

	// 浮点累加误差兜底：命中最后一个有权重的档位
	for i := len(order) - 1; i >= 0; i-- {
		if weights[order[i]] > 0 {
			return order[i], true
		}
	}
	return "", false
}

// PickPrize 档位内按奖品权重随机抽取
// 入参列表保持 (排序值, ID) 升序，等权重时先序奖品先被扫描，决胜确定
func PickPrize(rng RandomSource, prizes []*model.Prize) (*model.Prize, bool) {
	var total float64
	for _, prize := range prizes {
		if prize.Weight > 0 {
			total += float64(prize.Weight)
		}
	}
	if total <= 0 {
		return nil, false
	}

	r := rng.Float64() * total
	var cumulative float64
	for _, prize := range prizes {
		if prize.Weight <= 0 {
			continue
		}
		cumulative += float64(prize.Weight)
		if r < cumulative {
			return prize, true
		}
	}

	for i := len(prizes) - 1; i >= 0; i-- {
		if prizes[i].Weight > 0 {
			return prizes[i], true
		}
	}
	return nil, false
}

// StreakLen 序列头部连续出现指定档位的次数（序列新在前）
func StreakLen(recent []entity.RewardTier, tier entity.RewardTier) int {
	count := 0
	for _, t := range recent {
		if t != tier {
			break
		}
		count++
	}
	return count
}

func sumWeight(prizes []*model.Prize) float64 {
	var total float64
	for _, p := range prizes {
		if p.Weight > 0 {
			total += float64(p.Weight)
		}
	}
	return total
}
