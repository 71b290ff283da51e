package draw

import (
	"context"

	"github.com/gzydong/go-lottery/internal/entity"
)

// BuildPrizePoolStage 物化候选奖池
// 过滤掉下架与无库存奖品，normal 路径上应用档位乘数矩阵
type BuildPrizePoolStage struct{}

func (s *BuildPrizePoolStage) Name() string   { return "BuildPrizePoolStage" }
func (s *BuildPrizePoolStage) Required() bool { return true }
func (s *BuildPrizePoolStage) Writer() bool   { return false }

func (s *BuildPrizePoolStage) Execute(ctx context.Context, dc *Context) (any, error) {
	pool := BuildPool(dc.Prizes, dc.Campaign.FallbackWeight, dc.Matrix)

	// 所有档位都没有可中奖品时无法产生任何结果，致命
	if pool.Empty() {
		return nil, NewError(entity.ErrEmptyPrizePool, entity.ErrCodeText[entity.ErrEmptyPrizePool])
	}

	dc.Pool = pool

	return map[string]any{
		"candidates":   pool.CandidateSummary(),
		"tier_weights": pool.TierWeights(),
	}, nil
}
