package draw

import (
	"context"
	"encoding/json"

	"github.com/gzydong/go-lottery/internal/entity"
)

// DecisionSnapshotStage 组装决策快照
// 只做结构组装，不做外部 IO；此处失败意味着内部不变量被破坏，始终致命
type DecisionSnapshotStage struct{}

func (s *DecisionSnapshotStage) Name() string   { return "DecisionSnapshotStage" }
func (s *DecisionSnapshotStage) Required() bool { return true }
func (s *DecisionSnapshotStage) Writer() bool   { return false }

func (s *DecisionSnapshotStage) Execute(ctx context.Context, dc *Context) (any, error) {
	if dc.ChosenTier == "" {
		dc.ChosenTier = entity.RewardTierFallback
	}
	if !dc.ChosenTier.Valid() {
		return nil, NewError(entity.ErrInternal, "决策快照档位非法")
	}

	payload := &SnapshotPayload{
		IdempotencyKey:     dc.IdempotencyKey,
		UserId:             dc.UserId,
		CampaignId:         dc.CampaignId,
		DecisionSource:     string(dc.Source),
		BudgetTier:         string(dc.BudgetTier),
		PressureTier:       string(dc.PressureTier),
		GuaranteeTriggered: dc.GuaranteeTriggered,
		NextDrawNumber:     dc.NextDrawNumber,
		CandidatePool:      dc.Pool.CandidateSummary(),
		ChosenTier:         string(dc.ChosenTier),
		Cost:               dc.Cost,
		CreatedAt:          dc.Now,
	}
	if dc.Source == entity.DecisionSourceNormal {
		payload.TierWeights = tierWeightsForSnapshot(dc.Pool)
	}
	if dc.ChosenPrize != nil {
		payload.ChosenPrizeId = dc.ChosenPrize.Id
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, WrapError(entity.ErrInternal, "决策快照序列化失败", err)
	}

	dc.Snapshot = payload
	dc.SnapshotJSON = string(raw)

	return map[string]any{"snapshot_bytes": len(raw)}, nil
}

func tierWeightsForSnapshot(pool *PrizePool) map[string]float64 {
	weights := pool.TierWeights()
	result := make(map[string]float64, len(weights))
	for tier, w := range weights {
		result[string(tier)] = w
	}
	return result
}
