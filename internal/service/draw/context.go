package draw

import (
	"time"

	"github.com/gzydong/go-lottery/internal/entity"
	"github.com/gzydong/go-lottery/internal/repository/model"
)

// Request 单次抽奖请求入参
type Request struct {
	UserId         int64
	CampaignId     int64
	IdempotencyKey string
	SessionId      string
	RequestId      string

	// 管理测试路径：强制指定档位/策略，决策来源记为 override
	ForceTier     entity.RewardTier
	ForceStrategy string
}

// Context 抽奖决策上下文
// 由各阶段按固定顺序逐步填充，Settle 之前只读外部状态
type Context struct {
	Request

	Now time.Time
	Rng RandomSource

	// 本次请求的配置快照，构建后不再变更
	Settings *Settings

	// LoadCampaignStage
	Campaign *model.Campaign
	Prizes   []*model.Prize

	// EligibilityStage 确认过的可用余额
	Balance int64

	// LoadDecisionSourceStage
	Source      entity.DecisionSource
	Preset      *model.PresetGrant
	PresetPrize *model.Prize

	// BudgetContextStage
	BudgetTier   entity.BudgetTier
	PressureTier entity.PressureTier
	Matrix       *MatrixEntry

	// PricingStage
	Cost int64

	// BuildPrizePoolStage
	Pool *PrizePool

	// GuaranteeStage
	NextDrawNumber     int64
	GuaranteeTriggered bool
	GuaranteePrize     *model.Prize

	// TierPickStage / PrizePickStage
	ChosenTier  entity.RewardTier
	ChosenPrize *model.Prize // nil 表示未中奖

	// DecisionSnapshotStage
	Snapshot     *SnapshotPayload
	SnapshotJSON string

	// SettleStage
	Record   *model.DrawRecord
	Replayed bool
}

// NewContext 构建抽奖上下文
func NewContext(req Request, settings *Settings, rng RandomSource) *Context {
	if rng == nil {
		rng = DefaultRNG()
	}
	return &Context{
		Request:  req,
		Now:      time.Now(),
		Rng:      rng,
		Settings: settings,
		Source:   entity.DecisionSourceNormal,
	}
}

// SnapshotPayload 决策快照内容
// 提交前组装、一次成型，落库后用于审计与回放
type SnapshotPayload struct {
	IdempotencyKey     string             `json:"idempotency_key"`
	UserId             int64              `json:"user_id"`
	CampaignId         int64              `json:"campaign_id"`
	DecisionSource     string             `json:"decision_source"`
	BudgetTier         string             `json:"budget_tier,omitempty"`
	PressureTier       string             `json:"pressure_tier,omitempty"`
	GuaranteeTriggered bool               `json:"guarantee_triggered"`
	NextDrawNumber     int64              `json:"next_draw_number,omitempty"`
	CandidatePool      map[string][]int64 `json:"candidate_pool"` // 档位 -> 候选奖品ID
	TierWeights        map[string]float64 `json:"tier_weights,omitempty"`
	ChosenTier         string             `json:"chosen_tier"`
	ChosenPrizeId      int64              `json:"chosen_prize_id"`
	Cost               int64              `json:"cost"`
	CreatedAt          time.Time          `json:"created_at"`
}
