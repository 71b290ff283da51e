package draw

import "time"

// Dependencies 流水线外部协作方
// Settle 之前的所有阶段只读，Ledger 是唯一的写入口
type Dependencies struct {
	Campaigns CampaignReader
	Accounts  AccountReader
	Limiter   RateLimiter
	Presets   PresetReader
	History   HistoryReader
	Ledger    Ledger

	RateLimitMax    int64
	RateLimitWindow time.Duration
}

// NewDrawPipeline 按固定顺序组装抽奖决策流水线
func NewDrawPipeline(deps Dependencies) (*Pipeline, error) {
	return NewPipeline(
		&LoadCampaignStage{Campaigns: deps.Campaigns},
		&EligibilityStage{
			Accounts:        deps.Accounts,
			Limiter:         deps.Limiter,
			RateLimitMax:    deps.RateLimitMax,
			RateLimitWindow: deps.RateLimitWindow,
		},
		&LoadDecisionSourceStage{Presets: deps.Presets},
		&BudgetContextStage{History: deps.History},
		&PricingStage{},
		&BuildPrizePoolStage{},
		&GuaranteeStage{History: deps.History},
		&TierPickStage{History: deps.History},
		&PrizePickStage{},
		&DecisionSnapshotStage{},
		&SettleStage{Ledger: deps.Ledger},
	)
}
