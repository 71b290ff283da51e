package entity

// RewardTier 奖励档位（封闭枚举，避免自由字符串配置带来的拼写错误）
type RewardTier string

const (
	RewardTierHigh     RewardTier = "high"     // 高档奖品
	RewardTierMid      RewardTier = "mid"      // 中档奖品
	RewardTierLow      RewardTier = "low"      // 低档奖品
	RewardTierFallback RewardTier = "fallback" // 未中奖（保底空档）
)

// Valid 校验奖励档位取值
func (t RewardTier) Valid() bool {
	switch t {
	case RewardTierHigh, RewardTierMid, RewardTierLow, RewardTierFallback:
		return true
	}
	return false
}

// RewardTierText 奖励档位对应文本
var RewardTierText = map[RewardTier]string{
	RewardTierHigh:     "高档奖",
	RewardTierMid:      "中档奖",
	RewardTierLow:      "低档奖",
	RewardTierFallback: "未中奖",
}

// DecisionSource 抽奖决策来源
type DecisionSource string

const (
	DecisionSourceNormal   DecisionSource = "normal"   // 正常概率抽取
	DecisionSourcePreset   DecisionSource = "preset"   // 运营预设队列
	DecisionSourceOverride DecisionSource = "override" // 管理员强制指定
)

// Valid 校验决策来源取值
func (s DecisionSource) Valid() bool {
	switch s {
	case DecisionSourceNormal, DecisionSourcePreset, DecisionSourceOverride:
		return true
	}
	return false
}

// BudgetTier 预算健康档位（由剩余预算比例推导，不落库）
type BudgetTier string

const (
	BudgetTierB0 BudgetTier = "B0" // 预算健康
	BudgetTierB1 BudgetTier = "B1" // 预算偏紧
	BudgetTierB2 BudgetTier = "B2" // 预算告警
	BudgetTierB3 BudgetTier = "B3" // 预算危急
)

// PressureTier 消耗压力档位（由近期消耗速度推导，不落库）
type PressureTier string

const (
	PressureTierP0 PressureTier = "P0" // 低压力
	PressureTierP1 PressureTier = "P1" // 中压力
	PressureTierP2 PressureTier = "P2" // 高压力
)

// 活动状态
const (
	CampaignStatusActive = "active" // 进行中
	CampaignStatusPaused = "paused" // 已暂停
	CampaignStatusEnded  = "ended"  // 已结束
)

// 奖品状态
const (
	PrizeStatusActive   = "active"   // 上架
	PrizeStatusInactive = "inactive" // 下架
)

// 预设中奖队列状态
const (
	PresetStatusPending  = "pending"  // 待发放
	PresetStatusConsumed = "consumed" // 已发放
	PresetStatusExpired  = "expired"  // 已过期
)

// 默认保底阈值（活动未配置时使用）
const DefaultPityThreshold = 10

// 配置分组名称（配置中心按组下发）
const (
	ConfigGroupBudgetTier   = "budget_tier"   // 预算档位阈值
	ConfigGroupPressureTier = "pressure_tier" // 压力档位阈值
	ConfigGroupPity         = "pity"          // 保底参数
	ConfigGroupLuckDebt     = "luck_debt"     // 幸运债补偿参数
	ConfigGroupAntiEmpty    = "anti_empty"    // 防连续空奖参数
	ConfigGroupAntiHigh     = "anti_high"     // 防连续高奖参数
	ConfigGroupTierMatrix   = "tier_matrix"   // 预算/压力档位乘数矩阵
)
