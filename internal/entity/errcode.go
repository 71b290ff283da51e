package entity

// 抽奖业务错误码
// 对外返回稳定的业务码，内部错误不向调用方泄露实现细节
const (
	ErrCampaignNotFound     = "CampaignNotFound"     // 活动不存在
	ErrCampaignInactive     = "CampaignInactive"     // 活动未开始/已结束/已暂停
	ErrInsufficientBalance  = "InsufficientBalance"  // 积分余额不足
	ErrRateLimitExceeded    = "RateLimitExceeded"    // 触发抽奖频率限制
	ErrUserIneligible       = "UserIneligible"       // 用户状态异常，不允许抽奖
	ErrBudgetExhausted      = "BudgetExhausted"      // 活动预算耗尽
	ErrPricingInconsistency = "PricingInconsistency" // 计价与余额校验不一致
	ErrEmptyPrizePool       = "EmptyPrizePool"       // 奖池为空，无可用奖品
	ErrNoTierAvailable      = "NoTierAvailable"      // 无可抽取档位
	ErrNoPrizeAvailable     = "NoPrizeAvailable"     // 档位内无可用奖品（并发库存竞争）
	ErrInternal             = "InternalError"        // 内部不变量被破坏，始终致命
)

// ErrCodeText 错误码对应文本
var ErrCodeText = map[string]string{
	ErrCampaignNotFound:     "活动不存在",
	ErrCampaignInactive:     "活动不在进行中",
	ErrInsufficientBalance:  "积分余额不足",
	ErrRateLimitExceeded:    "抽奖太频繁，请稍后再试",
	ErrUserIneligible:       "当前账号不允许参与抽奖",
	ErrBudgetExhausted:      "活动奖池预算已耗尽",
	ErrPricingInconsistency: "抽奖价格校验失败",
	ErrEmptyPrizePool:       "奖池暂无可用奖品",
	ErrNoTierAvailable:      "暂无可抽取档位",
	ErrNoPrizeAvailable:     "奖品已被抢完，请重试",
	ErrInternal:             "系统繁忙，请稍后再试",
}
