package draw

import (
	"context"
	"time"

	"github.com/gzydong/go-lottery/internal/entity"
	"github.com/gzydong/go-lottery/internal/repository/model"
	"github.com/gzydong/go-lottery/internal/repository/repo"
)

// CampaignReader 活动/奖品只读访问
type CampaignReader interface {
	FindById(ctx context.Context, id int64) (*model.Campaign, error)
	ListActivePrizes(ctx context.Context, campaignId int64) ([]*model.Prize, error)
}

// HistoryReader 抽奖历史只读访问
// 保底计数与 Settle 追加写入的是同一数据源，保证 (用户, 活动) 维度单调
type HistoryReader interface {
	CountByUserAndCampaign(ctx context.Context, userId int64, campaignId int64) (int64, error)
	RecentTierSequence(ctx context.Context, userId int64, campaignId int64, n int) ([]entity.RewardTier, error)
	SpendSince(ctx context.Context, campaignId int64, since time.Time) (int64, error)
	RecentValueStats(ctx context.Context, userId int64, campaignId int64, n int) (cost int64, value int64, err error)
}

// PresetReader 预设中奖队列只读访问
type PresetReader interface {
	NextPending(ctx context.Context, userId int64, campaignId int64) (*model.PresetGrant, error)
}

// AccountReader 积分账户只读访问
type AccountReader interface {
	FindAccount(ctx context.Context, userId int64) (*model.PointsAccount, error)
}

// RateLimiter 抽奖频率限制
type RateLimiter interface {
	Incr(ctx context.Context, userId int64, campaignId int64, window time.Duration) (int64, error)
}

// ConfigReader 配置分组读取
type ConfigReader interface {
	GetGroup(ctx context.Context, groupName string) (map[string]string, error)
}

// Ledger 结算写入器，抽奖链路唯一的状态变更入口
type Ledger interface {
	CommitDraw(ctx context.Context, params *repo.CommitDrawParams) (*model.DrawRecord, bool, error)
}
