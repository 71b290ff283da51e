package service

import (
	"context"
	"time"

	"github.com/gzydong/go-lottery/config"
	"github.com/gzydong/go-lottery/internal/entity"
	"github.com/gzydong/go-lottery/internal/repository/cache"
	"github.com/gzydong/go-lottery/internal/repository/repo"
	"github.com/gzydong/go-lottery/internal/service/draw"
)

var _ ILotteryService = (*LotteryService)(nil)

// ILotteryService 抽奖服务接口
type ILotteryService interface {
	// Draw 执行一次抽奖决策
	Draw(ctx context.Context, req *DrawRequest) (*DrawReply, error)

	// GetDrawHistory 查询用户抽奖历史
	GetDrawHistory(ctx context.Context, userId int64, campaignId int64, page int, pageSize int) (*DrawHistoryReply, error)

	// GetCampaignDetail 查询活动配置详情
	GetCampaignDetail(ctx context.Context, campaignId int64) (*CampaignDetail, error)

	// ListPrizes 查询活动奖品池展示信息
	ListPrizes(ctx context.Context, campaignId int64) ([]*PrizeInfo, error)
}

// DrawRequest 抽奖请求
type DrawRequest struct {
	UserId         int64             `json:"user_id"`
	CampaignId     int64             `json:"campaign_id"`
	IdempotencyKey string            `json:"idempotency_key"`
	SessionId      string            `json:"session_id"`
	RequestId      string            `json:"request_id"`
	ForceTier      entity.RewardTier `json:"force_tier,omitempty"`     // 管理测试路径
	ForceStrategy  string            `json:"force_strategy,omitempty"` // 管理测试路径
}

// DrawResult 中奖结果
type DrawResult struct {
	PrizeId        int64  `json:"prize_id"` // 0 表示未中奖
	PrizeName      string `json:"prize_name,omitempty"`
	RewardTier     string `json:"reward_tier"`
	RewardTierText string `json:"reward_tier_text"`
	DecisionSource string `json:"decision_source"`
	CostCharged    int64  `json:"cost_charged"`
}

// DrawError 抽奖失败信息
type DrawError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DrawReply 抽奖响应
type DrawReply struct {
	Success         bool           `json:"success"`
	Result          *DrawResult    `json:"draw_result,omitempty"`
	Replayed        bool           `json:"replayed"` // 幂等回放标记
	StagesExecuted  []string       `json:"stages_executed"`
	StageData       map[string]any `json:"stage_data,omitempty"`
	TotalDurationMs int64          `json:"total_duration_ms"`
	Error           *DrawError     `json:"error,omitempty"`
}

// DrawHistoryItem 抽奖历史条目
type DrawHistoryItem struct {
	Id             int64     `json:"id"`
	CampaignId     int64     `json:"campaign_id"`
	PrizeId        int64     `json:"prize_id"`
	RewardTier     string    `json:"reward_tier"`
	DecisionSource string    `json:"decision_source"`
	CostCharged    int64     `json:"cost_charged"`
	CreatedAt      time.Time `json:"created_at"`
}

// DrawHistoryReply 抽奖历史响应
type DrawHistoryReply struct {
	Items    []*DrawHistoryItem `json:"items"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

// CampaignDetail 活动详情
type CampaignDetail struct {
	Id            int64     `json:"id"`
	Title         string    `json:"title"`
	Status        string    `json:"status"`
	DrawCost      int64     `json:"draw_cost"`
	PityEnabled   bool      `json:"pity_enabled"`
	PityThreshold int       `json:"pity_threshold"`
	StartAt       time.Time `json:"start_at"`
	EndAt         time.Time `json:"end_at"`
}

// PrizeInfo 奖品展示信息
type PrizeInfo struct {
	Id        int64  `json:"id"`
	Name      string `json:"name"`
	Tier      string `json:"tier"`
	TierText  string `json:"tier_text"`
	Stock     int    `json:"stock"`
	Weight    int64  `json:"weight"` // 概率透明展示
	SortOrder int    `json:"sort_order"`
}

// LotteryService 抽奖服务
// 每次请求构建一份不可变配置快照交给流水线，活动进行中的配置调整不影响在途决策
type LotteryService struct {
	pipeline *draw.Pipeline

	CampaignRepo   *repo.Campaign
	DrawRecordRepo *repo.DrawRecord
	ConfigSource   *ConfigSource
	Rng            draw.RandomSource
}

// NewLotteryService 组装抽奖服务
// 流水线的单写入者约束在这里的构造期得到校验
func NewLotteryService(
	conf *config.Config,
	campaignRepo *repo.Campaign,
	drawRecordRepo *repo.DrawRecord,
	pointsRepo *repo.Points,
	presetRepo *repo.Preset,
	settleRepo *repo.Settle,
	configSource *ConfigSource,
	limiter *cache.RateLimitStorage,
) (*LotteryService, error) {
	rateLimitMax := int64(30)
	rateLimitWindow := time.Minute
	if conf.Lottery != nil {
		if conf.Lottery.RateLimitMax > 0 {
			rateLimitMax = conf.Lottery.RateLimitMax
		}
		if conf.Lottery.RateLimitWindowSeconds > 0 {
			rateLimitWindow = time.Duration(conf.Lottery.RateLimitWindowSeconds) * time.Second
		}
	}

	var drawLimiter draw.RateLimiter
	if limiter != nil {
		drawLimiter = limiter
	}

	pipeline, err := draw.NewDrawPipeline(draw.Dependencies{
		Campaigns:       campaignRepo,
		Accounts:        pointsRepo,
		Limiter:         drawLimiter,
		Presets:         presetRepo,
		History:         drawRecordRepo,
		Ledger:          settleRepo,
		RateLimitMax:    rateLimitMax,
		RateLimitWindow: rateLimitWindow,
	})
	if err != nil {
		return nil, err
	}

	return &LotteryService{
		pipeline:       pipeline,
		CampaignRepo:   campaignRepo,
		DrawRecordRepo: drawRecordRepo,
		ConfigSource:   configSource,
		Rng:            draw.DefaultRNG(),
	}, nil
}

// Draw 执行一次抽奖决策
func (s *LotteryService) Draw(ctx context.Context, req *DrawRequest) (*DrawReply, error) {
	settings, err := draw.LoadSettings(ctx, s.ConfigSource)
	if err != nil {
		stageErr := draw.AsError(err)
		return &DrawReply{
			Success: false,
			Error:   &DrawError{Code: stageErr.Code, Message: stageErr.Message},
		}, nil
	}

	dc := draw.NewContext(draw.Request{
		UserId:         req.UserId,
		CampaignId:     req.CampaignId,
		IdempotencyKey: req.IdempotencyKey,
		SessionId:      req.SessionId,
		RequestId:      req.RequestId,
		ForceTier:      req.ForceTier,
		ForceStrategy:  req.ForceStrategy,
	}, settings, s.Rng)

	result := s.pipeline.Run(ctx, dc)

	reply := &DrawReply{
		Success:         result.Success,
		StagesExecuted:  result.StagesExecuted,
		StageData:       result.StageData,
		TotalDurationMs: result.TotalDuration.Milliseconds(),
	}

	if !result.Success {
		reply.Error = &DrawError{Code: result.Err.Code, Message: result.Err.Message}
		return reply, nil
	}

	reply.Replayed = dc.Replayed
	reply.Result = s.buildResult(ctx, dc)
	return reply, nil
}

// buildResult 由已提交的抽奖流水组装响应
// 幂等回放时流水可能与本次上下文的随机选择不同，一律以流水为准
func (s *LotteryService) buildResult(ctx context.Context, dc *draw.Context) *DrawResult {
	record := dc.Record
	tier := entity.RewardTier(record.RewardTier)

	result := &DrawResult{
		PrizeId:        record.PrizeId,
		RewardTier:     record.RewardTier,
		RewardTierText: entity.RewardTierText[tier],
		DecisionSource: record.DecisionSource,
		CostCharged:    record.CostCharged,
	}

	if record.PrizeId > 0 {
		if dc.ChosenPrize != nil && dc.ChosenPrize.Id == record.PrizeId {
			result.PrizeName = dc.ChosenPrize.Name
		} else if prize, err := s.CampaignRepo.FindPrize(ctx, record.PrizeId); err == nil {
			result.PrizeName = prize.Name
		}
	}
	return result
}

// GetDrawHistory 查询用户抽奖历史
func (s *LotteryService) GetDrawHistory(ctx context.Context, userId int64, campaignId int64, page int, pageSize int) (*DrawHistoryReply, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	records, total, err := s.DrawRecordRepo.ListByUser(ctx, userId, campaignId, page, pageSize)
	if err != nil {
		return nil, err
	}

	items := make([]*DrawHistoryItem, 0, len(records))
	for _, record := range records {
		items = append(items, &DrawHistoryItem{
			Id:             record.Id,
			CampaignId:     record.CampaignId,
			PrizeId:        record.PrizeId,
			RewardTier:     record.RewardTier,
			DecisionSource: record.DecisionSource,
			CostCharged:    record.CostCharged,
			CreatedAt:      record.CreatedAt,
		})
	}

	return &DrawHistoryReply{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// GetCampaignDetail 查询活动配置详情
func (s *LotteryService) GetCampaignDetail(ctx context.Context, campaignId int64) (*CampaignDetail, error) {
	campaign, err := s.CampaignRepo.FindById(ctx, campaignId)
	if err != nil {
		return nil, err
	}

	threshold := campaign.PityThreshold
	if threshold <= 0 {
		threshold = entity.DefaultPityThreshold
	}

	return &CampaignDetail{
		Id:            campaign.Id,
		Title:         campaign.Title,
		Status:        campaign.Status,
		DrawCost:      campaign.DrawCost,
		PityEnabled:   campaign.PityEnabled,
		PityThreshold: threshold,
		StartAt:       campaign.StartAt,
		EndAt:         campaign.EndAt,
	}, nil
}

// ListPrizes 查询活动奖品池展示信息
func (s *LotteryService) ListPrizes(ctx context.Context, campaignId int64) ([]*PrizeInfo, error) {
	prizes, err := s.CampaignRepo.ListActivePrizes(ctx, campaignId)
	if err != nil {
		return nil, err
	}

	items := make([]*PrizeInfo, 0, len(prizes))
	for _, prize := range prizes {
		items = append(items, &PrizeInfo{
			Id:        prize.Id,
			Name:      prize.Name,
			Tier:      prize.Tier,
			TierText:  entity.RewardTierText[entity.RewardTier(prize.Tier)],
			Stock:     prize.Stock,
			Weight:    prize.Weight,
			SortOrder: prize.SortOrder,
		})
	}
	return items, nil
}
