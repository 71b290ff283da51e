package v1

import (
	"context"

	"github.com/gzydong/go-lottery/internal/entity"
	"github.com/gzydong/go-lottery/internal/pkg/core/errorx"
	"github.com/gzydong/go-lottery/internal/pkg/core/middleware"
	"github.com/gzydong/go-lottery/internal/service"
)

type Lottery struct {
	LotteryService service.ILotteryService
}

type LotteryDrawRequest struct {
	CampaignId     int64  `json:"campaign_id" binding:"required"`
	IdempotencyKey string `json:"idempotency_key" binding:"required"`
	SessionId      string `json:"session_id"`
	RequestId      string `json:"request_id"`
}

// Draw 执行抽奖
//
//	@Summary		执行抽奖
//	@Description	扣减积分并执行一次抽奖决策，幂等键相同的重复请求返回首次结果
//	@Tags			抽奖
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LotteryDrawRequest	true	"抽奖请求"
//	@Success		200		{object}	service.DrawReply
//	@Router			/api/v1/lottery/draw [post]
func (l *Lottery) Draw(ctx context.Context, req *LotteryDrawRequest) (*service.DrawReply, error) {
	session, _ := middleware.FormContext[entity.WebClaims](ctx)
	userId := int64(session.UserId)

	if req.IdempotencyKey == "" {
		return nil, errorx.New(400, "幂等键不能为空")
	}

	return l.LotteryService.Draw(ctx, &service.DrawRequest{
		UserId:         userId,
		CampaignId:     req.CampaignId,
		IdempotencyKey: req.IdempotencyKey,
		SessionId:      req.SessionId,
		RequestId:      req.RequestId,
	})
}

type LotteryDrawTestRequest struct {
	CampaignId     int64  `json:"campaign_id" binding:"required"`
	IdempotencyKey string `json:"idempotency_key" binding:"required"`
	ForceTier      string `json:"force_tier"`
	ForceStrategy  string `json:"force_strategy"`
}

// DrawTest 运营测试抽奖
//
//	@Summary		运营测试抽奖
//	@Description	指定档位或策略执行抽奖，结算口径与常规抽奖一致
//	@Tags			抽奖
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LotteryDrawTestRequest	true	"测试抽奖请求"
//	@Success		200		{object}	service.DrawReply
//	@Router			/api/v1/lottery/draw-test [post]
func (l *Lottery) DrawTest(ctx context.Context, req *LotteryDrawTestRequest) (*service.DrawReply, error) {
	session, _ := middleware.FormContext[entity.WebClaims](ctx)
	userId := int64(session.UserId)

	if req.IdempotencyKey == "" {
		return nil, errorx.New(400, "幂等键不能为空")
	}

	if req.ForceTier == "" && req.ForceStrategy == "" {
		return nil, errorx.New(400, "必须指定强制档位或强制策略")
	}

	forceTier := entity.RewardTier(req.ForceTier)
	if req.ForceTier != "" && !forceTier.Valid() {
		return nil, errorx.New(400, "无效的强制档位: %s", req.ForceTier)
	}

	return l.LotteryService.Draw(ctx, &service.DrawRequest{
		UserId:         userId,
		CampaignId:     req.CampaignId,
		IdempotencyKey: req.IdempotencyKey,
		ForceTier:      forceTier,
		ForceStrategy:  req.ForceStrategy,
	})
}

type LotteryHistoryRequest struct {
	CampaignId int64 `json:"campaign_id"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
}

// GetHistory 抽奖历史
//
//	@Summary		抽奖历史
//	@Description	分页查询用户抽奖历史
//	@Tags			抽奖
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LotteryHistoryRequest	true	"历史查询请求"
//	@Success		200		{object}	service.DrawHistoryReply
//	@Router			/api/v1/lottery/history [post]
func (l *Lottery) GetHistory(ctx context.Context, req *LotteryHistoryRequest) (*service.DrawHistoryReply, error) {
	session, _ := middleware.FormContext[entity.WebClaims](ctx)

	return l.LotteryService.GetDrawHistory(ctx, int64(session.UserId), req.CampaignId, req.Page, req.PageSize)
}

type LotteryCampaignRequest struct {
	CampaignId int64 `json:"campaign_id" binding:"required"`
}

// GetCampaign 活动详情
//
//	@Summary		活动详情
//	@Description	查询活动配置详情
//	@Tags			抽奖
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LotteryCampaignRequest	true	"活动查询请求"
//	@Success		200		{object}	service.CampaignDetail
//	@Router			/api/v1/lottery/campaign/detail [post]
func (l *Lottery) GetCampaign(ctx context.Context, req *LotteryCampaignRequest) (*service.CampaignDetail, error) {
	return l.LotteryService.GetCampaignDetail(ctx, req.CampaignId)
}

type LotteryPrizeListResponse struct {
	Items []*service.PrizeInfo `json:"items"`
}

// GetPrizeList 奖品池展示
//
//	@Summary		奖品池展示
//	@Description	查询活动在售奖品及概率权重
//	@Tags			抽奖
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LotteryCampaignRequest	true	"活动查询请求"
//	@Success		200		{object}	LotteryPrizeListResponse
//	@Router			/api/v1/lottery/campaign/prizes [post]
func (l *Lottery) GetPrizeList(ctx context.Context, req *LotteryCampaignRequest) (*LotteryPrizeListResponse, error) {
	items, err := l.LotteryService.ListPrizes(ctx, req.CampaignId)
	if err != nil {
		return nil, err
	}

	return &LotteryPrizeListResponse{Items: items}, nil
}
