package v1

import (
	"context"

	"github.com/gzydong/go-lottery/internal/entity"
	"github.com/gzydong/go-lottery/internal/pkg/core/errorx"
	"github.com/gzydong/go-lottery/internal/pkg/core/middleware"
	"github.com/gzydong/go-lottery/internal/service"
)

type Points struct {
	PointsService service.IPointsService
}

type PointsBalanceRequest struct{}

// GetBalance 积分余额
//
//	@Summary		积分余额
//	@Description	查询用户积分余额
//	@Tags			积分
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	service.PointsBalanceInfo
//	@Router			/api/v1/points/balance [post]
func (p *Points) GetBalance(ctx context.Context, req *PointsBalanceRequest) (*service.PointsBalanceInfo, error) {
	session, _ := middleware.FormContext[entity.WebClaims](ctx)

	return p.PointsService.GetBalance(ctx, int64(session.UserId))
}

type PointsTransactionsRequest struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// GetTransactions 积分流水
//
//	@Summary		积分流水
//	@Description	分页查询积分交易流水
//	@Tags			积分
//	@Accept			json
//	@Produce		json
//	@Param			request	body		PointsTransactionsRequest	true	"流水查询请求"
//	@Success		200		{object}	service.PointsTransactionsReply
//	@Router			/api/v1/points/transactions [post]
func (p *Points) GetTransactions(ctx context.Context, req *PointsTransactionsRequest) (*service.PointsTransactionsReply, error) {
	session, _ := middleware.FormContext[entity.WebClaims](ctx)

	return p.PointsService.GetTransactions(ctx, int64(session.UserId), req.Page, req.PageSize)
}

type PointsAdjustRequest struct {
	UserId int64  `json:"user_id" binding:"required"`
	Amount int64  `json:"amount" binding:"required"`
	Remark string `json:"remark" binding:"required"`
}

type PointsAdjustResponse struct {
	Balance int64 `json:"balance"`
}

// Adjust 积分调整
//
//	@Summary		积分调整
//	@Description	运营补发或扣除用户积分
//	@Tags			积分
//	@Accept			json
//	@Produce		json
//	@Param			request	body		PointsAdjustRequest	true	"调整请求"
//	@Success		200		{object}	PointsAdjustResponse
//	@Router			/api/v1/points/adjust [post]
func (p *Points) Adjust(ctx context.Context, req *PointsAdjustRequest) (*PointsAdjustResponse, error) {
	if req.Amount == 0 {
		return nil, errorx.New(400, "调整金额不能为0")
	}

	balance, err := p.PointsService.Adjust(ctx, req.UserId, req.Amount, req.Remark)
	if err != nil {
		return nil, err
	}

	return &PointsAdjustResponse{Balance: balance}, nil
}
