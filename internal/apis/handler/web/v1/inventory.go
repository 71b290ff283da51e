package v1

import (
	"context"

	"github.com/gzydong/go-lottery/internal/entity"
	"github.com/gzydong/go-lottery/internal/pkg/core/errorx"
	"github.com/gzydong/go-lottery/internal/pkg/core/middleware"
	"github.com/gzydong/go-lottery/internal/service"
)

type Inventory struct {
	InventoryService service.IInventoryService
}

type InventoryListRequest struct {
	Status   string `json:"status"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

// GetList 奖品库存列表
//
//	@Summary		奖品库存列表
//	@Description	分页查询用户已获得的奖品
//	@Tags			库存
//	@Accept			json
//	@Produce		json
//	@Param			request	body		InventoryListRequest	true	"库存查询请求"
//	@Success		200		{object}	service.InventoryListReply
//	@Router			/api/v1/inventory/list [post]
func (i *Inventory) GetList(ctx context.Context, req *InventoryListRequest) (*service.InventoryListReply, error) {
	session, _ := middleware.FormContext[entity.WebClaims](ctx)

	return i.InventoryService.List(ctx, int64(session.UserId), req.Status, req.Page, req.PageSize)
}

type InventoryUseRequest struct {
	ItemId int64 `json:"item_id" binding:"required"`
}

type InventoryUseResponse struct {
	Success bool `json:"success"`
}

// Use 核销奖品
//
//	@Summary		核销奖品
//	@Description	核销库存中的奖品，每件奖品只能核销一次
//	@Tags			库存
//	@Accept			json
//	@Produce		json
//	@Param			request	body		InventoryUseRequest	true	"核销请求"
//	@Success		200		{object}	InventoryUseResponse
//	@Router			/api/v1/inventory/use [post]
func (i *Inventory) Use(ctx context.Context, req *InventoryUseRequest) (*InventoryUseResponse, error) {
	session, _ := middleware.FormContext[entity.WebClaims](ctx)

	if req.ItemId <= 0 {
		return nil, errorx.New(400, "库存物品ID无效")
	}

	if err := i.InventoryService.Use(ctx, int64(session.UserId), req.ItemId); err != nil {
		return nil, err
	}

	return &InventoryUseResponse{Success: true}, nil
}
