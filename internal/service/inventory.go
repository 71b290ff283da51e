package service

import (
	"context"
	"time"

	"github.com/gzydong/go-lottery/internal/repository/model"
	"github.com/gzydong/go-lottery/internal/repository/repo"
)

var _ IInventoryService = (*InventoryService)(nil)

// IInventoryService 用户奖品库存服务接口
type IInventoryService interface {
	// List 查询用户奖品库存
	List(ctx context.Context, userId int64, status string, page int, pageSize int) (*InventoryListReply, error)

	// Use 核销库存物品，每件物品只能使用一次
	Use(ctx context.Context, userId int64, itemId int64) error
}

// InventoryItem 库存物品
type InventoryItem struct {
	Id         int64      `json:"id"`
	CampaignId int64      `json:"campaign_id"`
	PrizeId    int64      `json:"prize_id"`
	PrizeName  string     `json:"prize_name"`
	Status     string     `json:"status"`
	UsedAt     *time.Time `json:"used_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// InventoryListReply 库存列表响应
type InventoryListReply struct {
	Items    []*InventoryItem `json:"items"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

type InventoryService struct {
	InventoryRepo *repo.Inventory
}

func NewInventoryService(inventoryRepo *repo.Inventory) *InventoryService {
	return &InventoryService{InventoryRepo: inventoryRepo}
}

func (s *InventoryService) List(ctx context.Context, userId int64, status string, page int, pageSize int) (*InventoryListReply, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	if status != "" && status != model.InventoryStatusUnused && status != model.InventoryStatusUsed && status != model.InventoryStatusExpired {
		status = ""
	}

	records, total, err := s.InventoryRepo.ListByUser(ctx, userId, status, page, pageSize)
	if err != nil {
		return nil, err
	}

	items := make([]*InventoryItem, 0, len(records))
	for _, record := range records {
		items = append(items, &InventoryItem{
			Id:         record.Id,
			CampaignId: record.CampaignId,
			PrizeId:    record.PrizeId,
			PrizeName:  record.PrizeName,
			Status:     record.Status,
			UsedAt:     record.UsedAt,
			CreatedAt:  record.CreatedAt,
		})
	}

	return &InventoryListReply{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *InventoryService) Use(ctx context.Context, userId int64, itemId int64) error {
	return s.InventoryRepo.Use(ctx, userId, itemId)
}
