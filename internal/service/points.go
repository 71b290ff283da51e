package service

import (
	"context"
	"errors"
	"time"

	"github.com/gzydong/go-lottery/internal/repository/model"
	"github.com/gzydong/go-lottery/internal/repository/repo"
)

var _ IPointsService = (*PointsService)(nil)

// IPointsService 积分服务接口
type IPointsService interface {
	// GetBalance 查询积分余额
	GetBalance(ctx context.Context, userId int64) (*PointsBalanceInfo, error)

	// GetTransactions 查询积分交易流水
	GetTransactions(ctx context.Context, userId int64, page int, pageSize int) (*PointsTransactionsReply, error)

	// Adjust 管理员积分调整（补发/扣除/活动奖励）
	Adjust(ctx context.Context, userId int64, amount int64, remark string) (int64, error)
}

// PointsBalanceInfo 积分余额信息
type PointsBalanceInfo struct {
	UserId      int64 `json:"user_id"`
	Balance     int64 `json:"balance"`
	TotalEarned int64 `json:"total_earned"` // 历史累计获得
}

// PointsTransactionItem 积分交易条目
type PointsTransactionItem struct {
	Id        int64     `json:"id"`
	Amount    int64     `json:"amount"`
	Balance   int64     `json:"balance"`
	Type      string    `json:"type"`
	Remark    string    `json:"remark"`
	CreatedAt time.Time `json:"created_at"`
}

// PointsTransactionsReply 积分流水响应
type PointsTransactionsReply struct {
	Items    []*PointsTransactionItem `json:"items"`
	Total    int64                    `json:"total"`
	Page     int                      `json:"page"`
	PageSize int                      `json:"page_size"`
}

type PointsService struct {
	PointsRepo *repo.Points
}

func NewPointsService(pointsRepo *repo.Points) *PointsService {
	return &PointsService{PointsRepo: pointsRepo}
}

func (s *PointsService) GetBalance(ctx context.Context, userId int64) (*PointsBalanceInfo, error) {
	account, err := s.PointsRepo.FindAccount(ctx, userId)
	if err != nil {
		return nil, err
	}

	return &PointsBalanceInfo{
		UserId:      account.UserId,
		Balance:     account.Balance,
		TotalEarned: account.TotalEarned,
	}, nil
}

func (s *PointsService) GetTransactions(ctx context.Context, userId int64, page int, pageSize int) (*PointsTransactionsReply, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	transactions, total, err := s.PointsRepo.ListTransactions(ctx, userId, page, pageSize)
	if err != nil {
		return nil, err
	}

	items := make([]*PointsTransactionItem, 0, len(transactions))
	for _, tx := range transactions {
		items = append(items, &PointsTransactionItem{
			Id:        tx.Id,
			Amount:    tx.Amount,
			Balance:   tx.Balance,
			Type:      tx.Type,
			Remark:    tx.Remark,
			CreatedAt: tx.CreatedAt,
		})
	}

	return &PointsTransactionsReply{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *PointsService) Adjust(ctx context.Context, userId int64, amount int64, remark string) (int64, error) {
	if amount == 0 {
		return 0, errors.New("调整金额不能为0")
	}
	if remark == "" {
		return 0, errors.New("调整备注不能为空")
	}

	return s.PointsRepo.ApplyChange(ctx, nil, userId, amount, model.PointsTxTypeAdjust, remark)
}
