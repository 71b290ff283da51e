package repo

import (
	"context"
	"errors"
	"time"

	"github.com/gzydong/go-lottery/internal/repository/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrAccountNotFound = errors.New("points account not found")
	ErrBalanceShort    = errors.New("points balance not enough")
	ErrAccountFrozen   = errors.New("points account frozen")
)

type Points struct {
	db *gorm.DB
}

func NewPoints(db *gorm.DB) *Points {
	return &Points{db: db}
}

// FindAccount 查询用户积分账户
func (p *Points) FindAccount(ctx context.Context, userId int64) (*model.PointsAccount, error) {
	var account model.PointsAccount
	err := p.db.WithContext(ctx).Where("user_id = ?", userId).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

// ListTransactions 分页查询积分交易流水，新在前
func (p *Points) ListTransactions(ctx context.Context, userId int64, page int, pageSize int) ([]*model.PointsTransaction, int64, error) {
	query := p.db.WithContext(ctx).
		Model(&model.PointsTransaction{}).
		Where("user_id = ?", userId)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []*model.PointsTransaction
	err := query.
		Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&items).Error
	return items, total, err
}

// ApplyChange 在事务内变更账户余额并写入交易流水
// 加行锁后校验余额，支出金额传负值
func (p *Points) ApplyChange(ctx context.Context, tx *gorm.DB, userId int64, amount int64, txType string, remark string) (int64, error) {
	if tx == nil {
		tx = p.db.WithContext(ctx)
	}

	var account model.PointsAccount
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userId).
		First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrAccountNotFound
		}
		return 0, err
	}

	if account.Status == model.PointsAccountStatusFrozen {
		return 0, ErrAccountFrozen
	}

	newBalance := account.Balance + amount
	if newBalance < 0 {
		return 0, ErrBalanceShort
	}

	updates := map[string]any{
		"balance":    newBalance,
		"updated_at": time.Now(),
	}
	if amount > 0 {
		updates["total_earned"] = gorm.Expr("total_earned + ?", amount)
	}

	if err := tx.Model(&model.PointsAccount{}).
		Where("user_id = ?", userId).
		Updates(updates).Error; err != nil {
		return 0, err
	}

	transaction := &model.PointsTransaction{
		UserId:    userId,
		Amount:    amount,
		Balance:   newBalance,
		Type:      txType,
		Remark:    remark,
		CreatedAt: time.Now(),
	}
	if err := tx.Create(transaction).Error; err != nil {
		return 0, err
	}

	return newBalance, nil
}
