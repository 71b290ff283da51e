package draw

import (
	"context"
	"errors"
	"time"

	"github.com/gzydong/go-lottery/internal/entity"
	"github.com/gzydong/go-lottery/internal/repository/model"
	"github.com/gzydong/go-lottery/internal/repository/repo"
)

// EligibilityStage 抽奖资格校验
// 校验账户状态、积分余额与抽奖频率，仅产生通过/拒绝信号
type EligibilityStage struct {
	Accounts AccountReader
	Limiter  RateLimiter // 为空时不做频率限制

	RateLimitMax    int64
	RateLimitWindow time.Duration
}

func (s *EligibilityStage) Name() string   { return "EligibilityStage" }
func (s *EligibilityStage) Required() bool { return true }
func (s *EligibilityStage) Writer() bool   { return false }

func (s *EligibilityStage) Execute(ctx context.Context, dc *Context) (any, error) {
	account, err := s.Accounts.FindAccount(ctx, dc.UserId)
	if err != nil {
		if errors.Is(err, repo.ErrAccountNotFound) {
			return nil, NewError(entity.ErrUserIneligible, entity.ErrCodeText[entity.ErrUserIneligible])
		}
		return nil, err
	}

	if account.Status != model.PointsAccountStatusNormal {
		return nil, NewError(entity.ErrUserIneligible, entity.ErrCodeText[entity.ErrUserIneligible])
	}

	if account.Balance < dc.Campaign.DrawCost {
		return nil, NewError(entity.ErrInsufficientBalance, entity.ErrCodeText[entity.ErrInsufficientBalance])
	}

	if s.Limiter != nil && s.RateLimitMax > 0 {
		num, err := s.Limiter.Incr(ctx, dc.UserId, dc.CampaignId, s.RateLimitWindow)
		if err != nil {
			return nil, err
		}
		if num > s.RateLimitMax {
			return nil, NewError(entity.ErrRateLimitExceeded, entity.ErrCodeText[entity.ErrRateLimitExceeded])
		}
	}

	dc.Balance = account.Balance

	return map[string]any{
		"balance": account.Balance,
	}, nil
}
