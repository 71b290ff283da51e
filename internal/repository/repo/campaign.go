package repo

import (
	"context"
	"errors"

	"github.com/gzydong/go-lottery/internal/entity"
	"github.com/gzydong/go-lottery/internal/repository/model"
	"gorm.io/gorm"
)

var ErrCampaignNotFound = errors.New("campaign not found")

type Campaign struct {
	db *gorm.DB
}

func NewCampaign(db *gorm.DB) *Campaign {
	return &Campaign{db: db}
}

// FindById 根据ID查找活动
func (c *Campaign) FindById(ctx context.Context, id int64) (*model.Campaign, error) {
	var campaign model.Campaign
	err := c.db.WithContext(ctx).Where("id = ?", id).First(&campaign).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	return &campaign, nil
}

// ListActivePrizes 查询活动的上架奖品列表，按排序值升序
// 库存过滤由流水线侧完成，这里只过滤上架状态
func (c *Campaign) ListActivePrizes(ctx context.Context, campaignId int64) ([]*model.Prize, error) {
	var prizes []*model.Prize
	err := c.db.WithContext(ctx).
		Where("campaign_id = ? AND status = ?", campaignId, entity.PrizeStatusActive).
		Order("sort_order ASC, id ASC").
		Find(&prizes).Error
	return prizes, err
}

// FindPrize 根据ID查找奖品
func (c *Campaign) FindPrize(ctx context.Context, prizeId int64) (*model.Prize, error) {
	var prize model.Prize
	err := c.db.WithContext(ctx).Where("id = ?", prizeId).First(&prize).Error
	if err != nil {
		return nil, err
	}
	return &prize, nil
}
