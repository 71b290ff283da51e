package draw

import (
	"context"
	"errors"

	"github.com/gzydong/go-lottery/internal/entity"
	"github.com/gzydong/go-lottery/internal/repository/repo"
)

// LoadCampaignStage 加载活动与上架奖品
type LoadCampaignStage struct {
	Campaigns CampaignReader
}

func (s *LoadCampaignStage) Name() string   { return "LoadCampaignStage" }
func (s *LoadCampaignStage) Required() bool { return true }
func (s *LoadCampaignStage) Writer() bool   { return false }

func (s *LoadCampaignStage) Execute(ctx context.Context, dc *Context) (any, error) {
	campaign, err := s.Campaigns.FindById(ctx, dc.CampaignId)
	if err != nil {
		if errors.Is(err, repo.ErrCampaignNotFound) {
			return nil, NewError(entity.ErrCampaignNotFound, entity.ErrCodeText[entity.ErrCampaignNotFound])
		}
		return nil, err
	}

	if campaign.Status != entity.CampaignStatusActive {
		return nil, NewError(entity.ErrCampaignInactive, entity.ErrCodeText[entity.ErrCampaignInactive])
	}
	if dc.Now.Before(campaign.StartAt) || !dc.Now.Before(campaign.EndAt) {
		return nil, NewError(entity.ErrCampaignInactive, entity.ErrCodeText[entity.ErrCampaignInactive])
	}

	prizes, err := s.Campaigns.ListActivePrizes(ctx, dc.CampaignId)
	if err != nil {
		return nil, err
	}

	dc.Campaign = campaign
	dc.Prizes = prizes

	return map[string]any{
		"campaign_id": campaign.Id,
		"prize_count": len(prizes),
	}, nil
}
