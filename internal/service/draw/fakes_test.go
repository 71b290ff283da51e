package draw

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gzydong/go-lottery/internal/entity"
	"github.com/gzydong/go-lottery/internal/repository/model"
	"github.com/gzydong/go-lottery/internal/repository/repo"
)

type fakeCampaigns struct {
	campaign *model.Campaign
	prizes   []*model.Prize
}

func (f *fakeCampaigns) FindById(ctx context.Context, id int64) (*model.Campaign, error) {
	if f.campaign == nil || f.campaign.Id != id {
		return nil, repo.ErrCampaignNotFound
	}
	return f.campaign, nil
}

func (f *fakeCampaigns) ListActivePrizes(ctx context.Context, campaignId int64) ([]*model.Prize, error) {
	return f.prizes, nil
}

type fakeAccounts struct {
	accounts map[int64]*model.PointsAccount
}

func (f *fakeAccounts) FindAccount(ctx context.Context, userId int64) (*model.PointsAccount, error) {
	account, ok := f.accounts[userId]
	if !ok {
		return nil, repo.ErrAccountNotFound
	}
	return account, nil
}

// drawValueStat 单次抽奖的投入与回报
type drawValueStat struct {
	cost  int64
	value int64
}

// repeatStats 构造 n 条相同投入回报的抽奖统计
func repeatStats(n int, cost int64, value int64) []drawValueStat {
	stats := make([]drawValueStat, n)
	for i := range stats {
		stats[i] = drawValueStat{cost: cost, value: value}
	}
	return stats
}

type fakeHistory struct {
	count       int64
	counts      map[[2]int64]int64 // (用户, 活动) -> 抽奖次数；nil 时统一返回 count
	recent      []entity.RewardTier
	windowSpend int64
	stats       []drawValueStat // 新在前，统计时只累计前 n 条

	// onCount 在计数查询前调用，用于断言查询是否发生
	onCount func()
}

func (f *fakeHistory) CountByUserAndCampaign(ctx context.Context, userId int64, campaignId int64) (int64, error) {
	if f.onCount != nil {
		f.onCount()
	}
	if f.counts != nil {
		return f.counts[[2]int64{userId, campaignId}], nil
	}
	return f.count, nil
}

func (f *fakeHistory) RecentTierSequence(ctx context.Context, userId int64, campaignId int64, n int) ([]entity.RewardTier, error) {
	if n < len(f.recent) {
		return f.recent[:n], nil
	}
	return f.recent, nil
}

func (f *fakeHistory) SpendSince(ctx context.Context, campaignId int64, since time.Time) (int64, error) {
	return f.windowSpend, nil
}

func (f *fakeHistory) RecentValueStats(ctx context.Context, userId int64, campaignId int64, n int) (int64, int64, error) {
	limit := n
	if limit > len(f.stats) {
		limit = len(f.stats)
	}

	var cost, value int64
	for _, s := range f.stats[:limit] {
		cost += s.cost
		value += s.value
	}
	return cost, value, nil
}

type fakePresets struct {
	grant *model.PresetGrant
}

func (f *fakePresets) NextPending(ctx context.Context, userId int64, campaignId int64) (*model.PresetGrant, error) {
	if f.grant != nil && f.grant.UserId == userId && f.grant.CampaignId == campaignId {
		return f.grant, nil
	}
	return nil, nil
}

type fakeLimiter struct {
	mu      sync.Mutex
	current int64
}

func (f *fakeLimiter) Incr(ctx context.Context, userId int64, campaignId int64, window time.Duration) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current++
	return f.current, nil
}

// fakeLedger 内存结算器，模拟库存/预算守卫与幂等回放
type fakeLedger struct {
	mu      sync.Mutex
	stock   map[int64]int
	budget  int64
	records map[string]*model.DrawRecord
	nextId  int64
}

func newFakeLedger(prizes []*model.Prize, budget int64) *fakeLedger {
	stock := make(map[int64]int, len(prizes))
	for _, p := range prizes {
		stock[p.Id] = p.Stock
	}
	return &fakeLedger{
		stock:   stock,
		budget:  budget,
		records: make(map[string]*model.DrawRecord),
	}
}

func (f *fakeLedger) CommitDraw(ctx context.Context, params *repo.CommitDrawParams) (*model.DrawRecord, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if existing, ok := f.records[params.IdempotencyKey]; ok {
		return existing, true, nil
	}

	if params.PrizeId > 0 {
		if f.stock[params.PrizeId] <= 0 {
			return nil, false, fmt.Errorf("prize %d: %w", params.PrizeId, repo.ErrStockDepleted)
		}
		if f.budget < params.PrizeValue {
			return nil, false, repo.ErrBudgetDepleted
		}
		f.stock[params.PrizeId]--
		f.budget -= params.PrizeValue
	}

	f.nextId++
	record := &model.DrawRecord{
		Id:             f.nextId,
		IdempotencyKey: params.IdempotencyKey,
		UserId:         params.UserId,
		CampaignId:     params.CampaignId,
		PrizeId:        params.PrizeId,
		RewardTier:     string(params.RewardTier),
		DecisionSource: string(params.DecisionSource),
		CostCharged:    params.Cost,
		PrizeValue:     params.PrizeValue,
		SessionId:      params.SessionId,
		RequestId:      params.RequestId,
		CreatedAt:      time.Now(),
	}
	f.records[params.IdempotencyKey] = record

	return record, false, nil
}

func testCampaign() *model.Campaign {
	return &model.Campaign{
		Id:             1,
		Title:          "测试活动",
		Status:         entity.CampaignStatusActive,
		DrawCost:       100,
		DiscountRate:   1,
		PityEnabled:    true,
		PityThreshold:  10,
		TotalBudget:    1000000,
		RemainBudget:   1000000,
		FallbackWeight: 900,
		StartAt:        time.Now().Add(-time.Hour),
		EndAt:          time.Now().Add(time.Hour),
	}
}

func testPrizes() []*model.Prize {
	return []*model.Prize{
		{Id: 101, CampaignId: 1, Name: "高档奖品", Tier: string(entity.RewardTierHigh), Stock: 100000, Weight: 100, SortOrder: 1, Value: 20000, Status: entity.PrizeStatusActive},
		{Id: 102, CampaignId: 1, Name: "中档奖品", Tier: string(entity.RewardTierMid), Stock: 100000, Weight: 300, SortOrder: 2, Value: 2000, Status: entity.PrizeStatusActive},
		{Id: 103, CampaignId: 1, Name: "低档奖品", Tier: string(entity.RewardTierLow), Stock: 100000, Weight: 600, SortOrder: 3, Value: 100, Status: entity.PrizeStatusActive},
	}
}

func testSettings() *Settings {
	return NewSettings(
		BudgetThresholds{HealthyRatio: 0.6, WarnRatio: 0.3, CriticalRatio: 0.1},
		PressureThresholds{WindowMinutes: 60, P1Ratio: 0.05, P2Ratio: 0.15},
		FullMatrix(MatrixEntry{BudgetCapMult: 1, EmptyBoostMult: 1}),
	)
}

type testEnv struct {
	campaigns *fakeCampaigns
	accounts  *fakeAccounts
	history   *fakeHistory
	presets   *fakePresets
	ledger    *fakeLedger
	pipeline  *Pipeline
}

func newTestEnv(campaign *model.Campaign, prizes []*model.Prize) *testEnv {
	env := &testEnv{
		campaigns: &fakeCampaigns{campaign: campaign, prizes: prizes},
		accounts: &fakeAccounts{accounts: map[int64]*model.PointsAccount{
			1: {UserId: 1, Balance: 1000000, Status: model.PointsAccountStatusNormal},
		}},
		history: &fakeHistory{},
		presets: &fakePresets{},
		ledger:  newFakeLedger(prizes, campaign.TotalBudget),
	}

	pipeline, err := NewDrawPipeline(Dependencies{
		Campaigns: env.campaigns,
		Accounts:  env.accounts,
		Presets:   env.presets,
		History:   env.history,
		Ledger:    env.ledger,
	})
	if err != nil {
		panic(err)
	}
	env.pipeline = pipeline

	return env
}

func (e *testEnv) draw(key string, rng RandomSource) (*Context, *Result) {
	dc := NewContext(Request{
		UserId:         1,
		CampaignId:     1,
		IdempotencyKey: key,
	}, testSettings(), rng)

	return dc, e.pipeline.Run(context.Background(), dc)
}
