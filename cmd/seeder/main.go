package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gzydong/go-lottery/config"
	"github.com/gzydong/go-lottery/internal/entity"
	"github.com/gzydong/go-lottery/internal/pkg/jwtutil"
	"github.com/gzydong/go-lottery/internal/provider"
	"github.com/gzydong/go-lottery/internal/repository/model"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

type UserCredentials struct {
	UserId int64  `json:"user_id"`
	Token  string `json:"token"`
}

func main() {
	// 1. Load Config
	conf := config.New("./config.yaml")

	// 2. Init DB
	db := provider.NewMySQLClient(conf)

	if err := db.AutoMigrate(
		&model.Campaign{},
		&model.Prize{},
		&model.DrawRecord{},
		&model.DecisionSnapshot{},
		&model.PresetGrant{},
		&model.PointsAccount{},
		&model.PointsTransaction{},
		&model.ConfigItem{},
		&model.UserInventory{},
	); err != nil {
		log.Fatalf("Failed to migrate tables: %v", err)
	}

	fmt.Println("Starting lottery seeding...")

	campaign := seedCampaign(db)
	prizes := seedPrizes(db, campaign.Id)
	seedGuaranteePrize(db, campaign, prizes)
	seedConfig(db)
	seedPresetGrant(db, campaign.Id, prizes)
	credentials := seedAccounts(db, conf)

	// Write to JSON file
	file, err := os.Create("./users.json")
	if err != nil {
		log.Fatalf("Failed to create users.json: %v", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(credentials); err != nil {
		log.Fatalf("Failed to encode credentials: %v", err)
	}

	fmt.Println("Seeding completed. Credentials saved to users.json")
}

func seedCampaign(db *gorm.DB) *model.Campaign {
	var count int64
	db.Model(&model.Campaign{}).Where("title = ?", "周年庆积分抽奖").Count(&count)

	campaign := &model.Campaign{}
	if count > 0 {
		db.Where("title = ?", "周年庆积分抽奖").First(campaign)
		fmt.Printf("Campaign already exists (ID: %d), using existing campaign\n", campaign.Id)
		return campaign
	}

	campaign = &model.Campaign{
		Title:           "周年庆积分抽奖",
		Status:          entity.CampaignStatusActive,
		DrawCost:        100,
		DiscountRate:    1,
		PityEnabled:     true,
		PityThreshold:   entity.DefaultPityThreshold,
		TotalBudget:     1000000,
		RemainBudget:    1000000,
		OverdrawAllowed: false,
		FallbackWeight:  600,
		StartAt:         time.Now().Add(-time.Hour),
		EndAt:           time.Now().AddDate(0, 1, 0),
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := db.Create(campaign).Error; err != nil {
		log.Fatalf("Failed to create campaign: %v", err)
	}

	fmt.Printf("Created campaign %s (ID: %d)\n", campaign.Title, campaign.Id)
	return campaign
}

func seedPrizes(db *gorm.DB, campaignId int64) []*model.Prize {
	var count int64
	db.Model(&model.Prize{}).Where("campaign_id = ?", campaignId).Count(&count)
	if count > 0 {
		var prizes []*model.Prize
		db.Where("campaign_id = ?", campaignId).Order("sort_order asc, id asc").Find(&prizes)
		fmt.Printf("Prizes already exist (%d), using existing prizes\n", len(prizes))
		return prizes
	}

	prizes := []*model.Prize{
		{Name: "扫地机器人", Tier: string(entity.RewardTierHigh), Stock: 10, TotalStock: 10, Weight: 10, SortOrder: 1, Value: 20000},
		{Name: "保温杯", Tier: string(entity.RewardTierMid), Stock: 200, TotalStock: 200, Weight: 40, SortOrder: 2, Value: 2000},
		{Name: "50积分券", Tier: string(entity.RewardTierMid), Stock: 500, TotalStock: 500, Weight: 60, SortOrder: 3, Value: 500},
		{Name: "10积分券", Tier: string(entity.RewardTierLow), Stock: 5000, TotalStock: 5000, Weight: 150, SortOrder: 4, Value: 100},
		{Name: "优惠券", Tier: string(entity.RewardTierLow), Stock: 10000, TotalStock: 10000, Weight: 140, SortOrder: 5, Value: 50},
	}

	for _, prize := range prizes {
		prize.CampaignId = campaignId
		prize.Status = entity.PrizeStatusActive
		prize.CreatedAt = time.Now()
		prize.UpdatedAt = time.Now()

		if err := db.Create(prize).Error; err != nil {
			log.Fatalf("Failed to create prize %s: %v", prize.Name, err)
		}
		fmt.Printf("Created prize %s (ID: %d)\n", prize.Name, prize.Id)
	}

	return prizes
}

// seedGuaranteePrize 保底奖品指向第一个中档奖品
func seedGuaranteePrize(db *gorm.DB, campaign *model.Campaign, prizes []*model.Prize) {
	if campaign.GuaranteePrizeId > 0 {
		return
	}

	prize, ok := lo.Find(prizes, func(p *model.Prize) bool {
		return p.Tier == string(entity.RewardTierMid)
	})
	if !ok {
		return
	}

	db.Model(&model.Campaign{}).Where("id = ?", campaign.Id).Update("guarantee_prize_id", prize.Id)
	campaign.GuaranteePrizeId = prize.Id
	fmt.Printf("Campaign guarantee prize set to %s (ID: %d)\n", prize.Name, prize.Id)
}

func seedConfig(db *gorm.DB) {
	var count int64
	db.Model(&model.ConfigItem{}).Count(&count)
	if count > 0 {
		fmt.Println("Config items already exist, skipping")
		return
	}

	type item struct {
		group string
		name  string
		value string
	}

	items := []item{
		{entity.ConfigGroupBudgetTier, "healthy_ratio", "0.6"},
		{entity.ConfigGroupBudgetTier, "warn_ratio", "0.3"},
		{entity.ConfigGroupBudgetTier, "critical_ratio", "0.1"},

		{entity.ConfigGroupPressureTier, "window_minutes", "60"},
		{entity.ConfigGroupPressureTier, "p1_ratio", "0.05"},
		{entity.ConfigGroupPressureTier, "p2_ratio", "0.15"},

		{entity.ConfigGroupPity, "default_threshold", "10"},

		{entity.ConfigGroupLuckDebt, "enabled", "true"},
		{entity.ConfigGroupLuckDebt, "window", "20"},
		{entity.ConfigGroupLuckDebt, "threshold", "0.8"},
		{entity.ConfigGroupLuckDebt, "boost", "1.5"},

		{entity.ConfigGroupAntiEmpty, "enabled", "true"},
		{entity.ConfigGroupAntiEmpty, "max_streak", "5"},

		{entity.ConfigGroupAntiHigh, "enabled", "true"},
		{entity.ConfigGroupAntiHigh, "max_streak", "2"},

		// 乘数矩阵，值为 "高档权重乘数,空奖权重乘数"
		{entity.ConfigGroupTierMatrix, "B0:P0", "1.0,1.0"},
		{entity.ConfigGroupTierMatrix, "B0:P1", "0.9,1.1"},
		{entity.ConfigGroupTierMatrix, "B0:P2", "0.8,1.2"},
		{entity.ConfigGroupTierMatrix, "B1:P0", "0.8,1.2"},
		{entity.ConfigGroupTierMatrix, "B1:P1", "0.7,1.3"},
		{entity.ConfigGroupTierMatrix, "B1:P2", "0.6,1.5"},
		{entity.ConfigGroupTierMatrix, "B2:P0", "0.5,1.6"},
		{entity.ConfigGroupTierMatrix, "B2:P1", "0.4,1.8"},
		{entity.ConfigGroupTierMatrix, "B2:P2", "0.3,2.0"},
		{entity.ConfigGroupTierMatrix, "B3:P0", "0.0,2.5"},
		{entity.ConfigGroupTierMatrix, "B3:P1", "0.0,2.5"},
		{entity.ConfigGroupTierMatrix, "B3:P2", "0.0,3.0"},
	}

	for _, it := range items {
		record := &model.ConfigItem{
			GroupName: it.group,
			Name:      it.name,
			Value:     it.value,
			Priority:  0,
			Enabled:   true,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := db.Create(record).Error; err != nil {
			log.Fatalf("Failed to create config item %s.%s: %v", it.group, it.name, err)
		}
	}

	// 大促期间的临时矩阵覆盖示例，带生效窗口且优先级更高
	override := &model.ConfigItem{
		GroupName: entity.ConfigGroupTierMatrix,
		Name:      "B0:P0",
		Value:     "1.2,0.9",
		Priority:  10,
		Enabled:   true,
		StartAt:   lo.ToPtr(time.Now().AddDate(0, 0, 7)),
		EndAt:     lo.ToPtr(time.Now().AddDate(0, 0, 10)),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.Create(override).Error; err != nil {
		log.Fatalf("Failed to create config override: %v", err)
	}

	fmt.Printf("Created %d config items\n", len(items)+1)
}

func seedPresetGrant(db *gorm.DB, campaignId int64, prizes []*model.Prize) {
	var count int64
	db.Model(&model.PresetGrant{}).Where("campaign_id = ?", campaignId).Count(&count)
	if count > 0 {
		fmt.Println("Preset grants already exist, skipping")
		return
	}

	if len(prizes) == 0 {
		return
	}

	// 用户1 下一次抽奖必中第一个奖品
	grant := &model.PresetGrant{
		UserId:     1,
		CampaignId: campaignId,
		PrizeId:    prizes[0].Id,
		Priority:   1,
		Status:     entity.PresetStatusPending,
		ExpiredAt:  time.Now().AddDate(0, 0, 7),
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := db.Create(grant).Error; err != nil {
		log.Fatalf("Failed to create preset grant: %v", err)
	}

	fmt.Printf("Created preset grant for user %d (prize ID: %d)\n", grant.UserId, grant.PrizeId)
}

func seedAccounts(db *gorm.DB, conf *config.Config) []UserCredentials {
	var credentials []UserCredentials

	for userId := int64(1); userId <= 100; userId++ {
		var count int64
		db.Model(&model.PointsAccount{}).Where("user_id = ?", userId).Count(&count)

		if count == 0 {
			account := &model.PointsAccount{
				UserId:      userId,
				Balance:     10000,
				TotalEarned: 10000,
				Status:      model.PointsAccountStatusNormal,
				CreatedAt:   time.Now(),
				UpdatedAt:   time.Now(),
			}

			if err := db.Create(account).Error; err != nil {
				log.Printf("Failed to create account for user %d: %v\n", userId, err)
				continue
			}
		}

		// Generate Token
		token, err := jwtutil.NewTokenWithClaims(
			[]byte(conf.Jwt.Secret), entity.WebClaims{
				UserId: int32(userId),
			},
			func(c *jwt.RegisteredClaims) {
				c.Issuer = entity.JwtIssuerWeb
			},
			jwtutil.WithTokenExpiresAt(time.Duration(conf.Jwt.ExpiresTime)*time.Second),
		)
		if err != nil {
			log.Printf("Failed to generate token for user %d: %v\n", userId, err)
			continue
		}

		credentials = append(credentials, UserCredentials{
			UserId: userId,
			Token:  token,
		})
	}

	fmt.Printf("Seeded %d points accounts\n", len(credentials))
	return credentials
}
