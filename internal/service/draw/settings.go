package draw

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gzydong/go-lottery/internal/entity"
)

// BudgetThresholds 预算档位阈值（剩余预算比例）
type BudgetThresholds struct {
	HealthyRatio  float64 // 比例 >= HealthyRatio 为 B0
	WarnRatio     float64 // 比例 >= WarnRatio 为 B1
	CriticalRatio float64 // 比例 >= CriticalRatio 为 B2，否则 B3
}

// PressureThresholds 压力档位阈值（窗口内消耗占总预算比例）
type PressureThresholds struct {
	WindowMinutes int     // 消耗速度统计窗口
	P1Ratio       float64 // 比例 >= P1Ratio 为 P1
	P2Ratio       float64 // 比例 >= P2Ratio 为 P2
}

// PitySettings 保底全局参数
// 活动未配置保底阈值时使用的全局默认值
type PitySettings struct {
	DefaultThreshold int
}

// LuckDebtSettings 幸运债补偿参数
// 追踪用户近期投入与回报的差值，欠账达到阈值时上调中高档权重
type LuckDebtSettings struct {
	Enabled   bool
	Window    int     // 统计最近 N 次抽奖
	Threshold float64 // 欠账比例阈值 (期望-实际)/期望
	Boost     float64 // 触发后中高档权重乘数
}

// AntiStreakSettings 防连续极端结果参数
type AntiStreakSettings struct {
	Enabled   bool
	MaxStreak int // 连续出现该结果达到 N 次后抑制
}

// MatrixEntry 档位乘数矩阵项，按 (预算档位, 压力档位) 索引
type MatrixEntry struct {
	BudgetCapMult  float64 // 高档权重暴露上限乘数
	EmptyBoostMult float64 // 空奖/低档权重放大乘数
}

// Settings 单次请求的配置快照
// 构建后不可变更，活动进行中的配置调整不影响已开始的决策
type Settings struct {
	Budget    BudgetThresholds
	Pressure  PressureThresholds
	Pity      PitySettings
	LuckDebt  LuckDebtSettings
	AntiEmpty AntiStreakSettings
	AntiHigh  AntiStreakSettings

	matrix map[string]MatrixEntry
}

// MatrixEntry 查询档位乘数矩阵
// 缺项直接报错，绝不静默使用默认值
func (s *Settings) MatrixEntry(b entity.BudgetTier, p entity.PressureTier) (MatrixEntry, error) {
	key := matrixKey(b, p)
	entry, ok := s.matrix[key]
	if !ok {
		return MatrixEntry{}, NewError(entity.ErrInternal, fmt.Sprintf("档位乘数矩阵缺少 %s 项", key))
	}
	return entry, nil
}

// ClassifyBudget 预算档位分类，当前状态的纯函数
func (s *Settings) ClassifyBudget(remain int64, total int64) entity.BudgetTier {
	if total <= 0 || remain <= 0 {
		return entity.BudgetTierB3
	}

	ratio := float64(remain) / float64(total)
	switch {
	case ratio >= s.Budget.HealthyRatio:
		return entity.BudgetTierB0
	case ratio >= s.Budget.WarnRatio:
		return entity.BudgetTierB1
	case ratio >= s.Budget.CriticalRatio:
		return entity.BudgetTierB2
	default:
		return entity.BudgetTierB3
	}
}

// ClassifyPressure 压力档位分类，基于窗口内消耗占比
func (s *Settings) ClassifyPressure(windowSpend int64, total int64) entity.PressureTier {
	if total <= 0 {
		return entity.PressureTierP2
	}

	ratio := float64(windowSpend) / float64(total)
	switch {
	case ratio >= s.Pressure.P2Ratio:
		return entity.PressureTierP2
	case ratio >= s.Pressure.P1Ratio:
		return entity.PressureTierP1
	default:
		return entity.PressureTierP0
	}
}

func matrixKey(b entity.BudgetTier, p entity.PressureTier) string {
	return fmt.Sprintf("%s:%s", b, p)
}

// LoadSettings 从配置中心读取各分组并组装为不可变快照
func LoadSettings(ctx context.Context, reader ConfigReader) (*Settings, error) {
	budget, err := reader.GetGroup(ctx, entity.ConfigGroupBudgetTier)
	if err != nil {
		return nil, err
	}
	pressure, err := reader.GetGroup(ctx, entity.ConfigGroupPressureTier)
	if err != nil {
		return nil, err
	}
	pity, err := reader.GetGroup(ctx, entity.ConfigGroupPity)
	if err != nil {
		return nil, err
	}
	luckDebt, err := reader.GetGroup(ctx, entity.ConfigGroupLuckDebt)
	if err != nil {
		return nil, err
	}
	antiEmpty, err := reader.GetGroup(ctx, entity.ConfigGroupAntiEmpty)
	if err != nil {
		return nil, err
	}
	antiHigh, err := reader.GetGroup(ctx, entity.ConfigGroupAntiHigh)
	if err != nil {
		return nil, err
	}
	matrix, err := reader.GetGroup(ctx, entity.ConfigGroupTierMatrix)
	if err != nil {
		return nil, err
	}

	settings := &Settings{
		Budget: BudgetThresholds{
			HealthyRatio:  parseFloat(budget, "healthy_ratio", 0.6),
			WarnRatio:     parseFloat(budget, "warn_ratio", 0.3),
			CriticalRatio: parseFloat(budget, "critical_ratio", 0.1),
		},
		Pressure: PressureThresholds{
			WindowMinutes: parseInt(pressure, "window_minutes", 60),
			P1Ratio:       parseFloat(pressure, "p1_ratio", 0.05),
			P2Ratio:       parseFloat(pressure, "p2_ratio", 0.15),
		},
		Pity: PitySettings{
			DefaultThreshold: parseInt(pity, "default_threshold", entity.DefaultPityThreshold),
		},
		LuckDebt: LuckDebtSettings{
			Enabled:   parseBool(luckDebt, "enabled", false),
			Window:    parseInt(luckDebt, "window", 20),
			Threshold: parseFloat(luckDebt, "threshold", 0.8),
			Boost:     parseFloat(luckDebt, "boost", 1.5),
		},
		AntiEmpty: AntiStreakSettings{
			Enabled:   parseBool(antiEmpty, "enabled", false),
			MaxStreak: parseInt(antiEmpty, "max_streak", 5),
		},
		AntiHigh: AntiStreakSettings{
			Enabled:   parseBool(antiHigh, "enabled", false),
			MaxStreak: parseInt(antiHigh, "max_streak", 2),
		},
		matrix: make(map[string]MatrixEntry, len(matrix)),
	}

	// 矩阵项值格式 "预算乘数,空奖乘数"，如 "0.5,1.8"
	for key, raw := range matrix {
		entry, err := parseMatrixEntry(raw)
		if err != nil {
			return nil, NewError(entity.ErrInternal, fmt.Sprintf("档位乘数矩阵 %s 配置非法: %s", key, raw))
		}
		settings.matrix[key] = entry
	}

	// 12 个合法组合必须全部存在，缺项在加载期报错而不是等到抽奖时
	for _, b := range []entity.BudgetTier{entity.BudgetTierB0, entity.BudgetTierB1, entity.BudgetTierB2, entity.BudgetTierB3} {
		for _, p := range []entity.PressureTier{entity.PressureTierP0, entity.PressureTierP1, entity.PressureTierP2} {
			if _, ok := settings.matrix[matrixKey(b, p)]; !ok {
				return nil, NewError(entity.ErrInternal, fmt.Sprintf("档位乘数矩阵缺少 %s 项", matrixKey(b, p)))
			}
		}
	}

	return settings, nil
}

// NewSettings 直接构造配置快照（测试用）
func NewSettings(budget BudgetThresholds, pressure PressureThresholds, matrix map[string]MatrixEntry) *Settings {
	return &Settings{
		Budget:   budget,
		Pressure: pressure,
		Pity:     PitySettings{DefaultThreshold: entity.DefaultPityThreshold},
		matrix:   matrix,
	}
}

// FullMatrix 构造所有组合取同一乘数的矩阵（测试用）
func FullMatrix(entry MatrixEntry) map[string]MatrixEntry {
	matrix := make(map[string]MatrixEntry, 12)
	for _, b := range []entity.BudgetTier{entity.BudgetTierB0, entity.BudgetTierB1, entity.BudgetTierB2, entity.BudgetTierB3} {
		for _, p := range []entity.PressureTier{entity.PressureTierP0, entity.PressureTierP1, entity.PressureTierP2} {
			matrix[matrixKey(b, p)] = entry
		}
	}
	return matrix
}

func parseMatrixEntry(raw string) (MatrixEntry, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return MatrixEntry{}, fmt.Errorf("expect 2 fields, got %d", len(parts))
	}

	capMult, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return MatrixEntry{}, err
	}
	emptyMult, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return MatrixEntry{}, err
	}
	return MatrixEntry{BudgetCapMult: capMult, EmptyBoostMult: emptyMult}, nil
}

func parseFloat(values map[string]string, name string, def float64) float64 {
	if raw, ok := values[name]; ok {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
	}
	return def
}

func parseInt(values map[string]string, name string, def int) int {
	if raw, ok := values[name]; ok {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return def
}

func parseBool(values map[string]string, name string, def bool) bool {
	if raw, ok := values[name]; ok {
		if v, err := strconv.ParseBool(raw); err == nil {
			return v
		}
	}
	return def
}
