package draw

import (
	"context"
	"strings"
	"testing"

	"github.com/gzydong/go-lottery/internal/entity"
)

func TestSettings_ClassifyBudget(t *testing.T) {
	settings := testSettings()

	tests := []struct {
		name   string
		remain int64
		total  int64
		want   entity.BudgetTier
	}{
		{"healthy", 700, 1000, entity.BudgetTierB0},
		{"healthy boundary", 600, 1000, entity.BudgetTierB0},
		{"warn", 599, 1000, entity.BudgetTierB1},
		{"warn boundary", 300, 1000, entity.BudgetTierB1},
		{"critical", 299, 1000, entity.BudgetTierB2},
		{"critical boundary", 100, 1000, entity.BudgetTierB2},
		{"exhausted", 99, 1000, entity.BudgetTierB3},
		{"zero remain", 0, 1000, entity.BudgetTierB3},
		{"zero total", 100, 0, entity.BudgetTierB3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := settings.ClassifyBudget(tt.remain, tt.total); got != tt.want {
				t.Errorf("ClassifyBudget(%d, %d) = %s, want %s", tt.remain, tt.total, got, tt.want)
			}
		})
	}
}

func TestSettings_ClassifyPressure(t *testing.T) {
	settings := testSettings()

	tests := []struct {
		name  string
		spend int64
		total int64
		want  entity.PressureTier
	}{
		{"low", 0, 1000, entity.PressureTierP0},
		{"below p1", 49, 1000, entity.PressureTierP0},
		{"p1 boundary", 50, 1000, entity.PressureTierP1},
		{"p2 boundary", 150, 1000, entity.PressureTierP2},
		{"above p2", 500, 1000, entity.PressureTierP2},
		{"zero total worst case", 10, 0, entity.PressureTierP2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := settings.ClassifyPressure(tt.spend, tt.total); got != tt.want {
				t.Errorf("ClassifyPressure(%d, %d) = %s, want %s", tt.spend, tt.total, got, tt.want)
			}
		})
	}
}

func TestSettings_MatrixEntryMissing(t *testing.T) {
	settings := NewSettings(
		BudgetThresholds{HealthyRatio: 0.6, WarnRatio: 0.3, CriticalRatio: 0.1},
		PressureThresholds{WindowMinutes: 60, P1Ratio: 0.05, P2Ratio: 0.15},
		map[string]MatrixEntry{"B0:P0": {BudgetCapMult: 1, EmptyBoostMult: 1}},
	)

	if _, err := settings.MatrixEntry(entity.BudgetTierB0, entity.PressureTierP0); err != nil {
		t.Errorf("MatrixEntry(B0, P0) error = %v, want nil", err)
	}

	_, err := settings.MatrixEntry(entity.BudgetTierB3, entity.PressureTierP2)
	if err == nil {
		t.Fatal("MatrixEntry(B3, P2) error = nil, want missing entry error")
	}
	if AsError(err).Code != entity.ErrInternal {
		t.Errorf("MatrixEntry() code = %s, want %s", AsError(err).Code, entity.ErrInternal)
	}
}

type mapConfigReader map[string]map[string]string

func (m mapConfigReader) GetGroup(ctx context.Context, groupName string) (map[string]string, error) {
	return m[groupName], nil
}

func fullConfig() mapConfigReader {
	matrix := map[string]string{}
	for _, b := range []string{"B0", "B1", "B2", "B3"} {
		for _, p := range []string{"P0", "P1", "P2"} {
			matrix[b+":"+p] = "1.0,1.0"
		}
	}

	return mapConfigReader{
		entity.ConfigGroupBudgetTier: {
			"healthy_ratio":  "0.5",
			"warn_ratio":     "0.25",
			"critical_ratio": "0.05",
		},
		entity.ConfigGroupPressureTier: {
			"window_minutes": "30",
			"p1_ratio":       "0.1",
			"p2_ratio":       "0.2",
		},
		entity.ConfigGroupPity: {
			"default_threshold": "8",
		},
		entity.ConfigGroupLuckDebt: {
			"enabled":   "true",
			"window":    "10",
			"threshold": "0.9",
			"boost":     "2.0",
		},
		entity.ConfigGroupAntiEmpty:  {"enabled": "true", "max_streak": "4"},
		entity.ConfigGroupAntiHigh:   {"enabled": "false"},
		entity.ConfigGroupTierMatrix: matrix,
	}
}

func TestLoadSettings(t *testing.T) {
	settings, err := LoadSettings(context.Background(), fullConfig())
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}

	if settings.Budget.HealthyRatio != 0.5 {
		t.Errorf("HealthyRatio = %v, want 0.5", settings.Budget.HealthyRatio)
	}
	if settings.Pressure.WindowMinutes != 30 {
		t.Errorf("WindowMinutes = %v, want 30", settings.Pressure.WindowMinutes)
	}
	if settings.Pity.DefaultThreshold != 8 {
		t.Errorf("Pity.DefaultThreshold = %d, want 8", settings.Pity.DefaultThreshold)
	}
	if !settings.LuckDebt.Enabled || settings.LuckDebt.Boost != 2.0 {
		t.Errorf("LuckDebt = %+v, want enabled with boost 2.0", settings.LuckDebt)
	}
	if !settings.AntiEmpty.Enabled || settings.AntiEmpty.MaxStreak != 4 {
		t.Errorf("AntiEmpty = %+v, want enabled with max_streak 4", settings.AntiEmpty)
	}
	if settings.AntiHigh.Enabled {
		t.Error("AntiHigh.Enabled = true, want false")
	}
}

func TestLoadSettings_Defaults(t *testing.T) {
	conf := fullConfig()
	conf[entity.ConfigGroupBudgetTier] = nil
	conf[entity.ConfigGroupPity] = nil

	settings, err := LoadSettings(context.Background(), conf)
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}

	if settings.Budget.HealthyRatio != 0.6 || settings.Budget.WarnRatio != 0.3 {
		t.Errorf("Budget = %+v, want defaults 0.6/0.3/0.1", settings.Budget)
	}
	if settings.Pity.DefaultThreshold != entity.DefaultPityThreshold {
		t.Errorf("Pity.DefaultThreshold = %d, want %d", settings.Pity.DefaultThreshold, entity.DefaultPityThreshold)
	}
}

func TestLoadSettings_MissingMatrixEntry(t *testing.T) {
	conf := fullConfig()
	delete(conf[entity.ConfigGroupTierMatrix], "B2:P1")

	_, err := LoadSettings(context.Background(), conf)
	if err == nil {
		t.Fatal("LoadSettings() error = nil, want missing matrix entry error")
	}
	if !strings.Contains(err.Error(), "B2:P1") {
		t.Errorf("LoadSettings() error = %v, want mention of B2:P1", err)
	}
}

func TestLoadSettings_MalformedMatrixEntry(t *testing.T) {
	conf := fullConfig()
	conf[entity.ConfigGroupTierMatrix]["B0:P0"] = "not-a-number"

	if _, err := LoadSettings(context.Background(), conf); err == nil {
		t.Fatal("LoadSettings() error = nil, want parse error")
	}
}
