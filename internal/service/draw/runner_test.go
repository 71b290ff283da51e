package draw

import (
	"context"
	"errors"
	"testing"

	"github.com/gzydong/go-lottery/internal/entity"
)

type stubStage struct {
	name     string
	required bool
	writer   bool
	err      error
	executed *bool
}

func (s *stubStage) Name() string   { return s.name }
func (s *stubStage) Required() bool { return s.required }
func (s *stubStage) Writer() bool   { return s.writer }

func (s *stubStage) Execute(ctx context.Context, dc *Context) (any, error) {
	if s.executed != nil {
		*s.executed = true
	}
	return nil, s.err
}

func TestNewPipeline_WriterInvariant(t *testing.T) {
	tests := []struct {
		name    string
		stages  []Stage
		wantErr bool
	}{
		{
			name: "exactly one writer",
			stages: []Stage{
				&stubStage{name: "a", required: true},
				&stubStage{name: "b", required: true, writer: true},
			},
		},
		{
			name: "no writer",
			stages: []Stage{
				&stubStage{name: "a", required: true},
				&stubStage{name: "b", required: true},
			},
			wantErr: true,
		},
		{
			name: "two writers",
			stages: []Stage{
				&stubStage{name: "a", required: true, writer: true},
				&stubStage{name: "b", required: true, writer: true},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPipeline(tt.stages...)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewPipeline() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPipeline_RequiredStageAborts(t *testing.T) {
	downstream := false

	pipeline, err := NewPipeline(
		&stubStage{name: "first", required: true},
		&stubStage{name: "failing", required: true, err: NewError(entity.ErrBudgetExhausted, "预算耗尽")},
		&stubStage{name: "after", required: true, executed: &downstream},
		&stubStage{name: "writer", required: true, writer: true},
	)
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}

	dc := NewContext(Request{UserId: 1, CampaignId: 1}, testSettings(), NewSeededRNG(1))
	result := pipeline.Run(context.Background(), dc)

	if result.Success {
		t.Error("Run() success = true, want false")
	}
	if result.Err == nil || result.Err.Code != entity.ErrBudgetExhausted {
		t.Errorf("Run() err = %v, want code %s", result.Err, entity.ErrBudgetExhausted)
	}
	if downstream {
		t.Error("Run() executed stage after required failure")
	}
	if len(result.StagesExecuted) != 2 {
		t.Errorf("Run() stages executed = %v, want 2 entries", result.StagesExecuted)
	}
	if result.StagesExecuted[len(result.StagesExecuted)-1] != "failing" {
		t.Errorf("Run() last stage = %s, want failing", result.StagesExecuted[len(result.StagesExecuted)-1])
	}
}

func TestPipeline_OptionalStageContinues(t *testing.T) {
	downstream := false

	pipeline, err := NewPipeline(
		&stubStage{name: "optional", required: false, err: errors.New("历史查询超时")},
		&stubStage{name: "after", required: true, executed: &downstream},
		&stubStage{name: "writer", required: true, writer: true},
	)
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}

	dc := NewContext(Request{UserId: 1, CampaignId: 1}, testSettings(), NewSeededRNG(1))
	result := pipeline.Run(context.Background(), dc)

	if !result.Success {
		t.Fatalf("Run() success = false, err = %v", result.Err)
	}
	if !downstream {
		t.Error("Run() skipped stage after optional failure")
	}
	if len(result.StagesExecuted) != 3 {
		t.Errorf("Run() stages executed = %v, want 3 entries", result.StagesExecuted)
	}
}

func TestAsError_Unclassified(t *testing.T) {
	err := AsError(errors.New("db connection reset"))
	if err.Code != entity.ErrInternal {
		t.Errorf("AsError() code = %s, want %s", err.Code, entity.ErrInternal)
	}

	wrapped := AsError(NewError(entity.ErrEmptyPrizePool, "奖池为空"))
	if wrapped.Code != entity.ErrEmptyPrizePool {
		t.Errorf("AsError() code = %s, want %s", wrapped.Code, entity.ErrEmptyPrizePool)
	}
}
