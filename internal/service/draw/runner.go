package draw

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Stage 流水线阶段
// Required 为真的阶段失败即中止；Writer 标记唯一允许变更持久状态的阶段
type Stage interface {
	Name() string
	Required() bool
	Writer() bool

	// Execute 执行阶段逻辑，结果写回决策上下文
	// 返回的 data 记入结果的 StageData，便于排查
	Execute(ctx context.Context, dc *Context) (data any, err error)
}

// Result 流水线执行结果
type Result struct {
	Success        bool
	Err            *Error
	StagesExecuted []string
	StageData      map[string]any
	StageDurations map[string]time.Duration
	TotalDuration  time.Duration
}

// Pipeline 抽奖决策流水线
// 阶段顺序构造时固定；单写入者约束在构造期校验，属于编程错误而非运行时条件
type Pipeline struct {
	stages []Stage
}

// NewPipeline 构造流水线
// 写入阶段必须恰好一个，否则拒绝构造
func NewPipeline(stages ...Stage) (*Pipeline, error) {
	writers := 0
	for _, stage := range stages {
		if stage.Writer() {
			writers++
		}
	}
	if writers != 1 {
		return nil, fmt.Errorf("流水线必须恰好包含一个写入阶段，当前 %d 个", writers)
	}
	return &Pipeline{stages: stages}, nil
}

// Run 按固定顺序执行各阶段
// 必要阶段失败立即中止；可选阶段失败仅记录日志，下游按该阶段无输出继续
func (p *Pipeline) Run(ctx context.Context, dc *Context) *Result {
	result := &Result{
		StagesExecuted: make([]string, 0, len(p.stages)),
		StageData:      make(map[string]any),
		StageDurations: make(map[string]time.Duration),
	}

	start := time.Now()
	defer func() {
		result.TotalDuration = time.Since(start)
	}()

	for _, stage := range p.stages {
		stageStart := time.Now()
		data, err := stage.Execute(ctx, dc)
		elapsed := time.Since(stageStart)

		result.StagesExecuted = append(result.StagesExecuted, stage.Name())
		result.StageDurations[stage.Name()] = elapsed
		if data != nil {
			result.StageData[stage.Name()] = data
		}

		if err == nil {
			continue
		}

		if stage.Required() {
			stageErr := AsError(err)
			slog.ErrorContext(ctx, "抽奖流水线中止",
				"stage", stage.Name(),
				"code", stageErr.Code,
				"error", err,
				"user_id", dc.UserId,
				"campaign_id", dc.CampaignId,
				"request_id", dc.RequestId,
			)
			result.Err = stageErr
			return result
		}

		// 可选阶段失败不向调用方传播
		slog.WarnContext(ctx, "抽奖流水线可选阶段失败，继续执行",
			"stage", stage.Name(),
			"error", err,
			"user_id", dc.UserId,
			"campaign_id", dc.CampaignId,
			"request_id", dc.RequestId,
		)
	}

	result.Success = true
	return result
}
