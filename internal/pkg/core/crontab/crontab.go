package crontab

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// ICrontab 定时任务约定
type ICrontab interface {
	// Name 任务名称，用于日志定位
	Name() string

	// Spec 五段式 Cron 表达式
	Spec() string

	// Enable 是否启用
	Enable() bool

	// Do 执行任务
	Do(ctx context.Context) error
}

// Scheduler 定时任务调度器
type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler() *Scheduler {
	return &Scheduler{cron: cron.New()}
}

// Register 注册任务，未启用的任务跳过
func (s *Scheduler) Register(jobs ...ICrontab) error {
	for _, job := range jobs {
		if !job.Enable() {
			continue
		}

		job := job
		_, err := s.cron.AddFunc(job.Spec(), func() {
			ctx := context.Background()

			start := time.Now()
			if err := job.Do(ctx); err != nil {
				slog.ErrorContext(ctx, "定时任务执行失败", "name", job.Name(), "error", err)
				return
			}

			slog.InfoContext(ctx, "定时任务执行完成", "name", job.Name(), "duration", time.Since(start).String())
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// Run 启动调度，阻塞到上下文取消
func (s *Scheduler) Run(ctx context.Context) error {
	s.cron.Start()

	<-ctx.Done()

	stopCtx := s.cron.Stop()
	<-stopCtx.Done()

	return ctx.Err()
}
