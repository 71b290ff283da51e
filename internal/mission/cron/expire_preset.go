package cron

import (
	"context"
	"log/slog"

	"github.com/gzydong/go-lottery/internal/pkg/core/crontab"
	"github.com/gzydong/go-lottery/internal/repository/repo"
)

var _ crontab.ICrontab = (*ExpirePresetGrant)(nil)

type ExpirePresetGrant struct {
	PresetRepo *repo.Preset
}

func (c *ExpirePresetGrant) Name() string {
	return "preset_grant.expire"
}

// Spec 配置定时任务规则
// 每小时执行一次，将超过有效期仍未消费的预设中奖标记为过期
// Cron表达式: "0 * * * *" - 在每小时的第0分钟执行 (例如: 01:00, 02:00, 03:00...)
func (c *ExpirePresetGrant) Spec() string {
	return "0 * * * *"
}

func (c *ExpirePresetGrant) Enable() bool {
	return true
}

func (c *ExpirePresetGrant) Do(ctx context.Context) error {
	count, err := c.PresetRepo.ExpireOverdue(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "预设中奖过期处理失败", "error", err)
		return err
	}

	if count > 0 {
		slog.InfoContext(ctx, "预设中奖过期处理完成", "expired_count", count)
	}

	return nil
}
