package mission

import (
	"log"
	"os/signal"
	"syscall"

	"github.com/google/wire"
	"github.com/gzydong/go-lottery/config"
	"github.com/gzydong/go-lottery/internal/mission/cron"
	"github.com/gzydong/go-lottery/internal/pkg/core/crontab"
	"github.com/urfave/cli/v2"
)

type Provider struct {
	Config  *config.Config
	Crontab *cron.Crontab
}

var ProviderSet = wire.NewSet(
	wire.Struct(new(Provider), "*"),
)

// RunCron 启动定时任务调度
func RunCron(ctx *cli.Context, app *Provider) error {
	scheduler := crontab.NewScheduler()

	if err := scheduler.Register(app.Crontab.ExpirePresetGrant); err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(ctx.Context, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT)
	defer stop()

	log.Println("Crontab worker running...")

	_ = scheduler.Run(runCtx)

	log.Println("Crontab worker exiting")

	return nil
}
