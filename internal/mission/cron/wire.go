package cron

import "github.com/google/wire"

type Crontab struct {
	ExpirePresetGrant *ExpirePresetGrant
}

var ProviderSet = wire.NewSet(
	wire.Struct(new(ExpirePresetGrant), "*"),
	wire.Struct(new(Crontab), "*"),
)
