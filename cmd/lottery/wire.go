//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/gzydong/go-lottery/config"
	"github.com/gzydong/go-lottery/internal/apis"
	"github.com/gzydong/go-lottery/internal/apis/handler/web"
	"github.com/gzydong/go-lottery/internal/mission"
	"github.com/gzydong/go-lottery/internal/mission/cron"
	"github.com/gzydong/go-lottery/internal/provider"
	"github.com/gzydong/go-lottery/internal/repository/cache"
	"github.com/gzydong/go-lottery/internal/repository/repo"
	"github.com/gzydong/go-lottery/internal/service"
)

func NewHttpInjector(conf *config.Config) (*apis.Provider, error) {
	panic(wire.Build(
		provider.ProviderSet,
		repo.ProviderSet,
		cache.ProviderSet,
		service.ProviderSet,
		web.ProviderSet,
		apis.ProviderSet,
	))
}

func NewCronInjector(conf *config.Config) *mission.Provider {
	panic(wire.Build(
		provider.NewMySQLClient,
		repo.NewPreset,
		cron.ProviderSet,
		mission.ProviderSet,
	))
}
