package main

import (
	"log"
	"os"

	"github.com/gzydong/go-lottery/config"
	"github.com/gzydong/go-lottery/internal/apis"
	"github.com/gzydong/go-lottery/internal/mission"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "lottery",
		Usage: "积分抽奖决策服务",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "./config.yaml",
				Usage:   "配置文件路径",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "http",
				Usage: "启动 HTTP API 服务",
				Action: func(ctx *cli.Context) error {
					conf := config.New(ctx.String("config"))

					provider, err := NewHttpInjector(conf)
					if err != nil {
						return err
					}

					return apis.NewServer(ctx, provider)
				},
			},
			{
				Name:  "cron",
				Usage: "启动定时任务",
				Action: func(ctx *cli.Context) error {
					conf := config.New(ctx.String("config"))

					return mission.RunCron(ctx, NewCronInjector(conf))
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
