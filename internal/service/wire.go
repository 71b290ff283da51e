package service

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewConfigSource,
	NewLotteryService,
	NewPointsService,
	NewInventoryService,

	wire.Bind(new(ILotteryService), new(*LotteryService)),
	wire.Bind(new(IPointsService), new(*PointsService)),
	wire.Bind(new(IInventoryService), new(*InventoryService)),
)
