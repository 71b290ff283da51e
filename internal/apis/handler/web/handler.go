package web

import (
	"github.com/google/wire"
	v1 "github.com/gzydong/go-lottery/internal/apis/handler/web/v1"
	"github.com/gzydong/go-lottery/internal/repository/repo"
)

type Handler struct {
	V1 *V1

	PointsRepo *repo.Points
}

type V1 struct {
	Lottery   *v1.Lottery
	Points    *v1.Points
	Inventory *v1.Inventory
}

var ProviderSet = wire.NewSet(
	wire.Struct(new(v1.Lottery), "*"),
	wire.Struct(new(v1.Points), "*"),
	wire.Struct(new(v1.Inventory), "*"),
	wire.Struct(new(V1), "*"),
	wire.Struct(new(Handler), "*"),
)
