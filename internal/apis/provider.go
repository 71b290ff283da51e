package apis

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"github.com/gzydong/go-lottery/config"
	"github.com/gzydong/go-lottery/internal/apis/router"
	"github.com/gzydong/go-lottery/internal/pkg/core/middleware"
	"github.com/gzydong/go-lottery/internal/repository/cache"
)

type Provider struct {
	Config *config.Config
	Engine *gin.Engine
}

var ProviderSet = wire.NewSet(
	router.NewRouter,
	wire.Bind(new(middleware.IStorage), new(*cache.JwtTokenStorage)),
	wire.Struct(new(Provider), "*"),
)
