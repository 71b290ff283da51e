package router

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gzydong/go-lottery/config"
	"github.com/gzydong/go-lottery/internal/apis/handler/web"
	v1 "github.com/gzydong/go-lottery/internal/apis/handler/web/v1"
	"github.com/gzydong/go-lottery/internal/entity"
	"github.com/gzydong/go-lottery/internal/pkg/core/middleware"
	"github.com/gzydong/go-lottery/internal/pkg/jwtutil"
	"github.com/gzydong/go-lottery/internal/repository/repo"
)

// NewRouter 初始化 gin 引擎并注册路由
func NewRouter(conf *config.Config, handler *web.Handler, storage middleware.IStorage) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/health/check", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"code": 404, "message": "请求地址不存在"})
	})

	RegisterWebRoute(conf.Jwt.Secret, engine, handler, storage)

	return engine
}

// RegisterWebRoute 注册 Web 路由
func RegisterWebRoute(secret string, router *gin.Engine, handler *web.Handler, storage middleware.IStorage) {
	// 授权验证中间件
	authorize := middleware.NewJwtMiddleware[entity.WebClaims](
		[]byte(secret), storage,
		func(ctx context.Context, claims *jwtutil.JwtClaims[entity.WebClaims]) error {
			if claims.RegisteredClaims.Issuer != entity.JwtIssuerWeb {
				return errors.New("授权异常，请登录后操作")
			}

			account, err := handler.PointsRepo.FindAccount(ctx, int64(claims.Metadata.UserId))
			if err != nil {
				if errors.Is(err, repo.ErrAccountNotFound) {
					return nil
				}

				return errors.New("授权异常，请登录后操作")
			}

			if account.IsFrozen() {
				return errors.New("账户已被冻结，请联系客服处理")
			}

			return nil
		},
	)

	api := router.Group("/").Use(authorize)

	resp := &Interceptor{}

	registerLotteryRouter(resp, api, handler)
	registerPointsRouter(resp, api, handler)
	registerInventoryRouter(resp, api, handler)
}

func registerLotteryRouter(resp *Interceptor, api gin.IRoutes, handler *web.Handler) {
	api.POST("/api/v1/lottery/draw", HandlerFunc(resp, func(c *gin.Context) (any, error) {
		var req v1.LotteryDrawRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, err
		}
		return handler.V1.Lottery.Draw(c.Request.Context(), &req)
	}))

	api.POST("/api/v1/lottery/draw-test", HandlerFunc(resp, func(c *gin.Context) (any, error) {
		var req v1.LotteryDrawTestRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, err
		}
		return handler.V1.Lottery.DrawTest(c.Request.Context(), &req)
	}))

	api.POST("/api/v1/lottery/history", HandlerFunc(resp, func(c *gin.Context) (any, error) {
		var req v1.LotteryHistoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, err
		}
		return handler.V1.Lottery.GetHistory(c.Request.Context(), &req)
	}))

	api.POST("/api/v1/lottery/campaign/detail", HandlerFunc(resp, func(c *gin.Context) (any, error) {
		var req v1.LotteryCampaignRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, err
		}
		return handler.V1.Lottery.GetCampaign(c.Request.Context(), &req)
	}))

	api.POST("/api/v1/lottery/campaign/prizes", HandlerFunc(resp, func(c *gin.Context) (any, error) {
		var req v1.LotteryCampaignRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, err
		}
		return handler.V1.Lottery.GetPrizeList(c.Request.Context(), &req)
	}))
}

func registerPointsRouter(resp *Interceptor, api gin.IRoutes, handler *web.Handler) {
	api.POST("/api/v1/points/balance", HandlerFunc(resp, func(c *gin.Context) (any, error) {
		return handler.V1.Points.GetBalance(c.Request.Context(), &v1.PointsBalanceRequest{})
	}))

	api.POST("/api/v1/points/transactions", HandlerFunc(resp, func(c *gin.Context) (any, error) {
		var req v1.PointsTransactionsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, err
		}
		return handler.V1.Points.GetTransactions(c.Request.Context(), &req)
	}))

	api.POST("/api/v1/points/adjust", HandlerFunc(resp, func(c *gin.Context) (any, error) {
		var req v1.PointsAdjustRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, err
		}
		return handler.V1.Points.Adjust(c.Request.Context(), &req)
	}))
}

func registerInventoryRouter(resp *Interceptor, api gin.IRoutes, handler *web.Handler) {
	api.POST("/api/v1/inventory/list", HandlerFunc(resp, func(c *gin.Context) (any, error) {
		var req v1.InventoryListRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, err
		}
		return handler.V1.Inventory.GetList(c.Request.Context(), &req)
	}))

	api.POST("/api/v1/inventory/use", HandlerFunc(resp, func(c *gin.Context) (any, error) {
		var req v1.InventoryUseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, err
		}
		return handler.V1.Inventory.Use(c.Request.Context(), &req)
	}))
}
