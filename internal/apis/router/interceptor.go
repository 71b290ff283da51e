package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gzydong/go-lottery/internal/pkg/core/errorx"
)

// Interceptor 统一响应拦截器
type Interceptor struct{}

func (i *Interceptor) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"code":    200,
		"message": "success",
		"data":    data,
	})
}

func (i *Interceptor) Error(c *gin.Context, err error) {
	e := errorx.FromError(err)

	c.JSON(http.StatusOK, gin.H{
		"code":    e.Code,
		"message": e.Message,
	})
}

// HandlerFunc 适配 ctx+req 风格的处理方法
func HandlerFunc(resp *Interceptor, fn func(c *gin.Context) (any, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := fn(c)
		if err != nil {
			resp.Error(c, err)
			return
		}

		resp.Success(c, data)
	}
}
