package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gzydong/go-lottery/internal/pkg/jwtutil"
	"github.com/samber/lo"
)

// IStorage 令牌黑名单存储
type IStorage interface {
	IsBlackList(ctx context.Context, token string) bool
}

type JwtMiddlewareOption struct {
	// ExclusionPaths 无需授权的路由
	ExclusionPaths []string
}

type jwtSessionKey struct{}

// NewJwtMiddleware 授权验证中间件
// 校验通过后将业务载荷写入请求上下文，由 FormContext 读取
func NewJwtMiddleware[T any](secret []byte, storage IStorage, verify func(ctx context.Context, claims *jwtutil.JwtClaims[T]) error, fns ...func(option *JwtMiddlewareOption)) gin.HandlerFunc {
	option := &JwtMiddlewareOption{}
	for _, fn := range fns {
		fn(option)
	}

	return func(c *gin.Context) {
		if lo.Contains(option.ExclusionPaths, c.Request.URL.Path) {
			c.Next()
			return
		}

		token := extractToken(c)
		if token == "" {
			abortUnauthorized(c, "请登录后操作")
			return
		}

		claims, err := jwtutil.ParseWithClaims[T](secret, token)
		if err != nil {
			abortUnauthorized(c, "授权异常，请登录后操作")
			return
		}

		if storage != nil && storage.IsBlackList(c.Request.Context(), token) {
			abortUnauthorized(c, "授权已失效，请重新登录")
			return
		}

		if verify != nil {
			if err := verify(c.Request.Context(), claims); err != nil {
				abortUnauthorized(c, err.Error())
				return
			}
		}

		ctx := context.WithValue(c.Request.Context(), jwtSessionKey{}, &claims.Metadata)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// FormContext 从请求上下文读取授权载荷
func FormContext[T any](ctx context.Context) (*T, error) {
	session, ok := ctx.Value(jwtSessionKey{}).(*T)
	if !ok {
		return nil, errors.New("上下文中不存在授权信息")
	}

	return session, nil
}

func extractToken(c *gin.Context) string {
	token := c.GetHeader("Authorization")
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer"))

	if token == "" {
		token = c.DefaultQuery("token", "")
	}

	return token
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code":    401,
		"message": message,
	})
}
