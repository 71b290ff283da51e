package jwtutil

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JwtClaims 带业务载荷的 JWT Claims
type JwtClaims[T any] struct {
	Metadata T `json:"metadata"`
	jwt.RegisteredClaims
}

// WithTokenExpiresAt 设置令牌有效期
func WithTokenExpiresAt(expire time.Duration) func(c *jwt.RegisteredClaims) {
	return func(c *jwt.RegisteredClaims) {
		c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(expire))
	}
}

// NewTokenWithClaims 签发令牌
func NewTokenWithClaims[T any](secret []byte, metadata T, fns ...func(c *jwt.RegisteredClaims)) (string, error) {
	registeredClaims := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		NotBefore: jwt.NewNumericDate(time.Now()),
	}

	for _, fn := range fns {
		fn(&registeredClaims)
	}

	claims := &JwtClaims[T]{
		Metadata:         metadata,
		RegisteredClaims: registeredClaims,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseWithClaims 解析并校验令牌
func ParseWithClaims[T any](secret []byte, token string) (*JwtClaims[T], error) {
	claims := &JwtClaims[T]{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("非预期的签名算法: %v", t.Header["alg"])
		}

		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	if !parsed.Valid {
		return nil, fmt.Errorf("无效的访问令牌")
	}

	return claims, nil
}
