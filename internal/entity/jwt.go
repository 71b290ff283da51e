package entity

// JwtIssuerWeb Web 端签发者标识
const JwtIssuerWeb = "web"

// WebClaims Web 端登录态载荷
type WebClaims struct {
	UserId int32 `json:"user_id"`
}
