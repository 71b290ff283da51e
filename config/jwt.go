package config

type Jwt struct {
	// Secret 签名密钥
	Secret string `yaml:"secret"`

	// ExpiresTime 令牌有效期，单位秒
	ExpiresTime int64 `yaml:"expires_time"`
}
