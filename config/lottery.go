package config

type Lottery struct {
	// RateLimitMax 限流窗口内允许的最大抽奖次数
	RateLimitMax int64 `yaml:"rate_limit_max"`

	// RateLimitWindowSeconds 限流窗口长度，单位秒
	RateLimitWindowSeconds int `yaml:"rate_limit_window_seconds"`

	// ConfigCacheTTLSeconds 策略配置缓存允许的最大陈旧窗口，单位秒，0 表示不缓存
	ConfigCacheTTLSeconds int `yaml:"config_cache_ttl_seconds"`
}
