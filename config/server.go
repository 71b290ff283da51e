package config

type Server struct {
	HttpAddr string `yaml:"http_addr"`
}
