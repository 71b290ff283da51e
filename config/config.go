package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App     *App     `yaml:"app"`
	Server  *Server  `yaml:"server"`
	MySQL   *MySQL   `yaml:"mysql"`
	Redis   *Redis   `yaml:"redis"`
	Jwt     *Jwt     `yaml:"jwt"`
	Lottery *Lottery `yaml:"lottery"`
}

// New 加载配置文件，失败直接终止进程
func New(filename string) *Config {
	content, err := os.ReadFile(filename)
	if err != nil {
		panic(fmt.Sprintf("配置文件读取失败 %s: %s", filename, err))
	}

	conf := &Config{}
	if err := yaml.Unmarshal(content, conf); err != nil {
		panic(fmt.Sprintf("配置文件解析失败 %s: %s", filename, err))
	}

	return conf
}

func (c *Config) Debug() bool {
	return c.App != nil && c.App.Debug
}
