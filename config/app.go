package config

type App struct {
	Env   string `yaml:"env"`
	Debug bool   `yaml:"debug"`
}
