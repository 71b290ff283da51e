package config

type Redis struct {
	Host     string `yaml:"host"`
	Auth     string `yaml:"auth"`
	Database int    `yaml:"database"`
}
