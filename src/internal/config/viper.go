package config

import (
	"strings"

	"github.com/spf13/viper"
)

// NewViper reads config.yaml when present and overlays environment
// variables (APP_NAME, DATABASE_HOST, ...).
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.ReadInConfig() // optional, env-only deployments carry no file

	return v
}
