package config

import (
	"fmt"
	"github.com/spf13/viper"
)

type DashboardConfig struct {
	User         string `mapstructure:"user" validate:"required"`
	Password     string `mapstructure:"pass" validate:"required"`
	Port         int    `mapstructure:"port" validate:"gte=1,lte=65535"`
	RunOnRequest bool   `mapstructure:"run_on_request"`
	PageSize     int    `mapstructure:"page_size" validate:"gte=1"`
}

func (config DashboardConfig) Addr() string {
	return fmt.Sprintf(":%d", config.Port)
}

func (config DashboardConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("dashboard.user", "admin")
	v.SetDefault("dashboard.pass", "password")
	v.SetDefault("dashboard.port", 8080)
	v.SetDefault("dashboard.run_on_request", false)
	v.SetDefault("dashboard.page_size", 500)
}

func (config DashboardConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"dashboard.user":           "DASHBOARD_USER",
		"dashboard.pass":           "DASHBOARD_PASS",
		"dashboard.port":           "PORT",
		"dashboard.run_on_request": "RUN_ON_REQUEST",
		"dashboard.page_size":      "DASHBOARD_PAGE_SIZE",
	})
}
