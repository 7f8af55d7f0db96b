package config

import "github.com/spf13/viper"

// MetricsConfig controls the standalone metrics listener used when the dashboard is not running.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

func (config MetricsConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("metrics.addr", "")
}

func (config MetricsConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return v.BindEnv("metrics.addr", "METRICS_ADDR")
}
