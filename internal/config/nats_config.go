package config

import "github.com/spf13/viper"

type NatsConfig struct {
	URL     string `mapstructure:"url"`
	Subject string `mapstructure:"subject" validate:"required"`
}

func (config NatsConfig) Enabled() bool {
	return config.URL != ""
}

func (config NatsConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("nats.url", "")
	v.SetDefault("nats.subject", "jobs.new")
}

func (config NatsConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"nats.url":     "NATS_URL",
		"nats.subject": "NATS_SUBJECT",
	})
}
