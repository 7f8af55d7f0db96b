package config

import "github.com/spf13/viper"

type DBConfig struct {
	ConnectionString string `mapstructure:"connection_string" validate:"required"`
}

func (config DBConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("db.connection_string", "jobs.db")
}

func (config DBConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return v.BindEnv("db.connection_string", "DB_CONNECTION_STRING")
}
