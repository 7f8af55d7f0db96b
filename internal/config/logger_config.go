package config

import (
	"fmt"
	"github.com/spf13/viper"
	"slices"
)

type LogLevel string

const (
	LevelInfo    LogLevel = "INFO"
	LevelDebug   LogLevel = "DEBUG"
	LevelWarning LogLevel = "WARNING"
	LevelError   LogLevel = "ERROR"
	LevelFatal   LogLevel = "FATAL"
)

var levels = []LogLevel{LevelInfo, LevelDebug, LevelWarning, LevelError, LevelFatal}

type LoggerConfig struct {
	LogLevel     LogLevel `mapstructure:"log_level"`
	AppName      string   `mapstructure:"app_name"`
	LokiURL      string   `mapstructure:"loki_url"`
	LokiUser     string   `mapstructure:"loki_user"`
	LokiPassword string   `mapstructure:"loki_password"`
	OutputFile   string   `mapstructure:"output_file"`
}

func (config LoggerConfig) validate() error {
	if !slices.Contains(levels, config.LogLevel) {
		return fmt.Errorf("unknown log_level %q", config.LogLevel)
	}
	return nil
}

func (config LoggerConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("logger.log_level", string(LevelInfo))
	v.SetDefault("logger.app_name", "job-radar")
	v.SetDefault("logger.loki_url", "")
	v.SetDefault("logger.loki_user", "")
	v.SetDefault("logger.loki_password", "")
	v.SetDefault("logger.output_file", "")
}

func (config LoggerConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"logger.log_level":     "LOG_LEVEL",
		"logger.app_name":      "APP_NAME",
		"logger.loki_url":      "LOKI_URL",
		"logger.loki_user":     "LOKI_USER",
		"logger.loki_password": "LOKI_PASSWORD",
		"logger.output_file":   "LOG_FILE",
	})
}
