package config

import (
	"fmt"
	"github.com/spf13/viper"
)

type TelegramConfig struct {
	Token  string `mapstructure:"token"`
	ChatID string `mapstructure:"chat_id"`
}

// Enabled reports whether both credentials are present. Without them notifications are only logged.
func (config TelegramConfig) Enabled() bool {
	return config.Token != "" && config.ChatID != ""
}

func (config TelegramConfig) validate() error {
	if config.Token != "" && config.ChatID == "" {
		return fmt.Errorf("missing variable: chat_id is required when token is set")
	}
	if config.Token == "" && config.ChatID != "" {
		return fmt.Errorf("missing variable: token is required when chat_id is set")
	}
	return nil
}

func (config TelegramConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.chat_id", "")
}

func (config TelegramConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"telegram.token":   "TELEGRAM_BOT_TOKEN",
		"telegram.chat_id": "TELEGRAM_CHAT_ID",
	})
}
