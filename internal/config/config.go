package config

import (
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"os"
	"strings"
)

type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	Scraper   ScraperConfig   `mapstructure:"scraper"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Nats      NatsConfig      `mapstructure:"nats"`
	DB        DBConfig        `mapstructure:"db"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

var defaultConfigFile = "./configs/config.yaml"

// Get loads configuration from CONFIG_PATH (or ./configs/config.yaml when it exists)
// and the environment, exiting the process when it is invalid.
func Get() *Config {

	file, ok := os.LookupEnv("CONFIG_PATH")
	if !ok {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			file = defaultConfigFile
		}
	}

	config, err := Load(file)
	if err != nil {
		log.Fatal(err)
	}

	return config
}

// Load reads an optional YAML file, then environment variables on top of it.
func Load(file string) (*Config, error) {

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := bindEnvironmentVariables(v); err != nil {
		return nil, err
	}

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", file, err)
		}
	}

	config := Config{}
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	LoggerConfig{}.setDefaults(v)
	ScraperConfig{}.setDefaults(v)
	TelegramConfig{}.setDefaults(v)
	NatsConfig{}.setDefaults(v)
	DBConfig{}.setDefaults(v)
	DashboardConfig{}.setDefaults(v)
	MetricsConfig{}.setDefaults(v)
}

func bindEnvironmentVariables(v *viper.Viper) error {
	var errs []error

	binders := map[string]func(*viper.Viper) error{
		"LoggerConfig":    LoggerConfig{}.bindEnvironmentVariables,
		"ScraperConfig":   ScraperConfig{}.bindEnvironmentVariables,
		"TelegramConfig":  TelegramConfig{}.bindEnvironmentVariables,
		"NatsConfig":      NatsConfig{}.bindEnvironmentVariables,
		"DBConfig":        DBConfig{}.bindEnvironmentVariables,
		"DashboardConfig": DashboardConfig{}.bindEnvironmentVariables,
		"MetricsConfig":   MetricsConfig{}.bindEnvironmentVariables,
	}

	for name, bind := range binders {
		if err := bind(v); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config Config) validate() error {
	var errs []error

	if err := validator.New().Struct(config); err != nil {
		errs = append(errs, err)
	}

	if err := config.Scraper.validate(); err != nil {
		errs = append(errs, fmt.Errorf("ScraperConfig: %w", err))
	}

	if err := config.Telegram.validate(); err != nil {
		errs = append(errs, fmt.Errorf("TelegramConfig: %w", err))
	}

	if err := config.Logger.validate(); err != nil {
		errs = append(errs, fmt.Errorf("LoggerConfig: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func bindAll(v *viper.Viper, bindings map[string]string) error {
	var errs []error
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
