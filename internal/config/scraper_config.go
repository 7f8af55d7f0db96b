package config

import (
	"errors"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"strings"
	"time"
)

const DefaultSkills = "java,spring,spring boot,microservices,hibernate,jpa,rest api,sql,mysql,postgres,docker,kubernetes"

type ScraperConfig struct {
	Skills               string  `mapstructure:"skills" validate:"required"`
	MaxDaysOld           int     `mapstructure:"max_days_old" validate:"gte=0"`
	CheckInterval        int     `mapstructure:"check_interval" validate:"gte=1"`
	Cooldown             int     `mapstructure:"cooldown" validate:"gte=0"`
	RequestTimeout       int     `mapstructure:"request_timeout" validate:"gte=1"`
	SourcePauseMs        int     `mapstructure:"source_pause_ms" validate:"gte=0"`
	MaxRequestsPerSecond float64 `mapstructure:"max_requests_per_second" validate:"gte=0"`
	Sources              string  `mapstructure:"sources"`
	SortByRecency        bool    `mapstructure:"sort_by_recency"`
}

func (config ScraperConfig) Interval() time.Duration {
	return time.Duration(config.CheckInterval) * time.Second
}

func (config ScraperConfig) CooldownDuration() time.Duration {
	return time.Duration(config.Cooldown) * time.Second
}

func (config ScraperConfig) Timeout() time.Duration {
	return time.Duration(config.RequestTimeout) * time.Second
}

func (config ScraperConfig) Pause() time.Duration {
	return time.Duration(config.SourcePauseMs) * time.Millisecond
}

// SourceNames returns the lowercased portal names to enable, empty meaning all.
func (config ScraperConfig) SourceNames() []string {
	return lo.FilterMap(strings.Split(config.Sources, ","), func(s string, _ int) (string, bool) {
		s = strings.ToLower(strings.TrimSpace(s))
		return s, s != ""
	})
}

func (config ScraperConfig) validate() error {
	if strings.Trim(config.Skills, ", ") == "" {
		return errors.New("skills list has no entries")
	}
	return nil
}

func (config ScraperConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("scraper.skills", DefaultSkills)
	v.SetDefault("scraper.max_days_old", 10)
	v.SetDefault("scraper.check_interval", 300)
	v.SetDefault("scraper.cooldown", 60)
	v.SetDefault("scraper.request_timeout", 15)
	v.SetDefault("scraper.source_pause_ms", 2000)
	v.SetDefault("scraper.max_requests_per_second", 0)
	v.SetDefault("scraper.sources", "")
	v.SetDefault("scraper.sort_by_recency", true)
}

func (config ScraperConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"scraper.skills":                  "JOB_SKILLS",
		"scraper.max_days_old":            "MAX_DAYS_OLD",
		"scraper.check_interval":          "CHECK_INTERVAL",
		"scraper.cooldown":                "COOLDOWN",
		"scraper.request_timeout":         "REQUEST_TIMEOUT",
		"scraper.source_pause_ms":         "SOURCE_PAUSE_MS",
		"scraper.max_requests_per_second": "MAX_REQUESTS_PER_SECOND",
		"scraper.sources":                 "SOURCES",
		"scraper.sort_by_recency":         "SORT_BY_RECENCY",
	})
}
