package main

import (
	"github.com/asaskevich/EventBus"
	"github.com/joho/godotenv"
	"github.com/maxaizer/job-radar/internal/config"
	"github.com/maxaizer/job-radar/internal/filter"
	"github.com/maxaizer/job-radar/internal/logger"
	"github.com/maxaizer/job-radar/internal/metrics"
	"github.com/maxaizer/job-radar/internal/notifier"
	"github.com/maxaizer/job-radar/internal/repositories"
	"github.com/maxaizer/job-radar/internal/services"
	"github.com/maxaizer/job-radar/internal/sources"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:          "jobradar",
	Short:        "Aggregates job postings and reports the new ones",
	Long:         "job-radar polls job boards, keeps postings that match your skills and relays the ones it has not seen before.",
	SilenceUsage: true,
	RunE:         runRun,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: CONFIG_PATH env var or ./configs/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// app holds everything a command needs after startup. close releases it in reverse order.
type app struct {
	cfg        *config.Config
	bus        EventBus.Bus
	db         *repositories.DbContext
	seenJobs   *repositories.SeenJobs
	data       *repositories.Data
	sink       notifier.Sink
	aggregator *services.Aggregator
	closers    []func()
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	logger.Cleanup()
}

func loadConfig() (*config.Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Debug("loaded environment from .env")
	}
	if cfgPath != "" {
		return config.Load(cfgPath)
	}
	return config.Get(), nil
}

func setupLogging(cfg *config.Config) error {
	if debug {
		cfg.Logger.LogLevel = config.LevelDebug
	}
	return logger.Setup(cfg.Logger)
}

func newApp() (*app, error) {

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err = setupLogging(cfg); err != nil {
		return nil, err
	}
	metrics.Register()

	a := &app{cfg: cfg, bus: EventBus.New()}

	a.db, err = repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		return nil, errors.Wrap(err, "can't create db context")
	}
	a.closers = append(a.closers, func() {
		if err := a.db.Close(); err != nil {
			log.Errorf("failed to close db: %v", err)
		}
	})

	if err = a.db.Migrate(); err != nil {
		a.close()
		return nil, errors.Wrap(err, "can't migrate db context")
	}

	a.seenJobs = repositories.NewSeenJobsRepository(a.db.DB)
	a.data = repositories.NewDataRepository(a.db.DB)

	a.sink, err = a.newSink()
	if err != nil {
		a.close()
		return nil, err
	}

	selected := sources.Select(sources.All(newSourceSettings(cfg)), cfg.Scraper.SourceNames())
	if len(selected) == 0 {
		a.close()
		return nil, errors.Errorf("no known source in %q", cfg.Scraper.Sources)
	}

	a.aggregator, err = services.NewAggregator(a.bus, selected, repositories.NewCachedSeenJobs(a.seenJobs), a.sink,
		services.AggregatorOptions{
			Pause:         cfg.Scraper.Pause(),
			SortByRecency: cfg.Scraper.SortByRecency,
		})
	if err != nil {
		a.close()
		return nil, err
	}

	return a, nil
}

func newSourceSettings(cfg *config.Config) sources.Settings {
	client := sources.NewClient(cfg.Scraper.Timeout())
	client.SetRateLimit(cfg.Scraper.MaxRequestsPerSecond)

	return sources.Settings{
		Skills:  filter.ParseSkills(cfg.Scraper.Skills),
		Recency: filter.Recency{MaxDaysOld: cfg.Scraper.MaxDaysOld},
		Client:  client,
	}
}

// newSink picks the configured channels. Without any, matches only go to the log.
func (a *app) newSink() (notifier.Sink, error) {

	var sinks notifier.Fanout

	if a.cfg.Telegram.Enabled() {
		telegram, err := notifier.NewTelegramSink(a.cfg.Telegram.Token, a.cfg.Telegram.ChatID)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, telegram)
	}

	if a.cfg.Nats.Enabled() {
		nats, err := notifier.NewNatsSink(a.cfg.Nats.URL, a.cfg.Nats.Subject)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, nats.Close)
		sinks = append(sinks, nats)
	}

	switch len(sinks) {
	case 0:
		log.Warn("no notification channel configured, new jobs are only logged")
		return notifier.LogSink{}, nil
	case 1:
		return sinks[0], nil
	default:
		return sinks, nil
	}
}
