package main

import (
	"context"
	"github.com/maxaizer/job-radar/internal/metrics"
	"github.com/maxaizer/job-radar/internal/services"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"os/signal"
	"syscall"
	"time"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run cycles forever",
	Long:  "Runs one cycle immediately and then one per check interval; blocks until SIGINT/SIGTERM.",
	RunE:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if a.cfg.Metrics.Addr != "" {
		server := metrics.StartServer(a.cfg.Metrics.Addr)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(shutdownCtx)
		}()
	}

	scheduler, err := services.NewScheduler(a.aggregator, a.cfg.Scraper.Interval(), a.cfg.Scraper.CooldownDuration())
	if err != nil {
		return err
	}

	log.Infof("watching %d sources for %q", len(a.aggregator.Sources()), a.cfg.Scraper.Skills)
	return scheduler.Run(ctx)
}
