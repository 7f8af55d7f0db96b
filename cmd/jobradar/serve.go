package main

import (
	"github.com/maxaizer/job-radar/internal/dashboard"
	"github.com/maxaizer/job-radar/internal/services"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"os/signal"
	"syscall"
)

var onRequest bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard",
	Long: "Serves the dashboard. Cycles run in the background on the check interval, " +
		"or once per page view with --on-request.",
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&onRequest, "on-request", false, "run a cycle on every page view instead of in the background")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	runOnRequest := onRequest || a.cfg.Dashboard.RunOnRequest

	server, err := dashboard.NewServer(a.bus, a.seenJobs, a.data, a.aggregator, dashboard.Options{
		User:         a.cfg.Dashboard.User,
		Password:     a.cfg.Dashboard.Password,
		PageSize:     a.cfg.Dashboard.PageSize,
		RunOnRequest: runOnRequest,
	})
	if err != nil {
		return err
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return dashboard.Serve(groupCtx, a.cfg.Dashboard.Addr(), server.Handler())
	})

	if runOnRequest {
		log.Info("cycles run on every dashboard request")
	} else {
		scheduler, err := services.NewScheduler(a.aggregator, a.cfg.Scraper.Interval(), a.cfg.Scraper.CooldownDuration())
		if err != nil {
			return err
		}
		group.Go(func() error {
			return scheduler.Run(groupCtx)
		})
	}

	return group.Wait()
}
