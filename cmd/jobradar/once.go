package main

import (
	"encoding/json"
	"fmt"
	"github.com/spf13/cobra"
	"os"
	"os/signal"
	"syscall"
)

var onceJSON bool

var onceCmd = &cobra.Command{
	Use:   "once",
	Short: "Run a single cycle and exit",
	RunE:  runOnce,
}

func init() {
	onceCmd.Flags().BoolVar(&onceJSON, "json", false, "print the cycle report as JSON")
	rootCmd.AddCommand(onceCmd)
}

func runOnce(cmd *cobra.Command, args []string) error {

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	report, err := a.aggregator.RunCycle(ctx)
	if err != nil {
		return err
	}

	if onceJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	}

	fmt.Printf("examined %d jobs, %d new\n", report.Examined, report.New)
	for _, job := range report.NewJobs {
		fmt.Printf("  [%s] %s at %s (%s)\n    %s\n", job.Portal, job.Title, job.Company, job.PostedDate, job.Link)
	}
	if len(report.FailedSources) > 0 {
		fmt.Printf("failed sources: %v\n", report.FailedSources)
	}
	return nil
}
