package main

import (
	"github.com/maxaizer/job-radar/internal/notifier"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Notification subcommands",
}

var notifyTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a test notification",
	Long:  "Sends a test job through every configured notification channel.",
	RunE:  runNotifyTest,
}

func init() {
	rootCmd.AddCommand(notifyCmd)
	notifyCmd.AddCommand(notifyTestCmd)
}

func runNotifyTest(cmd *cobra.Command, args []string) error {

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err = notifier.SendTestMessage(cmd.Context(), a.sink); err != nil {
		return err
	}
	log.Info("test notification sent successfully")
	return nil
}
