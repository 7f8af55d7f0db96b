package main

import (
	"fmt"
	"github.com/maxaizer/job-radar/internal/sources"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List supported sources and whether they are enabled",
	RunE:  runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, args []string) error {

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	all := sources.All(newSourceSettings(cfg))
	enabled := lo.Map(sources.Select(all, cfg.Scraper.SourceNames()), func(s sources.Source, _ int) string {
		return s.Name()
	})

	for _, source := range all {
		mark := " "
		if lo.Contains(enabled, source.Name()) {
			mark = "x"
		}
		fmt.Printf("[%s] %s\n", mark, source.Name())
	}
	return nil
}
