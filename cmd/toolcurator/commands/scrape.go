package commands

import (
	"log/slog"
	"time"
	"toolcurator-backend/lib/scrapers"
	"toolcurator-backend/lib/scrapers/futuretools"
	"toolcurator-backend/lib/scrapers/toolify"
	"toolcurator-backend/services/catalog"

	"github.com/spf13/cobra"
)

var scrapeSource *string

func init() {
	scrapeSource = scrapeCmd.Flags().String("source", "", "Only run the adapter for this source.")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--source <name>]",
	Short: "Scrapes the directory sites and reconciles the results into the catalog.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		database := openStore(cfg)
		defer database.Close()

		service := catalog.NewService(database, catalog.Options{Smtp: cfg.Smtp})

		adapters := []scrapers.Adapter{
			futuretools.NewAdapter(scrapers.NewResolver()),
			toolify.NewAdapter(),
		}

		for _, adapter := range adapters {
			if *scrapeSource != "" && adapter.Source() != *scrapeSource {
				continue
			}

			t1 := time.Now()
			records, err := adapter.FetchRawRecords(cmd.Context())
			if err != nil {
				slog.Error("scrape failed", "source", adapter.Source(), "err", err)
				continue
			}

			stats := service.Reconcile(cmd.Context(), records)
			slog.Info("scraped source",
				"source", adapter.Source(),
				"seconds", time.Since(t1).Seconds(),
				"processed", stats.Processed,
				"skipped", stats.Skipped,
				"forced", stats.Forced,
				"failed", stats.Failed)
		}
	},
}
