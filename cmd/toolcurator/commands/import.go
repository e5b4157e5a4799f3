package commands

import (
	"log/slog"
	"os"
	"toolcurator-backend/lib/serviceutil"
	"toolcurator-backend/services/catalog"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Bulk-loads a spreadsheet export into the catalog.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		f, err := os.Open(args[0])
		if err != nil {
			serviceutil.Fatal("open import file", err)
		}
		defer f.Close()

		database := openStore(cfg)
		defer database.Close()

		service := catalog.NewService(database, catalog.Options{Smtp: cfg.Smtp})
		stats, err := service.ImportCSV(cmd.Context(), f)
		if err != nil {
			serviceutil.Fatal("import failed", err)
		}

		slog.Info("import finished",
			"processed", stats.Processed,
			"skipped", stats.Skipped,
			"forced", stats.Forced,
			"failed", stats.Failed)
	},
}
