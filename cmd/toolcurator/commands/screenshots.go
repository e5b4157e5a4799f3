package commands

import (
	"log/slog"
	"toolcurator-backend/lib/serviceutil"
	"toolcurator-backend/services/screenshot"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(screenshotsCmd)
}

var screenshotsCmd = &cobra.Command{
	Use:   "screenshots",
	Short: "Captures screenshots for catalog rows that don't have one yet.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		database := openStore(cfg)
		defer database.Close()

		service := screenshot.NewService(database, cfg.Screenshot)
		stats, err := service.Run(cmd.Context())
		if err != nil {
			serviceutil.Fatal("screenshot run failed", err)
		}

		slog.Info("screenshot run finished",
			"captured", stats.Captured,
			"skipped", stats.Skipped,
			"failed", stats.Failed)
	},
}
