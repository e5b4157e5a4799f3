package commands

import (
	"net/http"
	"toolcurator-backend/lib/serviceutil"
	"toolcurator-backend/lib/telemetry"
	"toolcurator-backend/services/api"
	"toolcurator-backend/services/catalog"
	"toolcurator-backend/services/trends"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the catalog read API over HTTP.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		database := openStore(cfg)
		defer database.Close()

		server := api.NewServer(
			catalog.NewService(database, catalog.Options{Smtp: cfg.Smtp}),
			trends.NewService(cfg.Trends),
			cfg.Api,
		)

		mux := http.NewServeMux()
		server.Register(mux)

		telemetry.InstrumentPerfStats(cmd.Context())
		go serviceutil.StartHttpServer(cfg.Port, mux)
		<-cmd.Context().Done()
	},
}
