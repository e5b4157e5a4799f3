package commands

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"toolcurator-backend/lib/configutil"
	"toolcurator-backend/lib/serviceutil"
	"toolcurator-backend/lib/storage"
	"toolcurator-backend/services/api"
	"toolcurator-backend/services/catalog"
	"toolcurator-backend/services/catalog/db"
	"toolcurator-backend/services/screenshot"
	"toolcurator-backend/services/trends"

	"github.com/spf13/cobra"
)

type Config struct {
	Port       int                `json:"port"`
	Database   storage.Config     `json:"database"`
	Screenshot screenshot.Config  `json:"screenshot"`
	Trends     trends.Config      `json:"trends"`
	Api        api.Config         `json:"api"`
	Smtp       catalog.SmtpConfig `json:"smtp"`
}

var rootCmd = &cobra.Command{
	Use:   "toolcurator",
	Short: "toolcurator aggregates AI tool directories into one catalog and serves it over HTTP.",
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads config.json5 when present, then lets the
// environment override the credentials and connection parameters so
// deployments can run without a config file at all.
func loadConfig() Config {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("read config", err)
	}

	configutil.OverrideFromEnv(&cfg.Database.File, "DB_NAME")
	configutil.OverrideFromEnv(&cfg.Database.Host, "DB_HOST")
	configutil.OverrideFromEnv(&cfg.Database.Port, "DB_PORT")
	configutil.OverrideFromEnv(&cfg.Database.User, "DB_USER")
	configutil.OverrideFromEnv(&cfg.Database.AuthToken, "DB_PASSWORD")
	configutil.OverrideFromEnv(&cfg.Screenshot.ApiKey, "SCREENSHOTONE_API_KEY")
	configutil.OverrideFromEnv(&cfg.Trends.ApiKey, "SERPAPI_KEY")

	if cfg.Database.File == "" && cfg.Database.Host == "" {
		cfg.Database.File = "catalog.db"
	}
	if cfg.Port == 0 {
		cfg.Port = 8000
	}
	// the api serves what the enricher writes
	if cfg.Api.ScreenshotDir == "" && cfg.Screenshot.Dir != "" {
		cfg.Api.ScreenshotDir = cfg.Screenshot.Dir
	}
	return cfg
}

func openStore(cfg Config) *sql.DB {
	database, err := cfg.Database.OpenDB()
	if err != nil {
		serviceutil.Fatal("open database", err)
	}
	_, err = database.Exec(db.Schema)
	if err != nil {
		serviceutil.Fatal("apply schema", err)
	}
	return database
}
