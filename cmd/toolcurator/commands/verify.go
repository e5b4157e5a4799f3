package commands

import (
	"os"
	"toolcurator-backend/lib/serviceutil"
	"toolcurator-backend/services/catalog"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(verifyCmd)
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Prints the newest catalog rows for a quick sanity check after a run.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		database := openStore(cfg)
		defer database.Close()

		service := catalog.NewService(database, catalog.Options{})
		rows, err := service.RecentTools(cmd.Context(), 10)
		if err != nil {
			serviceutil.Fatal("list recent tools", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"ID", "Name", "Source", "URL", "Type"})

		for _, row := range rows {
			t.AppendRow(table.Row{row.ID, row.Name, row.Source, row.SourceUrl, row.Type})
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
