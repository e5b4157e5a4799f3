package testutil

import (
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"toolcurator-backend/lib/telemetry"

	_ "modernc.org/sqlite"
)

type ServiceParams struct {
	Name string
	// if unspecified, it will skip setting up a db
	DbSchema string
}

type ServiceResult struct {
	DB *sql.DB
}

func SetupService(t testing.TB, params ServiceParams) (ServiceResult, func()) {
	cleanup := telemetry.SetupForTesting(t, fmt.Sprintf("test:%s", params.Name))

	result := ServiceResult{}
	if params.DbSchema != "" {
		sqlite, err := sql.Open("sqlite", ":memory:")
		if err != nil {
			t.Fatal(err)
		}
		// a second connection would get its own empty in-memory database
		sqlite.SetMaxOpenConns(1)
		_, err = sqlite.Exec(params.DbSchema)
		if err != nil && !strings.Contains(err.Error(), "already exists") {
			t.Fatal(err)
		}
		result.DB = sqlite
	}

	return result, cleanup
}
