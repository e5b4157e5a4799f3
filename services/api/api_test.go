package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"toolcurator-backend/lib/scrapers"
	"toolcurator-backend/lib/testutil"
	"toolcurator-backend/services/catalog"
	"toolcurator-backend/services/catalog/db"
	"toolcurator-backend/services/trends"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

type fixture struct {
	server  *httptest.Server
	catalog catalog.Service
	qry     *db.Queries
	sqlDB   *sql.DB
	dir     string
	ctx     context.Context
}

func setupApi(t *testing.T, config Config) fixture {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/api",
		DbSchema: db.Schema,
	})
	t.Cleanup(cleanup)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	t.Cleanup(cancel)

	trendsUpstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"trending_searches": [{"query": "chatgpt"}, {"query": "llama"}]}`))
	}))
	t.Cleanup(trendsUpstream.Close)

	dir := t.TempDir()
	config.ScreenshotDir = dir

	catalogService := catalog.NewService(setup.DB, catalog.Options{})
	server := NewServer(
		catalogService,
		trends.NewService(trends.Config{ApiKey: "test-key", BaseUrl: trendsUpstream.URL}),
		config,
	)

	mux := http.NewServeMux()
	server.Register(mux)
	api := httptest.NewServer(mux)
	t.Cleanup(api.Close)

	return fixture{
		server:  api,
		catalog: catalogService,
		qry:     db.New(setup.DB),
		sqlDB:   setup.DB,
		dir:     dir,
		ctx:     ctx,
	}
}

func get(t *testing.T, url string) (int, []byte) {
	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, body
}

func postJSON(t *testing.T, url, body string) (int, []byte) {
	res, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, data
}

func TestListTools(t *testing.T) {
	f := setupApi(t, Config{DefaultImageUrl: "https://cdn.example.com/placeholder.png"})

	f.catalog.Reconcile(f.ctx, []scrapers.Record{
		{Name: "Acme AI", ShortDescription: "Great tool", Category: "Writing",
			Source: "FutureTools.io", SourceUrl: "https://acme.ai"},
		{Name: "Beta", ShortDescription: "Other tool", Category: "Video",
			Source: "FutureTools.io", SourceUrl: "https://beta.ai"},
	})
	err := f.qry.UpdateToolScreenshot(f.ctx, db.UpdateToolScreenshotParams{
		ScreenshotUrl: sql.NullString{String: "/static/screenshots/acme_ai.png", Valid: true},
		SourceUrl:     "https://acme.ai",
	})
	require.NoError(t, err)

	status, body := get(t, f.server.URL+"/tools?source=FutureTools.io")
	require.Equal(t, http.StatusOK, status)

	var tools []toolResponse
	require.NoError(t, json.Unmarshal(body, &tools))

	want := []toolResponse{
		{
			Name:             "Acme AI",
			Category:         "Writing",
			Source:           "FutureTools.io",
			SourceUrl:        "https://acme.ai",
			ShortDescription: "Great tool",
			FullDescription:  "Great tool",
			ScreenshotUrl:    f.server.URL + "/screenshots/acme_ai.png",
			Type:             "new",
		},
		{
			Name:             "Beta",
			Category:         "Video",
			Source:           "FutureTools.io",
			SourceUrl:        "https://beta.ai",
			ShortDescription: "Other tool",
			FullDescription:  "Other tool",
			ScreenshotUrl:    "https://cdn.example.com/placeholder.png",
			Type:             "new",
		},
	}
	if diff := cmp.Diff(want, tools); diff != "" {
		t.Fatalf("unexpected tools (-want +got):\n%s", diff)
	}
}

func TestListToolsEmptyIsArray(t *testing.T) {
	f := setupApi(t, Config{})

	status, body := get(t, f.server.URL+"/tools?source=Nope")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "[]", strings.TrimSpace(string(body)))
}

func TestScreenshot(t *testing.T) {
	f := setupApi(t, Config{})

	err := os.WriteFile(filepath.Join(f.dir, "acme_ai.png"), []byte("png bytes"), 0o644)
	require.NoError(t, err)

	status, body := get(t, f.server.URL+"/screenshots/acme_ai.png")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "png bytes", string(body))

	status, _ = get(t, f.server.URL+"/screenshots/missing.png")
	require.Equal(t, http.StatusNotFound, status)
}

func TestSubscribe(t *testing.T) {
	f := setupApi(t, Config{})

	status, _ := postJSON(t, f.server.URL+"/subscribe", `{"email": "a@example.com"}`)
	require.Equal(t, http.StatusOK, status)

	status, body := postJSON(t, f.server.URL+"/subscribe", `{"email": "a@example.com"}`)
	require.Equal(t, http.StatusBadRequest, status)
	require.Contains(t, string(body), "already subscribed")

	status, _ = postJSON(t, f.server.URL+"/subscribe", `{"email": ""}`)
	require.Equal(t, http.StatusBadRequest, status)

	status, _ = postJSON(t, f.server.URL+"/subscribe", `not json`)
	require.Equal(t, http.StatusBadRequest, status)
}

func TestSubscribeHidesInternalErrors(t *testing.T) {
	f := setupApi(t, Config{})

	// break the store to force an unexpected failure
	require.NoError(t, f.sqlDB.Close())

	status, body := postJSON(t, f.server.URL+"/subscribe", `{"email": "a@example.com"}`)
	require.Equal(t, http.StatusInternalServerError, status)
	require.NotContains(t, string(body), "closed")
	require.Contains(t, string(body), "subscription failed")
}

func TestSubscribeExposesErrorsWhenConfigured(t *testing.T) {
	f := setupApi(t, Config{ExposeErrors: true})

	require.NoError(t, f.sqlDB.Close())

	status, body := postJSON(t, f.server.URL+"/subscribe", `{"email": "a@example.com"}`)
	require.Equal(t, http.StatusInternalServerError, status)
	require.Contains(t, string(body), "closed")
}

func TestTrends(t *testing.T) {
	f := setupApi(t, Config{})

	status, body := get(t, f.server.URL+"/trends")
	require.Equal(t, http.StatusOK, status)

	var titles []string
	require.NoError(t, json.Unmarshal(body, &titles))
	require.Equal(t, []string{"chatgpt", "llama"}, titles)
}

func TestIndex(t *testing.T) {
	f := setupApi(t, Config{})

	status, body := get(t, f.server.URL+"/")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, string(body), "ok")
}
