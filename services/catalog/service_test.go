package catalog

import (
	"context"
	"testing"
	"time"
	"toolcurator-backend/lib/scrapers"
	"toolcurator-backend/lib/testutil"
	"toolcurator-backend/services/catalog/db"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupCatalog(t *testing.T) (Service, *db.Queries, context.Context) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/catalog",
		DbSchema: db.Schema,
	})
	t.Cleanup(cleanup)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	t.Cleanup(cancel)

	return NewService(setup.DB, Options{}), db.New(setup.DB), ctx
}

func TestReconcileUpsertIdempotent(t *testing.T) {
	service, qry, ctx := setupCatalog(t)

	record := scrapers.Record{
		Name:             "Acme AI",
		ShortDescription: "Great tool",
		Category:         "Writing",
		Source:           "FutureTools.io",
		SourceUrl:        "https://acme.ai",
	}

	stats := service.Reconcile(ctx, []scrapers.Record{record})
	require.Equal(t, Stats{Processed: 1}, stats)

	record.ShortDescription = "Even greater tool"
	stats = service.Reconcile(ctx, []scrapers.Record{record})
	require.Equal(t, Stats{Processed: 1}, stats)

	count, err := qry.CountToolsByNameSource(ctx, db.CountToolsByNameSourceParams{
		Name:   "Acme AI",
		Source: "FutureTools.io",
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	row, err := qry.GetToolByNameSource(ctx, db.GetToolByNameSourceParams{
		Name:   "Acme AI",
		Source: "FutureTools.io",
	})
	require.NoError(t, err)
	require.Equal(t, "Even greater tool", row.ShortDescription)
}

func TestReconcileForceInsertOnDuplicateUrl(t *testing.T) {
	service, qry, ctx := setupCatalog(t)

	stats := service.Reconcile(ctx, []scrapers.Record{
		{Name: "X", Source: "Toolify.ai", SourceUrl: "https://x.ai"},
		{Name: "X2", Source: "Toolify.ai", SourceUrl: "https://x.ai"},
	})
	require.Equal(t, 2, stats.Processed)
	require.Equal(t, 1, stats.Forced)
	require.Equal(t, 0, stats.Failed)

	first, err := qry.GetToolByNameSource(ctx, db.GetToolByNameSourceParams{
		Name:   "X",
		Source: "Toolify.ai",
	})
	require.NoError(t, err)
	require.Equal(t, "https://x.ai", first.SourceUrl)

	second, err := qry.GetToolByNameSource(ctx, db.GetToolByNameSourceParams{
		Name:   "X2",
		Source: "Toolify.ai",
	})
	require.NoError(t, err)
	require.Equal(t, "https://x.ai_1", second.SourceUrl)
}

func TestReconcileFullDescriptionFallback(t *testing.T) {
	service, qry, ctx := setupCatalog(t)

	service.Reconcile(ctx, []scrapers.Record{{
		Name:             "Acme AI",
		ShortDescription: "Great tool",
		FullDescription:  "",
		Category:         "Writing",
		Source:           "FutureTools.io",
		SourceUrl:        "https://acme.ai",
	}})

	row, err := qry.GetToolByNameSource(ctx, db.GetToolByNameSourceParams{
		Name:   "Acme AI",
		Source: "FutureTools.io",
	})
	require.NoError(t, err)
	require.Equal(t, "Great tool", row.FullDescription)
	require.Equal(t, "Writing", row.Category)
	require.Equal(t, "new", row.Type)
}

func TestReconcileDefaultsUnknownCategory(t *testing.T) {
	service, qry, ctx := setupCatalog(t)

	service.Reconcile(ctx, []scrapers.Record{{
		Name:      "Mystery",
		Source:    "Toolify.ai",
		SourceUrl: "https://mystery.ai",
	}})

	row, err := qry.GetToolByNameSource(ctx, db.GetToolByNameSourceParams{
		Name:   "Mystery",
		Source: "Toolify.ai",
	})
	require.NoError(t, err)
	require.Equal(t, "Unknown", row.Category)
}

func TestReconcileSkipsRecordsMissingIdentity(t *testing.T) {
	service, _, ctx := setupCatalog(t)

	stats := service.Reconcile(ctx, []scrapers.Record{
		{Name: "", Source: "Toolify.ai", SourceUrl: "https://a.ai"},
		{Name: "A", Source: " ", SourceUrl: "https://b.ai"},
		{Name: "B", Source: "Toolify.ai", SourceUrl: "https://c.ai"},
	})
	require.Equal(t, 2, stats.Skipped)
	require.Equal(t, 1, stats.Processed)
}

func TestListToolsTopFallback(t *testing.T) {
	service, _, ctx := setupCatalog(t)

	service.Reconcile(ctx, []scrapers.Record{
		{Name: "A", Source: "Toolify.ai", SourceUrl: "https://a.ai", Type: "top"},
		{Name: "B", Source: "FutureTools.io", SourceUrl: "https://b.ai", Type: "new"},
	})

	// no "top" rows for FutureTools.io, should fall back to the global set
	rows, err := service.ListTools(ctx, "FutureTools.io", "top")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "A", rows[0].Name)
}

func TestListToolsNewHasNoFallback(t *testing.T) {
	service, _, ctx := setupCatalog(t)

	service.Reconcile(ctx, []scrapers.Record{
		{Name: "A", Source: "Toolify.ai", SourceUrl: "https://a.ai", Type: "new"},
	})

	rows, err := service.ListTools(ctx, "FutureTools.io", "new")
	require.NoError(t, err)
	require.Len(t, rows, 0)
}

func TestListToolsDefaultsToNew(t *testing.T) {
	service, _, ctx := setupCatalog(t)

	service.Reconcile(ctx, []scrapers.Record{
		{Name: "A", Source: "Toolify.ai", SourceUrl: "https://a.ai", Type: "new"},
		{Name: "B", Source: "Toolify.ai", SourceUrl: "https://b.ai", Type: "top"},
	})

	rows, err := service.ListTools(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "A", rows[0].Name)
}

func TestSubscribe(t *testing.T) {
	service, _, ctx := setupCatalog(t)

	require.ErrorIs(t, service.Subscribe(ctx, "  "), ErrEmailRequired)
	require.NoError(t, service.Subscribe(ctx, "a@example.com"))
	require.ErrorIs(t, service.Subscribe(ctx, "a@example.com"), ErrAlreadySubscribed)
	require.NoError(t, service.Subscribe(ctx, "b@example.com"))
}
