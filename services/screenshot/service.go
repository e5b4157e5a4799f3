package screenshot

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"toolcurator-backend/lib/telemetry"
	"toolcurator-backend/lib/textutil"
	"toolcurator-backend/services/catalog"
	"toolcurator-backend/services/catalog/db"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	_ "modernc.org/sqlite"
)

var tracer = otel.Tracer("services/screenshot")

// only the first few rows of a source are ever displayed, capturing
// more would burn rendering credits for nothing
const perSourceLimit = 8

const viewportWidth = 1280
const viewportHeight = 800

type Config struct {
	ApiKey  string `json:"api_key"`
	BaseUrl string `json:"base_url"`
	// directory screenshots are written to, also served by the api
	Dir string `json:"dir"`
}

// Service captures screenshots for catalog rows that don't have one
// yet and records the artifact path on the row.
type Service struct {
	qry    *db.Queries
	client *resty.Client
	config Config
}

func NewService(database *sql.DB, config Config) Service {
	if config.BaseUrl == "" {
		config.BaseUrl = "https://api.screenshotone.com"
	}
	if config.Dir == "" {
		config.Dir = "static/screenshots"
	}

	client := resty.New()
	client.SetTimeout(time.Second * 60)
	telemetry.InstrumentResty(client, "services/screenshot")

	return Service{
		qry:    db.New(database),
		client: client,
		config: config,
	}
}

type Stats struct {
	Captured int
	Skipped  int
	Failed   int
}

// Run performs one enrichment pass. Re-running is safe: rows whose
// artifact already exists non-empty on disk are never re-captured,
// and a failed candidate only costs that candidate.
func (s Service) Run(ctx context.Context) (Stats, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	if err := os.MkdirAll(s.config.Dir, 0o755); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Stats{}, err
	}

	var candidates []db.AiTool
	for _, source := range catalog.Sources {
		rows, err := s.qry.ListToolsBySource(ctx, db.ListToolsBySourceParams{
			Source: source,
			Limit:  perSourceLimit,
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return Stats{}, err
		}
		candidates = append(candidates, rows...)
	}

	var stats Stats
	for _, tool := range candidates {
		if s.artifactExists(tool.Name) {
			stats.Skipped++
			continue
		}
		if strings.TrimSpace(tool.SourceUrl) == "" {
			stats.Skipped++
			slog.InfoContext(ctx, "no url for tool, skipping", "name", tool.Name)
			continue
		}

		err := s.capture(ctx, tool)
		if err != nil {
			stats.Failed++
			slog.ErrorContext(ctx, "failed to capture screenshot",
				"name", tool.Name, "url", tool.SourceUrl, "err", err)
			continue
		}
		stats.Captured++
		slog.InfoContext(ctx, "captured screenshot", "name", tool.Name)
	}

	span.SetAttributes(
		attribute.Int("captured", stats.Captured),
		attribute.Int("skipped", stats.Skipped),
		attribute.Int("failed", stats.Failed),
	)
	return stats, nil
}

func (s Service) artifactExists(name string) bool {
	info, err := os.Stat(filepath.Join(s.config.Dir, textutil.ScreenshotFilename(name)))
	return err == nil && info.Size() > 0
}

func (s Service) capture(ctx context.Context, tool db.AiTool) error {
	res, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"access_key":      s.config.ApiKey,
			"url":             tool.SourceUrl,
			"viewport_width":  strconv.Itoa(viewportWidth),
			"viewport_height": strconv.Itoa(viewportHeight),
			"format":          "png",
		}).
		Get(s.config.BaseUrl + "/take")
	if err != nil {
		return err
	}
	if res.StatusCode() != 200 {
		return fmt.Errorf("rendering service returned status %d", res.StatusCode())
	}

	// a 200 carrying an error page instead of an image must not end up on disk
	if _, err := png.Decode(bytes.NewReader(res.Body())); err != nil {
		return fmt.Errorf("decode screenshot: %w", err)
	}

	filename := textutil.ScreenshotFilename(tool.Name)
	path := filepath.Join(s.config.Dir, filename)
	if err := os.WriteFile(path, res.Body(), 0o644); err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		return fmt.Errorf("screenshot file missing or empty: %s", path)
	}

	return s.qry.UpdateToolScreenshot(ctx, db.UpdateToolScreenshotParams{
		ScreenshotUrl: sql.NullString{String: "/static/screenshots/" + filename, Valid: true},
		SourceUrl:     tool.SourceUrl,
	})
}
