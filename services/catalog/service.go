package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"time"
	"toolcurator-backend/lib/scrapers"
	"toolcurator-backend/services/catalog/db"

	"github.com/jordan-wright/email"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	_ "modernc.org/sqlite"
)

var tracer = otel.Tracer("services/catalog")

// Sources are the directory sites the pipeline knows about. The
// screenshot enricher selects its candidates per entry in this list.
var Sources = []string{
	"FutureTools.io",
	"Toolify.ai",
	"There's an AI for That",
	"AI Top Tools",
	"AI Tools Directory",
}

var (
	ErrEmailRequired     = fmt.Errorf("email is required")
	ErrAlreadySubscribed = fmt.Errorf("email already subscribed")
)

type SmtpConfig struct {
	Server       string `json:"server"`
	Port         int    `json:"port"`
	EmailAddress string `json:"email_address"`
	Password     string `json:"password"`
}

type Options struct {
	// when Server is set, new subscribers get a best-effort welcome email
	Smtp SmtpConfig `json:"smtp"`
}

type Service struct {
	db      *sql.DB
	qry     *db.Queries
	options Options
}

func NewService(database *sql.DB, options Options) Service {
	return Service{
		db:      database,
		qry:     db.New(database),
		options: options,
	}
}

// Stats counts the fates of records in one reconcile run.
type Stats struct {
	Processed int
	Skipped   int
	Forced    int
	Failed    int
}

// Reconcile merges a batch of raw records into the store, upserting by
// (name, source). Each record is committed on its own: a failure
// partway through leaves everything before it durably applied.
func (s Service) Reconcile(ctx context.Context, records []scrapers.Record) Stats {
	ctx, span := tracer.Start(ctx, "Reconcile")
	defer span.End()

	var stats Stats
	for _, record := range records {
		record.Name = strings.TrimSpace(record.Name)
		record.Source = strings.TrimSpace(record.Source)
		if record.Name == "" || record.Source == "" {
			stats.Skipped++
			slog.WarnContext(ctx, "skipping record with empty name or source",
				"name", record.Name, "source", record.Source)
			continue
		}
		normalize(&record)

		forced, err := s.upsert(ctx, record, stats.Processed)
		if forced {
			stats.Forced++
		}
		if err != nil {
			stats.Failed++
			span.RecordError(err)
			slog.ErrorContext(ctx, "failed to reconcile record",
				"name", record.Name, "source", record.Source, "err", err)
			continue
		}
		stats.Processed++
	}

	span.SetAttributes(
		attribute.Int("processed", stats.Processed),
		attribute.Int("skipped", stats.Skipped),
		attribute.Int("forced", stats.Forced),
		attribute.Int("failed", stats.Failed),
	)
	return stats
}

// presence checks happen in Reconcile, everything else is defaulted here
func normalize(record *scrapers.Record) {
	if record.Category == "" {
		record.Category = "Unknown"
	}
	if record.Type == "" {
		record.Type = "new"
	}
	if record.FullDescription == "" {
		record.FullDescription = record.ShortDescription
	}
}

func (s Service) upsert(ctx context.Context, record scrapers.Record, counter int) (forced bool, err error) {
	_, err = s.qry.GetToolByNameSource(ctx, db.GetToolByNameSourceParams{
		Name:   record.Name,
		Source: record.Source,
	})
	if err == nil {
		return false, s.qry.UpdateTool(ctx, db.UpdateToolParams{
			Category:         record.Category,
			SourceUrl:        record.SourceUrl,
			ShortDescription: record.ShortDescription,
			FullDescription:  record.FullDescription,
			ScreenshotUrl:    nullString(record.ScreenshotUrl),
			Type:             record.Type,
			Name:             record.Name,
			Source:           record.Source,
		})
	}
	if err != sql.ErrNoRows {
		return false, err
	}

	params := db.CreateToolParams{
		Name:             record.Name,
		ShortDescription: record.ShortDescription,
		FullDescription:  record.FullDescription,
		Category:         record.Category,
		Source:           record.Source,
		SourceUrl:        record.SourceUrl,
		ScreenshotUrl:    nullString(record.ScreenshotUrl),
		Type:             record.Type,
	}
	err = s.qry.CreateTool(ctx, params)
	if err == nil {
		return false, nil
	}
	if !isUniqueViolation(err) {
		return false, err
	}

	// another (name, source) pair already owns this URL: suffix it and
	// retry once, a corrupted uniqueness guarantee beats losing the record
	params.SourceUrl = fmt.Sprintf("%s_%d", record.SourceUrl, counter)
	slog.WarnContext(ctx, "duplicate source url, forcing insert",
		"name", record.Name, "source", record.Source, "url", params.SourceUrl)
	return true, s.qry.CreateTool(ctx, params)
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// ListTools answers the read side: rows filtered by source and type.
// typeFilter defaults to "new". "top" is best-effort global: a source
// with no top tools of its own falls back to top tools across all
// sources, every other type returns empty without a fallback.
func (s Service) ListTools(ctx context.Context, source, typeFilter string) ([]db.AiTool, error) {
	ctx, span := tracer.Start(ctx, "ListTools")
	defer span.End()

	if typeFilter == "" {
		typeFilter = "new"
	}
	span.SetAttributes(
		attribute.String("source", source),
		attribute.String("filter", typeFilter),
	)

	if source == "" {
		rows, err := s.qry.ListToolsByType(ctx, typeFilter)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		return rows, nil
	}

	rows, err := s.qry.ListToolsBySourceType(ctx, db.ListToolsBySourceTypeParams{
		Source: source,
		Type:   typeFilter,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if len(rows) == 0 && typeFilter == "top" {
		rows, err = s.qry.ListToolsByType(ctx, typeFilter)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
	}
	return rows, nil
}

// RecentTools reports the newest rows for operator inspection.
func (s Service) RecentTools(ctx context.Context, limit int64) ([]db.ListRecentToolsRow, error) {
	return s.qry.ListRecentTools(ctx, limit)
}

func (s Service) Subscribe(ctx context.Context, emailAddress string) error {
	ctx, span := tracer.Start(ctx, "Subscribe")
	defer span.End()

	emailAddress = strings.TrimSpace(emailAddress)
	if emailAddress == "" {
		return ErrEmailRequired
	}

	_, err := s.qry.GetSubscriberByEmail(ctx, emailAddress)
	if err == nil {
		return ErrAlreadySubscribed
	}
	if err != sql.ErrNoRows {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	err = s.qry.CreateSubscriber(ctx, db.CreateSubscriberParams{
		Email:        emailAddress,
		SubscribedAt: time.Now().Unix(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if s.options.Smtp.Server != "" {
		go s.sendWelcomeEmail(emailAddress)
	}
	return nil
}

func (s Service) sendWelcomeEmail(to string) {
	mail := email.NewEmail()
	mail.From = fmt.Sprintf("ToolCurator <%s>", s.options.Smtp.EmailAddress)
	mail.To = []string{to}
	mail.Subject = "Welcome to the ToolCurator newsletter"
	mail.Text = []byte(`Thanks for subscribing!

You'll get a short digest of newly listed AI tools as they come in.
If you don't recognize this subscription, just ignore this email.`)

	err := mail.Send(
		fmt.Sprintf("%s:%d", s.options.Smtp.Server, s.options.Smtp.Port),
		smtp.PlainAuth("", s.options.Smtp.EmailAddress, s.options.Smtp.Password, s.options.Smtp.Server),
	)
	if err != nil {
		slog.Warn("failed to send welcome email", "to", to, "err", err)
	}
}
