package catalog

import (
	"context"
	"encoding/csv"
	"io"
	"strings"
	"toolcurator-backend/lib/scrapers"

	"go.opentelemetry.io/otel/codes"
)

// ImportCSV bulk-loads a tabular dump (a spreadsheet export) into the
// store with the same upsert and conflict semantics as Reconcile. The
// whole input is read into memory up front, these dumps are small.
// Columns are mapped by header name, the sheet's column order isn't
// stable.
func (s Service) ImportCSV(ctx context.Context, r io.Reader) (Stats, error) {
	ctx, span := tracer.Start(ctx, "ImportCSV")
	defer span.End()

	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Stats{}, err
	}
	if len(rows) < 2 {
		return Stats{}, nil
	}

	header := map[string]int{}
	for i, col := range rows[0] {
		header[strings.TrimSpace(col)] = i
	}
	field := func(row []string, name string) string {
		i, ok := header[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	records := make([]scrapers.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, scrapers.Record{
			Name:             field(row, "name"),
			ShortDescription: field(row, "short_description"),
			FullDescription:  field(row, "full_description"),
			Category:         field(row, "category"),
			Source:           field(row, "source"),
			SourceUrl:        field(row, "source_url"),
			ScreenshotUrl:    field(row, "screenshot_url"),
			Type:             field(row, "type"),
		})
	}

	return s.Reconcile(ctx, records), nil
}
