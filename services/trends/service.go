// Package trends pulls the day's trending searches so the frontend can
// show what people are asking about next to the tool listings. Results
// are fetched on demand and never persisted.
package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"toolcurator-backend/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/trends")

const maxTrends = 5

type Config struct {
	ApiKey  string `json:"api_key"`
	BaseUrl string `json:"base_url"`
	Geo     string `json:"geo"`
}

type Service struct {
	client *resty.Client
	config Config
}

func NewService(config Config) Service {
	if config.BaseUrl == "" {
		config.BaseUrl = "https://serpapi.com"
	}
	if config.Geo == "" {
		config.Geo = "US"
	}

	client := resty.New()
	client.SetTimeout(time.Second * 15)
	telemetry.InstrumentResty(client, "services/trends")

	return Service{client: client, config: config}
}

type searchResponse struct {
	TrendingSearches []struct {
		Query string `json:"query"`
	} `json:"trending_searches"`
}

// Daily returns up to 5 trending search titles for the configured geo.
func (s Service) Daily(ctx context.Context) ([]string, error) {
	ctx, span := tracer.Start(ctx, "Daily")
	defer span.End()

	res, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"engine":  "google_trends_trending_now",
			"geo":     s.config.Geo,
			"api_key": s.config.ApiKey,
		}).
		Get(s.config.BaseUrl + "/search.json")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if res.StatusCode() != 200 {
		err = fmt.Errorf("trends api returned status %d", res.StatusCode())
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var body searchResponse
	if err := json.Unmarshal(res.Body(), &body); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("parse trends response: %w", err)
	}

	titles := []string{}
	for _, search := range body.TrendingSearches {
		if search.Query == "" {
			continue
		}
		titles = append(titles, search.Query)
		if len(titles) == maxTrends {
			break
		}
	}

	span.SetAttributes(attribute.Int("trends", len(titles)))
	return titles, nil
}
