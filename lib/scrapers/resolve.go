package scrapers

import (
	"context"
	"time"
	"toolcurator-backend/lib/telemetry"

	"github.com/go-resty/resty/v2"
)

// Resolver follows tracking/affiliate redirects to a tool's canonical
// destination URL.
type Resolver struct {
	client *resty.Client
}

func NewResolver() *Resolver {
	client := resty.New()
	client.SetTimeout(time.Second * 10)
	telemetry.InstrumentResty(client, "scrapers/resolver")
	return &Resolver{client: client}
}

// FinalURL issues a GET and reports the URL the redirect chain landed
// on. Callers are expected to fall back to the original link on error
// rather than dropping the item.
func (r *Resolver) FinalURL(ctx context.Context, link string) (string, error) {
	res, err := r.client.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		return "", err
	}
	return res.RawResponse.Request.URL.String(), nil
}
