package toolify

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"toolcurator-backend/lib/scrapers"
	"toolcurator-backend/lib/telemetry"
	"toolcurator-backend/lib/textutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const Source = "Toolify.ai"

// Adapter scrapes the Toolify "new tools" listing. The page is plain
// server-rendered HTML behind cloudflare, so a bypassing resty client
// is enough, no browser needed.
type Adapter struct {
	BaseUrl string
	client  *resty.Client
}

func NewAdapter() *Adapter {
	client := resty.New()
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetTimeout(time.Second * 30)
	telemetry.InstrumentResty(client, "scrapers/toolify")

	return &Adapter{
		BaseUrl: "https://www.toolify.ai",
		client:  client,
	}
}

func (a *Adapter) Source() string {
	return Source
}

func (a *Adapter) FetchRawRecords(ctx context.Context) ([]scrapers.Record, error) {
	res, err := a.client.R().
		SetContext(ctx).
		Get(a.BaseUrl + "/new")
	if err != nil {
		return nil, err
	}
	if res.StatusCode() != 200 {
		return nil, fmt.Errorf("new tools page returned status %d", res.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, err
	}

	records := parseNewTools(ctx, doc)
	slog.InfoContext(ctx, "scraped new tools", "source", Source, "count", len(records))
	return records, nil
}

func parseNewTools(ctx context.Context, doc *goquery.Document) []scrapers.Record {
	var records []scrapers.Record
	doc.Find("div.tool-item").Each(func(_ int, card *goquery.Selection) {
		name := textutil.CleanText(card.Find(".go-tool-detail-name").First().Text())
		if name == "" {
			slog.WarnContext(ctx, "skipping tool card without a name", "source", Source)
			return
		}
		records = append(records, scrapers.Record{
			Name:             name,
			ShortDescription: textutil.CleanText(card.Find(".tool-desc").First().Text()),
			Source:           Source,
			SourceUrl:        externalToolLink(card),
			Type:             "new",
		})
	})
	return records
}

// Toolify cards carry several outbound links, the tool's own site is
// the first dofollow link that doesn't point back at toolify.ai.
func externalToolLink(card *goquery.Selection) string {
	var link string
	card.Find(`a[rel="dofollow"][target="_blank"]`).EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href := a.AttrOr("href", "")
		if href != "" && !strings.Contains(href, "toolify.ai") {
			link = href
			return false
		}
		return true
	})
	return link
}
