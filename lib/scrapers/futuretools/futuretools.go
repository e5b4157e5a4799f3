package futuretools

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"toolcurator-backend/lib/scrapers"
	"toolcurator-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

const Source = "FutureTools.io"

// the listing shows far more cards than we want to crawl tool pages for
const defaultLimit = 5

// Adapter scrapes the FutureTools "newly added" listing. The page is
// rendered client-side, so cards only exist after a headless browser
// has executed the page; the extracted DOM is then handed to goquery.
type Adapter struct {
	BaseUrl string
	// maximum number of tool pages to visit per run
	Limit       int
	PageTimeout time.Duration
	resolver    *scrapers.Resolver
}

func NewAdapter(resolver *scrapers.Resolver) *Adapter {
	return &Adapter{
		BaseUrl:     "https://www.futuretools.io",
		Limit:       defaultLimit,
		PageTimeout: time.Second * 30,
		resolver:    resolver,
	}
}

func (a *Adapter) Source() string {
	return Source
}

type listing struct {
	name             string
	shortDescription string
	category         string
	toolPageUrl      string
}

func (a *Adapter) FetchRawRecords(ctx context.Context) ([]scrapers.Record, error) {
	actx, cancelAlloc := chromedp.NewExecAllocator(ctx, append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
	)...)
	defer cancelAlloc()
	browser, cancelBrowser := chromedp.NewContext(actx)
	defer cancelBrowser()

	html, err := a.renderPage(browser, a.BaseUrl+"/newly-added", "div.tool-item-columns-new")
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	cards := parseNewlyAdded(ctx, doc, a.BaseUrl)
	if len(cards) > a.Limit {
		cards = cards[:a.Limit]
	}

	var records []scrapers.Record
	for _, card := range cards {
		record, err := a.fetchToolPage(browser, card)
		if err != nil {
			slog.ErrorContext(ctx, "skipping tool", "source", Source, "name", card.name, "err", err)
			continue
		}
		records = append(records, record)
	}

	slog.InfoContext(ctx, "scraped new tools", "source", Source, "count", len(records))
	return records, nil
}

// renders one page in a fresh tab so a hung navigation only burns its
// own timeout, not the whole browser
func (a *Adapter) renderPage(browser context.Context, url, waitFor string) (string, error) {
	ctx, cancel := context.WithTimeout(browser, a.PageTimeout)
	defer cancel()
	tab, cancelTab := chromedp.NewContext(ctx)
	defer cancelTab()

	var html string
	err := chromedp.Run(tab,
		chromedp.Navigate(url),
		chromedp.WaitVisible(waitFor, chromedp.ByQuery),
		chromedp.OuterHTML("html", &html),
	)
	return html, err
}

func (a *Adapter) fetchToolPage(ctx context.Context, card listing) (scrapers.Record, error) {
	html, err := a.renderPage(ctx, card.toolPageUrl, "a.link-block-2")
	if err != nil {
		return scrapers.Record{}, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return scrapers.Record{}, err
	}

	redirectUrl, fullDescription := parseToolPage(doc)

	sourceUrl := ""
	if redirectUrl != "" {
		sourceUrl, err = a.resolver.FinalURL(ctx, redirectUrl)
		if err != nil {
			slog.WarnContext(ctx, "failed to follow redirect, keeping tracking link",
				"name", card.name, "url", redirectUrl, "err", err)
			sourceUrl = redirectUrl
		}
	}
	if fullDescription == "" {
		fullDescription = card.shortDescription
	}

	return scrapers.Record{
		Name:             card.name,
		ShortDescription: card.shortDescription,
		FullDescription:  fullDescription,
		Category:         card.category,
		Source:           Source,
		SourceUrl:        sourceUrl,
		Type:             "new",
	}, nil
}

func parseNewlyAdded(ctx context.Context, doc *goquery.Document, baseUrl string) []listing {
	var cards []listing
	doc.Find("div.tool-item-columns-new").Each(func(_ int, card *goquery.Selection) {
		name := textutil.CleanText(card.Find(".tool-item-link---new").First().Text())
		href := card.Find("a.tool-item-link-block---new").First().AttrOr("href", "")
		if name == "" || href == "" {
			slog.WarnContext(ctx, "skipping incomplete tool card", "source", Source, "name", name)
			return
		}
		cards = append(cards, listing{
			name:             name,
			shortDescription: textutil.CleanText(card.Find(".tool-item-description-box---new").First().Text()),
			category:         textutil.CleanText(card.Find(".link-block-7").First().Text()),
			toolPageUrl:      absoluteRef(baseUrl, href),
		})
	})
	return cards
}

// the tool page holds the outbound tracking link and a longer
// description, both optional
func parseToolPage(doc *goquery.Document) (redirectUrl, fullDescription string) {
	redirectUrl = doc.Find("a.link-block-2").First().AttrOr("href", "")
	fullDescription = textutil.CleanText(doc.Find("div.rich-text-block.w-richtext").First().Text())
	return redirectUrl, fullDescription
}

func absoluteRef(baseUrl, href string) string {
	if strings.HasPrefix(href, "/") {
		return strings.TrimSuffix(baseUrl, "/") + href
	}
	return href
}
