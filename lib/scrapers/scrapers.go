// Package scrapers holds the source adapters that pull tool listings
// out of third-party directory sites.
//
// each adapter is site-specific glue: it fetches one or more listing
// pages, extracts whatever fields the site exposes and returns them as
// a flat batch of Records. extraction of a single card failing must
// never abort the rest of the batch, the adapter logs and moves on.
// everything downstream of the Record boundary is site-agnostic.
package scrapers

import "context"

// Record is a raw tool listing as one site describes it. Only Name and
// Source are required, the reconciler normalizes the rest.
type Record struct {
	Name             string
	ShortDescription string
	FullDescription  string
	Category         string
	Source           string
	SourceUrl        string
	ScreenshotUrl    string
	Type             string
}

// Adapter is a single directory site behind a uniform interface.
type Adapter interface {
	Source() string
	FetchRawRecords(ctx context.Context) ([]Record, error)
}
