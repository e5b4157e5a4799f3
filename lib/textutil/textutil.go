package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// collapses runs of whitespace into single spaces and trims the ends,
// goquery text extraction tends to keep the page's indentation
func CleanText(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// ScreenshotFilename derives the on-disk artifact name for a tool:
// lowercased, spaces replaced with underscores, png extension.
// distinct tools may normalize to the same filename, in which case
// the last writer wins.
func ScreenshotFilename(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "_")) + ".png"
}
