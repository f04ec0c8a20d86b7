package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Parse builds a DOM snapshot from serialized page HTML.
func Parse(rawHTML string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
}
