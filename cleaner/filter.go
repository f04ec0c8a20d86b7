package cleaner

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelectors never carry readable content.
var noiseSelectors = []string{"script", "style", "noscript", "template", "svg", "iframe"}

// RemoveElements deletes every element matching one of selectors from html
// and returns the re-rendered document. The input is returned unchanged
// when it cannot be parsed or no selector is given.
func RemoveElements(html string, selectors []string) string {
	if len(selectors) == 0 {
		return html
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}

	for _, selector := range selectors {
		doc.Find(selector).Remove()
	}

	result, err := doc.Html()
	if err != nil {
		return html
	}
	return result
}
