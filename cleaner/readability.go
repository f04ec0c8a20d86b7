package cleaner

import (
	"context"
	nurl "net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
	"github.com/use-agent/pagelens/reqlog"
)

// minContentLength is the minimum TextContent length (in characters) for
// readability output to be considered valid. Below this threshold we assume
// the algorithm failed to locate the main content and fall back to raw HTML.
const minContentLength = 50

// ExtractContent runs the Mozilla Readability algorithm on rawHTML.
//
// Fallback behaviour (a scrape never fails just because readability choked):
//   - If URL parsing fails          → return raw HTML in Content
//   - If readability.FromReader errs → return raw HTML in Content
//   - If extracted TextContent < 50  → return raw HTML in Content
//
// The boolean result is false when the fallback was used.
func ExtractContent(ctx context.Context, rawHTML string, sourceURL string) (readability.Article, bool) {
	log := reqlog.Stage(ctx, "normalize")

	parsedURL, err := nurl.Parse(sourceURL)
	if err != nil {
		log.Warn("readability: invalid source URL, falling back to raw HTML",
			"url", sourceURL, "error", err,
		)
		return fallbackArticle(rawHTML), false
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), parsedURL)
	if err != nil {
		log.Warn("readability: extraction failed, falling back to raw HTML",
			"url", sourceURL, "error", err,
		)
		return fallbackArticle(rawHTML), false
	}

	if len(strings.TrimSpace(article.TextContent)) < minContentLength {
		log.Debug("readability: extracted content too short, falling back to raw HTML",
			"url", sourceURL, "length", len(article.TextContent),
		)
		return fallbackArticle(rawHTML), false
	}

	return article, true
}

func fallbackArticle(rawHTML string) readability.Article {
	return readability.Article{
		Content:     rawHTML,
		TextContent: rawHTML,
	}
}
