package cleaner

import (
	"context"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/use-agent/pagelens/models"
	"github.com/use-agent/pagelens/reqlog"
)

// Cleaner turns a rendered page into its readable body:
//
//	Stage 1 (filter):      drop script/style/embed noise
//	Stage 2 (readability): extract main content
//	Stage 3 (markdown):    convert clean HTML to Markdown
//
// The converter is created once and reused across all requests (goroutine-safe).
type Cleaner struct {
	mdConverter *converter.Converter
}

// NewCleaner initialises the Cleaner with a pre-configured Markdown converter.
func NewCleaner() *Cleaner {
	return &Cleaner{
		mdConverter: newMarkdownConverter(),
	}
}

// ReadableBody is the readable main content of a page and its word count.
type ReadableBody struct {
	Markdown  string
	WordCount int
}

// Body runs the pipeline on rawHTML. Readability failures fall back to the
// filtered document; only a Markdown conversion error is returned.
func (c *Cleaner) Body(ctx context.Context, rawHTML, sourceURL string) (ReadableBody, error) {
	filtered := RemoveElements(rawHTML, noiseSelectors)

	article, ok := ExtractContent(ctx, filtered, sourceURL)
	if !ok {
		reqlog.Stage(ctx, "normalize").Debug("readability fallback used", "url", sourceURL)
	}

	md, err := ToMarkdown(c.mdConverter, article.Content, sourceURL)
	if err != nil {
		return ReadableBody{}, models.NewScrapeError(models.ErrCodeInternal, "markdown conversion failed", err)
	}
	md = strings.TrimSpace(md)

	return ReadableBody{Markdown: md, WordCount: WordCount(md)}, nil
}
