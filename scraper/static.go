package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/use-agent/pagelens/config"
	"github.com/use-agent/pagelens/models"
	"github.com/use-agent/pagelens/reqlog"
)

const acceptHTML = "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8"

// StaticFetcher retrieves pages over plain HTTP with browser-like headers.
// It backs the website profile when no JavaScript rendering is wanted.
type StaticFetcher struct {
	client *resty.Client
}

// NewStaticFetcher creates a fetcher that identifies itself with the
// browser's user agent and language.
func NewStaticFetcher(browser config.BrowserConfig, timeout time.Duration) *StaticFetcher {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", browser.UserAgent).
		SetHeader("Accept-Language", browser.AcceptLanguage).
		SetHeader("Accept", acceptHTML).
		SetHeader("Cache-Control", "no-cache")
	return &StaticFetcher{client: client}
}

// Fetch returns the body of url and the URL it was finally served from
// after redirects.
func (f *StaticFetcher) Fetch(ctx context.Context, url string) (string, string, error) {
	log := reqlog.Stage(ctx, "navigate")

	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		log.Warn("static fetch failed", "url", url, "error", err)
		return "", "", categorizeError(err, "fetching target URL failed")
	}
	if resp.IsError() {
		return "", "", models.NewScrapeError(
			models.ErrCodeNavigation,
			fmt.Sprintf("target URL answered HTTP %d", resp.StatusCode()),
			nil,
		)
	}

	finalURL := url
	if raw := resp.RawResponse; raw != nil && raw.Request != nil && raw.Request.URL != nil {
		finalURL = raw.Request.URL.String()
	}
	log.Debug("static fetch complete", "url", finalURL, "status", resp.StatusCode(), "bytes", len(resp.Body()))
	return resp.String(), finalURL, nil
}
