package scraper

import (
	"context"
	"errors"
	"time"

	"github.com/use-agent/pagelens/config"
	"github.com/use-agent/pagelens/models"
	"github.com/use-agent/pagelens/reqlog"
)

// Navigate loads url within timing.NavigationTimeout and then pauses for
// timing.SettleDelay so client-side rendering can finish. A timeout or
// network failure is terminal for the request.
func Navigate(ctx context.Context, page Page, url string, timing config.ProfileTiming) error {
	log := reqlog.Stage(ctx, "navigate")

	navCtx := ctx
	if timing.NavigationTimeout > 0 {
		var cancel context.CancelFunc
		navCtx, cancel = context.WithTimeout(ctx, timing.NavigationTimeout)
		defer cancel()
	}

	if err := page.Navigate(navCtx, url); err != nil {
		log.Warn("navigation failed", "url", url, "error", err)
		return categorizeError(err, "navigation to target URL failed")
	}
	log.Debug("navigation complete", "url", url)

	return Settle(ctx, timing.SettleDelay)
}

// Settle pauses for d unless ctx ends first.
func Settle(ctx context.Context, d time.Duration) error {
	if err := sleep(ctx, d); err != nil {
		return categorizeError(err, "page did not settle before the deadline")
	}
	return nil
}

// categorizeError wraps raw errors into typed ScrapeErrors so the API layer
// can map them to appropriate responses.
func categorizeError(err error, msg string) *models.ScrapeError {
	var se *models.ScrapeError
	if errors.As(err, &se) {
		return se
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewScrapeError(models.ErrCodeTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return models.NewScrapeError(models.ErrCodeTimeout, "request canceled", err)
	default:
		return models.NewScrapeError(models.ErrCodeNavigation, msg, err)
	}
}
