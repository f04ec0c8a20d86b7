package scraper

import (
	"context"
	"strings"
	"time"

	"github.com/use-agent/pagelens/models"
	"github.com/use-agent/pagelens/reqlog"
)

// Locator looks for an actionable element on the live page. It returns
// nil when the element is not there.
type Locator func(ctx context.Context, page Page) (Element, error)

// BySelector matches the first element for an exact selector.
func BySelector(selector string) Locator {
	return func(ctx context.Context, page Page) (Element, error) {
		return page.Element(ctx, selector)
	}
}

// ByAttrContains scans every element matching selector and returns the
// first whose attribute contains needle, case-insensitively.
func ByAttrContains(selector, attr, needle string) Locator {
	needle = strings.ToLower(needle)
	return func(ctx context.Context, page Page) (Element, error) {
		els, err := page.Elements(ctx, selector)
		if err != nil {
			return nil, err
		}
		for _, el := range els {
			v, ok, err := el.Attribute(ctx, attr)
			if err != nil || !ok {
				continue
			}
			if strings.Contains(strings.ToLower(v), needle) {
				return el, nil
			}
		}
		return nil, nil
	}
}

// WithText narrows a locator to an element whose text contains needle.
func WithText(l Locator, needle string) Locator {
	return func(ctx context.Context, page Page) (Element, error) {
		el, err := l(ctx, page)
		if err != nil || el == nil {
			return nil, err
		}
		text, err := el.Text(ctx)
		if err != nil || !strings.Contains(text, needle) {
			return nil, err
		}
		return el, nil
	}
}

// Reveal clicks the first element any locator finds, in order, then waits
// settle. A locator that errors or finds an element that cannot be clicked
// hands over to the next one. It returns false when nothing was clicked.
func Reveal(ctx context.Context, page Page, settle time.Duration, locators ...Locator) (bool, error) {
	log := reqlog.Stage(ctx, "interact")

	for i, locate := range locators {
		el, err := locate(ctx, page)
		if err != nil {
			if ctx.Err() != nil {
				return false, categorizeError(ctx.Err(), "interaction interrupted")
			}
			log.Debug("locator failed", "strategy", i, "error", err)
			continue
		}
		if el == nil {
			continue
		}
		if err := el.Click(ctx); err != nil {
			log.Debug("click failed", "strategy", i, "error", err)
			continue
		}
		log.Debug("element revealed", "strategy", i)
		return true, Settle(ctx, settle)
	}
	if err := ctx.Err(); err != nil {
		return false, categorizeError(err, "interaction interrupted")
	}
	return false, nil
}

// MustReveal is Reveal for interactions the extraction depends on. Not
// finding anything is reported as an interaction failure with msg.
func MustReveal(ctx context.Context, page Page, settle time.Duration, msg string, locators ...Locator) error {
	ok, err := Reveal(ctx, page, settle, locators...)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewScrapeError(models.ErrCodeInteraction, msg, nil)
	}
	return nil
}
