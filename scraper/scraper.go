package scraper

import (
	"context"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/use-agent/pagelens/cleaner"
	"github.com/use-agent/pagelens/config"
	"github.com/use-agent/pagelens/extract"
	"github.com/use-agent/pagelens/metrics"
	"github.com/use-agent/pagelens/models"
	"github.com/use-agent/pagelens/normalize"
	"github.com/use-agent/pagelens/reqlog"
)

// User-visible failure messages.
const (
	msgNoReviews          = "No reviews found. The product may not have reviews yet."
	msgNoTranscriptBtn    = "Could not find the 'Show transcript' button. Please ensure the video has captions/subtitles enabled."
	msgEmptyTranscript    = "Could not extract transcript text. The transcript may not have loaded properly."
	transcriptFaultPrefix = "Failed to fetch transcript: "
)

// Selectors that drive the live page rather than extraction.
const (
	selProductTitle     = "#productTitle"
	selReview           = `[data-hook="review"]`
	selReviewClass      = ".review"
	selReviewList       = "#cm_cr-review_list"
	selExpandButton     = "tp-yt-paper-button#expand"
	selTranscriptButton = `button[aria-label="Show transcript"]`
)

// transcriptScroll brings the description area into the viewport.
const transcriptScroll = 400

// Scraper runs one extraction profile per call. Every browser-backed call
// owns its own session from connect to release; nothing is shared between
// calls, so a Scraper is safe for concurrent use.
type Scraper struct {
	sessions *Manager
	static   *StaticFetcher
	cleaner  *cleaner.Cleaner
	cfg      config.ScraperConfig
	metrics  *metrics.Metrics
}

// New creates a Scraper. static may be nil, in which case fetchMode "http"
// falls back to the browser. m may be nil.
func New(sessions *Manager, static *StaticFetcher, cfg config.ScraperConfig, m *metrics.Metrics) *Scraper {
	return &Scraper{
		sessions: sessions,
		static:   static,
		cleaner:  cleaner.NewCleaner(),
		cfg:      cfg,
		metrics:  m,
	}
}

// observe records the outcome of one profile run.
func (s *Scraper) observe(ctx context.Context, kind string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = models.CodeOf(err)
		reqlog.From(ctx).Warn("scrape failed", "code", outcome, "error", err, "elapsed", time.Since(start))
	} else {
		reqlog.From(ctx).Info("scrape complete", "elapsed", time.Since(start))
	}
	s.metrics.ObserveScrape(kind, outcome, time.Since(start))
}

// snapshot parses the rendered document of page.
func snapshot(ctx context.Context, page Page) (*goquery.Document, error) {
	html, err := page.HTML(ctx)
	if err != nil {
		return nil, categorizeError(err, "failed to read rendered page")
	}
	return parse(html)
}

func parse(html string) (*goquery.Document, error) {
	doc, err := extract.Parse(html)
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeInternal, "failed to parse page", err)
	}
	return doc, nil
}

// ---------------------------------------------------------------------------
// Website
// ---------------------------------------------------------------------------

// ScrapeWebsite extracts the generic page metadata of req.URL, with the
// readable body and SEO analysis when requested.
func (s *Scraper) ScrapeWebsite(ctx context.Context, req *models.ScrapeRequest) (meta *models.WebsiteMetadata, err error) {
	ctx = reqlog.With(ctx, "target", models.KindWebsite)
	start := time.Now()
	defer func() { s.observe(ctx, models.KindWebsite, start, err) }()

	html, pageURL, err := s.websiteHTML(ctx, req)
	if err != nil {
		return nil, err
	}

	doc, err := parse(html)
	if err != nil {
		return nil, err
	}
	reqlog.Stage(ctx, "extract").Debug("running website profile")
	raw := extract.Website.Extract(doc.Selection)

	reqlog.Stage(ctx, "normalize").Debug("building website metadata")
	meta = normalize.Website(raw, pageURL)

	if req.IncludeContent {
		body, err := s.cleaner.Body(ctx, html, pageURL)
		if err != nil {
			return nil, err
		}
		meta.Content = body.Markdown
		meta.WordCount = body.WordCount
	}

	meta.SEOAnalysis = normalize.AnalyzeSEO(meta, req.Keyword)
	return meta, nil
}

// websiteHTML returns the page source and the URL it was served from,
// fetched over plain HTTP or rendered in the browser depending on req.
func (s *Scraper) websiteHTML(ctx context.Context, req *models.ScrapeRequest) (string, string, error) {
	if req.FetchMode == models.FetchModeHTTP && s.static != nil {
		return s.static.Fetch(ctx, req.URL)
	}

	type rendered struct{ html, url string }
	out, err := Do(ctx, s.sessions, func(ctx context.Context, page Page) (rendered, error) {
		if err := Navigate(ctx, page, req.URL, s.cfg.Website); err != nil {
			return rendered{}, err
		}
		html, err := page.HTML(ctx)
		if err != nil {
			return rendered{}, categorizeError(err, "failed to read rendered page")
		}
		pageURL := page.URL(ctx)
		if pageURL == "" {
			pageURL = req.URL
		}
		return rendered{html: html, url: pageURL}, nil
	})
	return out.html, out.url, err
}

// ---------------------------------------------------------------------------
// Listing
// ---------------------------------------------------------------------------

// CheckProduct extracts the listing attributes of a product page.
func (s *Scraper) CheckProduct(ctx context.Context, productURL string) (listing *models.ProductListing, err error) {
	ctx = reqlog.With(ctx, "target", models.KindListing)
	start := time.Now()
	defer func() { s.observe(ctx, models.KindListing, start, err) }()

	raw, err := Do(ctx, s.sessions, func(ctx context.Context, page Page) (extract.RawFields, error) {
		if err := Navigate(ctx, page, productURL, s.cfg.Listing); err != nil {
			return extract.RawFields{}, err
		}
		doc, err := snapshot(ctx, page)
		if err != nil {
			return extract.RawFields{}, err
		}
		reqlog.Stage(ctx, "extract").Debug("running listing profile")
		return extract.Listing(productURL).Extract(doc.Selection), nil
	})
	if err != nil {
		return nil, err
	}

	reqlog.Stage(ctx, "normalize").Debug("building product listing")
	return normalize.Listing(raw, productURL), nil
}

// ---------------------------------------------------------------------------
// Reviews
// ---------------------------------------------------------------------------

// ScrapeReviews collects the top reviews of a product. Reviews shown on the
// product page itself are used when present; otherwise the dedicated
// reviews page is loaded and the cascade runs again there.
func (s *Scraper) ScrapeReviews(ctx context.Context, productURL string) (set *models.ReviewSet, err error) {
	ctx = reqlog.With(ctx, "target", models.KindReviews)
	start := time.Now()
	defer func() { s.observe(ctx, models.KindReviews, start, err) }()

	reviews, err := Do(ctx, s.sessions, func(ctx context.Context, page Page) ([]models.Review, error) {
		return s.reviews(ctx, page, productURL)
	})
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, models.NewScrapeError(models.ErrCodeEmpty, msgNoReviews, nil)
	}
	return &models.ReviewSet{Reviews: reviews, Total: len(reviews)}, nil
}

func (s *Scraper) reviews(ctx context.Context, page Page, productURL string) ([]models.Review, error) {
	// Phase 1: the product page.
	nav := config.ProfileTiming{NavigationTimeout: s.cfg.Reviews.NavigationTimeout}
	if err := Navigate(ctx, page, productURL, nav); err != nil {
		return nil, err
	}
	s.awaitReady(ctx, page, s.cfg.ReadinessWait,
		DelaySignal(s.cfg.ReadinessFallback),
		selProductTitle, selReview,
	)

	doc, err := snapshot(ctx, page)
	if err != nil {
		return nil, err
	}
	reviews := normalize.Reviews(extract.Reviews(doc.Selection, extract.ProductPageReviews, s.cfg.ReviewLimit))
	reqlog.Stage(ctx, "extract").Debug("product page reviews", "count", len(reviews))
	if len(reviews) > 0 {
		return reviews, nil
	}

	// Phase 2: the dedicated reviews page.
	target := dedicatedReviewsURL(doc.Selection, page.URL(ctx), productURL)
	if target != "" {
		reqlog.Stage(ctx, "navigate").Debug("loading dedicated reviews page", "url", target)
		if err := Navigate(ctx, page, target, s.cfg.Reviews); err != nil {
			return nil, err
		}
		s.awaitReady(ctx, page, s.cfg.ReviewsElementWait, nil, selReview, selReviewClass, selReviewList)

		if doc, err = snapshot(ctx, page); err != nil {
			return nil, err
		}
	}

	reviews = normalize.Reviews(extract.Reviews(doc.Selection, extract.ReviewsPageReviews, s.cfg.ReviewLimit))
	reqlog.Stage(ctx, "extract").Debug("reviews page reviews", "count", len(reviews))
	return reviews, nil
}

// awaitReady races the given markers and an optional fallback signal. Not
// seeing any marker is not an error; extraction is attempted regardless.
func (s *Scraper) awaitReady(ctx context.Context, page Page, wait time.Duration, fallback Signal, selectors ...string) {
	signals := make([]Signal, 0, len(selectors)+1)
	for _, sel := range selectors {
		signals = append(signals, ElementSignal(page, sel, wait))
	}
	if fallback != nil {
		signals = append(signals, fallback)
	}

	log := reqlog.Stage(ctx, "ready")
	idx, err := FirstOf(ctx, signals...)
	switch {
	case err != nil:
		log.Debug("no readiness marker appeared, extracting anyway", "error", err)
	case idx < len(selectors):
		log.Debug("readiness marker appeared", "selector", selectors[idx])
	default:
		log.Debug("readiness fallback elapsed")
	}
}

// dedicatedReviewsURL finds the "see all reviews" link on the product page,
// or builds the reviews URL from the product's ASIN. It returns "" when
// neither is available.
func dedicatedReviewsURL(scope *goquery.Selection, pageURL, productURL string) string {
	base, err := url.Parse(pageURL)
	if err != nil || base.Host == "" {
		base, err = url.Parse(productURL)
		if err != nil {
			return ""
		}
	}

	if href, ok := extract.DedicatedPage.Eval(scope); ok {
		if u, err := base.Parse(href); err == nil {
			return u.String()
		}
	}

	asin := extract.ASINFromURL(productURL)
	if asin == "" {
		return ""
	}
	origin, err := url.Parse(productURL)
	if err != nil {
		return ""
	}
	return origin.Scheme + "://" + origin.Host + "/product-reviews/" + asin + "/"
}

// ---------------------------------------------------------------------------
// Transcript
// ---------------------------------------------------------------------------

// FetchTranscript opens the transcript panel of a video and reads every
// segment in order.
func (s *Scraper) FetchTranscript(ctx context.Context, videoURL string) (bundle *models.TranscriptBundle, err error) {
	ctx = reqlog.With(ctx, "target", models.KindTranscript)
	start := time.Now()
	defer func() { s.observe(ctx, models.KindTranscript, start, err) }()

	bundle, err = Do(ctx, s.sessions, func(ctx context.Context, page Page) (*models.TranscriptBundle, error) {
		return s.transcript(ctx, page, videoURL)
	})
	if err != nil {
		se := models.AsScrapeError(err)
		if se.Code != models.ErrCodeInteraction && se.Code != models.ErrCodeEmpty {
			se = models.NewScrapeError(se.Code, transcriptFaultPrefix+se.Message, se.Err)
		}
		return nil, se
	}
	return bundle, nil
}

func (s *Scraper) transcript(ctx context.Context, page Page, videoURL string) (*models.TranscriptBundle, error) {
	if err := Navigate(ctx, page, videoURL, s.cfg.Transcript); err != nil {
		return nil, err
	}

	log := reqlog.Stage(ctx, "interact")
	if err := page.Scroll(ctx, transcriptScroll); err != nil {
		log.Debug("scroll failed", "error", err)
	}
	if err := Settle(ctx, s.cfg.ScrollSettle); err != nil {
		return nil, err
	}

	if _, err := Reveal(ctx, page, s.cfg.ExpandSettle,
		WithText(BySelector(selExpandButton), "more"),
	); err != nil {
		return nil, err
	}

	if err := MustReveal(ctx, page, s.cfg.RevealSettle, msgNoTranscriptBtn,
		BySelector(selTranscriptButton),
		ByAttrContains("button", "aria-label", "show transcript"),
	); err != nil {
		return nil, err
	}

	doc, err := snapshot(ctx, page)
	if err != nil {
		return nil, err
	}
	reqlog.Stage(ctx, "extract").Debug("running transcript profile")
	bundle := normalize.Transcript(extract.Transcript.Extract(doc.Selection))
	if bundle.Transcript == "" {
		return nil, models.NewScrapeError(models.ErrCodeEmpty, msgEmptyTranscript, nil)
	}
	return bundle, nil
}
