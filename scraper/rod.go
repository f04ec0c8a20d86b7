package scraper

import (
	"context"
	"errors"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"

	"github.com/use-agent/pagelens/config"
	"github.com/use-agent/pagelens/models"
	"github.com/use-agent/pagelens/reqlog"
)

// RodConnector opens a fresh CDP connection to the configured remote
// browser for every session. The endpoint allots one browser per
// connection, so closing the connection closes that browser too.
type RodConnector struct {
	cfg config.BrowserConfig
}

// NewRodConnector creates a connector for the endpoint in cfg.
func NewRodConnector(cfg config.BrowserConfig) *RodConnector {
	return &RodConnector{cfg: cfg}
}

// Connect dials the endpoint, opens a page, and applies the header,
// user-agent and resource-blocking setup before any navigation.
//
// Lifecycle:
//
//  1. Connect        – websocket to the remote browser, bounded by ConnectTimeout
//  2. Create page    – one new target owned by this request
//  3. Identity       – user agent + Accept-Language (before navigation!)
//  4. Hijack mount   – block configured resource types (before navigation!)
func (c *RodConnector) Connect(ctx context.Context) (Conn, error) {
	if !c.cfg.Configured() {
		return nil, models.NewScrapeError(models.ErrCodeConnection, "remote browser is not configured", nil)
	}

	// ── 1. Connect ────────────────────────────────────────────────────
	browser := rod.New().ControlURL(c.cfg.URL).Context(ctx)
	if err := connectWithin(ctx, browser, c.cfg); err != nil {
		return nil, err
	}

	// ── 2. Create page ────────────────────────────────────────────────
	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = browser.Close()
		return nil, models.NewScrapeError(
			models.ErrCodeConnection,
			"failed to create page on remote browser",
			err,
		)
	}

	// ── 3. Identity ───────────────────────────────────────────────────
	applyIdentity(ctx, page, c.cfg)

	// ── 4. Hijack mount ───────────────────────────────────────────────
	router := setupHijack(page, c.cfg.BlockedResourceTypes)

	return &rodConn{browser: browser, page: page, router: router}, nil
}

// connectWithin runs browser.Connect but gives up after ConnectTimeout.
// A connection that completes after the deadline is closed in the background.
func connectWithin(ctx context.Context, browser *rod.Browser, cfg config.BrowserConfig) error {
	connectCtx := ctx
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		connectCtx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	done := make(chan error, 1)
	go func() { done <- browser.Connect() }()

	select {
	case err := <-done:
		if err != nil {
			return models.NewScrapeError(models.ErrCodeConnection, "failed to connect to remote browser", err)
		}
		return nil
	case <-connectCtx.Done():
		go func() {
			if err := <-done; err == nil {
				_ = browser.Close()
			}
		}()
		return models.NewScrapeError(models.ErrCodeConnection, "timed out connecting to remote browser", connectCtx.Err())
	}
}

// applyIdentity sets the user agent and Accept-Language on the page.
// Failures are logged and do not abort the session.
func applyIdentity(ctx context.Context, page proto.Client, cfg config.BrowserConfig) {
	log := reqlog.Stage(ctx, "connect")
	if err := (proto.NetworkSetUserAgentOverride{
		UserAgent:      cfg.UserAgent,
		AcceptLanguage: cfg.AcceptLanguage,
	}).Call(page); err != nil {
		log.Warn("user agent override failed", "error", err)
	}
	if cfg.AcceptLanguage != "" {
		if err := (proto.NetworkSetExtraHTTPHeaders{
			Headers: toHeadersMap(map[string]string{"Accept-Language": cfg.AcceptLanguage}),
		}).Call(page); err != nil {
			log.Warn("extra headers override failed", "error", err)
		}
	}
}

type rodConn struct {
	browser *rod.Browser
	page    *rod.Page
	router  *rod.HijackRouter
}

func (c *rodConn) Page() Page {
	return &rodPage{page: c.page}
}

// closeTimeout bounds teardown, which must run even after the request
// context is gone.
const closeTimeout = 5 * time.Second

// Close stops the hijack router, closes the page and disconnects.
func (c *rodConn) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	var errs []error
	if c.router != nil {
		errs = append(errs, c.router.Stop())
	}
	errs = append(errs, c.page.Context(ctx).Close(), c.browser.Context(ctx).Close())
	return errors.Join(errs...)
}

type rodPage struct {
	page *rod.Page
}

func (p *rodPage) Navigate(ctx context.Context, url string) error {
	page := p.page.Context(ctx)
	wait := page.WaitNavigation(proto.PageLifecycleEventNameDOMContentLoaded)
	if err := page.Navigate(url); err != nil {
		return err
	}
	wait()
	return ctx.Err()
}

func (p *rodPage) WaitElement(ctx context.Context, selector string) error {
	_, err := p.page.Context(ctx).Element(selector)
	return err
}

func (p *rodPage) Element(ctx context.Context, selector string) (Element, error) {
	has, el, err := p.page.Context(ctx).Has(selector)
	if err != nil || !has {
		return nil, err
	}
	return &rodElement{el: el}, nil
}

func (p *rodPage) Elements(ctx context.Context, selector string) ([]Element, error) {
	els, err := p.page.Context(ctx).Elements(selector)
	if err != nil {
		return nil, err
	}
	out := make([]Element, 0, len(els))
	for _, el := range els {
		out = append(out, &rodElement{el: el})
	}
	return out, nil
}

func (p *rodPage) Scroll(ctx context.Context, dy float64) error {
	_, err := p.page.Context(ctx).Eval(`(dy) => window.scrollBy(0, dy)`, dy)
	return err
}

func (p *rodPage) HTML(ctx context.Context) (string, error) {
	return p.page.Context(ctx).HTML()
}

func (p *rodPage) URL(ctx context.Context) string {
	page := p.page.Context(ctx)
	if info, err := page.Info(); err == nil && info.URL != "" {
		return info.URL
	}
	return evalStringOrEmpty(page, `() => window.location.href`)
}

type rodElement struct {
	el *rod.Element
}

func (e *rodElement) Text(ctx context.Context) (string, error) {
	return e.el.Context(ctx).Text()
}

func (e *rodElement) Attribute(ctx context.Context, name string) (string, bool, error) {
	v, err := e.el.Context(ctx).Attribute(name)
	if err != nil || v == nil {
		return "", false, err
	}
	return *v, true, nil
}

func (e *rodElement) Click(ctx context.Context) error {
	return e.el.Context(ctx).Click(proto.InputMouseButtonLeft, 1)
}

// evalStringOrEmpty evaluates a JS expression and returns the string result,
// swallowing any errors (useful for optional metadata extraction).
func evalStringOrEmpty(page *rod.Page, js string) string {
	res, err := page.Eval(js)
	if err != nil {
		return ""
	}
	return res.Value.Str()
}

// toHeadersMap converts a plain string map to the proto.NetworkHeaders type
// (map[string]gson.JSON) required by NetworkSetExtraHTTPHeaders.
func toHeadersMap(headers map[string]string) proto.NetworkHeaders {
	m := make(proto.NetworkHeaders, len(headers))
	for k, v := range headers {
		m[k] = gson.New(v)
	}
	return m
}
