// Package scrapertest provides an in-memory browser for exercising the
// scraper without a remote endpoint. Pages are plain HTML documents keyed
// by URL; clicking an element carrying a data-reveal attribute swaps the
// current document for the named panel.
package scrapertest

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/use-agent/pagelens/scraper"
)

// ErrNotClickable is returned when clicking an element marked data-broken.
var ErrNotClickable = errors.New("element is not clickable")

// pollInterval is how often WaitElement re-checks the current document.
const pollInterval = 5 * time.Millisecond

// Site is the set of documents the fake browser can load.
type Site struct {
	// Pages maps a URL to the HTML served for it.
	Pages map[string]string

	// Panels maps a data-reveal key to the HTML shown after the click.
	Panels map[string]string

	// NavErr forces Navigate to fail for a URL.
	NavErr map[string]error
}

// Connector hands out fake connections over one Site and counts their
// lifecycle.
type Connector struct {
	Site Site

	// Err, when set, makes every Connect fail.
	Err error

	mu       sync.Mutex
	connects int
	closes   int
	pages    []*Page
}

// Connect opens a new fake page.
func (c *Connector) Connect(ctx context.Context) (scraper.Conn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.Err != nil {
		return nil, c.Err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connects++
	p := &Page{site: c.Site}
	c.pages = append(c.pages, p)
	return &conn{connector: c, page: p}, nil
}

// Connects returns how many connections were opened.
func (c *Connector) Connects() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connects
}

// Closes returns how many connections were closed.
func (c *Connector) Closes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closes
}

// Visited lists every URL navigated to, across all pages, in order.
func (c *Connector) Visited() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []string
	for _, p := range c.pages {
		out = append(out, p.Visited()...)
	}
	return out
}

type conn struct {
	connector *Connector
	page      *Page
}

func (c *conn) Page() scraper.Page { return c.page }

func (c *conn) Close() error {
	c.connector.mu.Lock()
	defer c.connector.mu.Unlock()
	c.connector.closes++
	return nil
}

// Page is a fake browser tab.
type Page struct {
	site Site

	mu      sync.Mutex
	url     string
	html    string
	visited []string
}

// Visited lists the URLs this page navigated to.
func (p *Page) Visited() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.visited...)
}

func (p *Page) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.site.NavErr[url]; err != nil {
		return err
	}
	html, ok := p.site.Pages[url]
	if !ok {
		return errors.New("net::ERR_NAME_NOT_RESOLVED")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.url, p.html = url, html
	p.visited = append(p.visited, url)
	return nil
}

func (p *Page) WaitElement(ctx context.Context, selector string) error {
	t := time.NewTicker(pollInterval)
	defer t.Stop()
	for {
		if doc, err := p.doc(); err == nil && doc.Find(selector).Length() > 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}

func (p *Page) Element(ctx context.Context, selector string) (scraper.Element, error) {
	doc, err := p.doc()
	if err != nil {
		return nil, err
	}
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil, nil
	}
	return &element{page: p, sel: sel}, nil
}

func (p *Page) Elements(ctx context.Context, selector string) ([]scraper.Element, error) {
	doc, err := p.doc()
	if err != nil {
		return nil, err
	}
	var out []scraper.Element
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, &element{page: p, sel: s})
	})
	return out, nil
}

func (p *Page) Scroll(ctx context.Context, dy float64) error {
	return ctx.Err()
}

func (p *Page) HTML(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.html, nil
}

func (p *Page) URL(ctx context.Context) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.url
}

func (p *Page) doc() (*goquery.Document, error) {
	p.mu.Lock()
	html := p.html
	p.mu.Unlock()
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

func (p *Page) reveal(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if html, ok := p.site.Panels[key]; ok {
		p.html = html
	}
}

type element struct {
	page *Page
	sel  *goquery.Selection
}

func (e *element) Text(ctx context.Context) (string, error) {
	return e.sel.Text(), nil
}

func (e *element) Attribute(ctx context.Context, name string) (string, bool, error) {
	v, ok := e.sel.Attr(name)
	return v, ok, nil
}

func (e *element) Click(ctx context.Context) error {
	if _, broken := e.sel.Attr("data-broken"); broken {
		return ErrNotClickable
	}
	if key, ok := e.sel.Attr("data-reveal"); ok {
		e.page.reveal(key)
	}
	return nil
}
