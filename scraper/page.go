package scraper

import "context"

// Page is one live browser tab. It is owned by exactly one request and is
// only valid inside the session that produced it. Every blocking call is
// bounded by ctx.
type Page interface {
	// Navigate loads url and returns once the DOM content has loaded.
	Navigate(ctx context.Context, url string) error

	// WaitElement blocks until an element matching selector exists.
	WaitElement(ctx context.Context, selector string) error

	// Element returns the first element matching selector without
	// waiting, or nil when there is none.
	Element(ctx context.Context, selector string) (Element, error)

	// Elements returns every element matching selector without waiting.
	Elements(ctx context.Context, selector string) ([]Element, error)

	// Scroll scrolls the viewport vertically by dy pixels.
	Scroll(ctx context.Context, dy float64) error

	// HTML serializes the rendered document.
	HTML(ctx context.Context) (string, error)

	// URL is the address of the currently loaded document.
	URL(ctx context.Context) string
}

// Element is a handle to one node of a live page.
type Element interface {
	Text(ctx context.Context) (string, error)
	Attribute(ctx context.Context, name string) (string, bool, error)
	Click(ctx context.Context) error
}
