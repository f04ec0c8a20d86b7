package models

import (
	"net/url"
	"strings"
)

// Target kinds. Each kind selects one extraction profile and labels its
// logs and metrics.
const (
	KindWebsite    = "website"
	KindListing    = "listing"
	KindReviews    = "reviews"
	KindTranscript = "transcript"
)

// Fetch modes for the website profile.
const (
	FetchModeBrowser = "browser"
	FetchModeHTTP    = "http"
)

// MinTranscriptLength is the shortest pasted transcript accepted for summarization.
const MinTranscriptLength = 50

// ScrapeRequest is the payload for POST /scrape.
type ScrapeRequest struct {
	// URL is the target page to scrape. Required.
	URL string `json:"url"`

	// Keyword enables SEO analysis when non-empty.
	Keyword string `json:"keyword,omitempty"`

	// IncludeContent adds the readable body of the page as Markdown.
	IncludeContent bool `json:"includeContent,omitempty"`

	// FetchMode is "browser" (default) or "http".
	FetchMode string `json:"fetchMode,omitempty"`
}

// Defaults applies default values to unset fields.
func (r *ScrapeRequest) Defaults() {
	if r.FetchMode == "" {
		r.FetchMode = FetchModeBrowser
	}
}

// Validate checks the request at the boundary.
func (r *ScrapeRequest) Validate() error {
	if strings.TrimSpace(r.URL) == "" {
		return NewScrapeError(ErrCodeInvalidInput, "URL is required", nil)
	}
	if !isHTTPURL(r.URL) {
		return NewScrapeError(ErrCodeInvalidInput, "Please provide a valid URL", nil)
	}
	if r.FetchMode != FetchModeBrowser && r.FetchMode != FetchModeHTTP {
		return NewScrapeError(ErrCodeInvalidInput, "fetchMode must be \"browser\" or \"http\"", nil)
	}
	return nil
}

// URLRequest is the payload for the product, review and transcript endpoints.
type URLRequest struct {
	URL string `json:"url"`
}

// Validate checks that a usable URL was supplied.
func (r *URLRequest) Validate() error {
	if strings.TrimSpace(r.URL) == "" {
		return NewScrapeError(ErrCodeInvalidInput, "URL is required", nil)
	}
	if !isHTTPURL(r.URL) {
		return NewScrapeError(ErrCodeInvalidInput, "Please provide a valid URL", nil)
	}
	return nil
}

// ValidateVideo additionally requires the URL to belong to the YouTube domain family.
func (r *URLRequest) ValidateVideo() error {
	if strings.TrimSpace(r.URL) == "" {
		return NewScrapeError(ErrCodeInvalidInput, "URL is required", nil)
	}
	if !IsYouTubeURL(r.URL) {
		return NewScrapeError(ErrCodeInvalidInput, "Please provide a valid YouTube URL", nil)
	}
	return nil
}

// SummarizeTextRequest is the payload for POST /youtube/summarize-text.
type SummarizeTextRequest struct {
	Transcript string `json:"transcript"`
}

// Validate enforces a non-empty transcript of at least MinTranscriptLength characters.
func (r *SummarizeTextRequest) Validate() error {
	if r.Transcript == "" {
		return NewScrapeError(ErrCodeInvalidInput, "Transcript is required", nil)
	}
	if len([]rune(r.Transcript)) < MinTranscriptLength {
		return NewScrapeError(ErrCodeInvalidInput, "Transcript is too short", nil)
	}
	return nil
}

// IsYouTubeURL reports whether raw parses and its host is youtube.com or youtu.be
// (including subdomains such as www. and m.).
func IsYouTubeURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return strings.Contains(host, "youtube.com") || strings.Contains(host, "youtu.be")
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
