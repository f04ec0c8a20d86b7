package models

import "encoding/json"

// WebsiteMetadata is the normalized result of the generic-page profile.
type WebsiteMetadata struct {
	Title           string            `json:"title"`
	MetaTitle       string            `json:"metaTitle"`
	MetaDescription string            `json:"metaDescription"`
	SchemaData      []json.RawMessage `json:"schemaData"`
	FaviconURL      string            `json:"faviconUrl"`

	// Content is the readable body as Markdown; set only when requested.
	Content string `json:"content,omitempty"`

	// WordCount counts the words of Content.
	WordCount int `json:"wordCount,omitempty"`

	SEOAnalysis *SEOAnalysis `json:"seoAnalysis,omitempty"`
}

// SEOAnalysis is a read-only projection over WebsiteMetadata for one keyword.
type SEOAnalysis struct {
	Keyword string    `json:"keyword"`
	Checks  SEOChecks `json:"checks"`
	Score   SEOScore  `json:"score"`
}

// SEOChecks holds the seven named checks.
type SEOChecks struct {
	KeywordInTitle       SEOCheck       `json:"keywordInTitle"`
	KeywordInMetaTitle   SEOCheck       `json:"keywordInMetaTitle"`
	KeywordInDescription SEOCheck       `json:"keywordInDescription"`
	KeywordInSchema      SEOCheck       `json:"keywordInSchema"`
	KeywordInFirst5Words SEOCheck       `json:"keywordInFirst5Words"`
	TitleLength          SEOLengthCheck `json:"titleLength"`
	DescriptionLength    SEOLengthCheck `json:"descriptionLength"`
}

// SEOCheck is one pass/fail keyword check.
type SEOCheck struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

// SEOLengthCheck is a pass/fail check on a measured length.
type SEOLengthCheck struct {
	Status  bool   `json:"status"`
	Length  int    `json:"length"`
	Message string `json:"message"`
}

// SEOScore aggregates the checks. Percentage is round(100*Passed/Total).
type SEOScore struct {
	Passed     int `json:"passed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// ProductListing is the normalized result of the commerce-listing profile.
type ProductListing struct {
	Title         string   `json:"title"`
	Price         string   `json:"price"`
	OriginalPrice string   `json:"originalPrice"`
	Rating        string   `json:"rating"`
	ReviewCount   string   `json:"reviewCount"`
	Availability  string   `json:"availability"`
	Image         string   `json:"image"`
	Brand         string   `json:"brand"`
	ASIN          string   `json:"asin"`
	Category      string   `json:"category"`
	Features      []string `json:"features"`
	URL           string   `json:"url"`
	PriceNote     string   `json:"priceNote"`
}

// Review is one normalized customer review.
type Review struct {
	Rating   int    `json:"rating"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Date     string `json:"date"`
	Text     string `json:"text"`
	Verified bool   `json:"verified"`

	// Helpful is nil when the vote count is absent or zero.
	Helpful *int `json:"helpful"`
}

// ReviewSet is the normalized result of the commerce-reviews profile.
type ReviewSet struct {
	Reviews []Review
	Total   int
}

// TranscriptBundle is the normalized result of the video-transcript profile.
type TranscriptBundle struct {
	Title        string `json:"title"`
	Channel      string `json:"channel"`
	Duration     string `json:"duration"`
	Transcript   string `json:"transcript"`
	SegmentCount int    `json:"segmentCount"`
}

// WebsiteResponse is the response for POST /scrape.
type WebsiteResponse struct {
	Success bool             `json:"success"`
	Data    *WebsiteMetadata `json:"data,omitempty"`
	Error   string           `json:"error,omitempty"`
	Code    string           `json:"code,omitempty"`
}

// ProductResponse is the response for POST /amazon/check.
type ProductResponse struct {
	Success bool            `json:"success"`
	Data    *ProductListing `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Code    string          `json:"code,omitempty"`
}

// ReviewsResponse is the response for POST /amazon/reviews.
type ReviewsResponse struct {
	Success bool     `json:"success"`
	Reviews []Review `json:"reviews,omitempty"`
	Total   int      `json:"total,omitempty"`
	Error   string   `json:"error,omitempty"`
	Code    string   `json:"code,omitempty"`
}

// TranscriptResponse is the response for POST /youtube/transcript.
type TranscriptResponse struct {
	Success bool              `json:"success"`
	Data    *TranscriptBundle `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Code    string            `json:"code,omitempty"`
}

// ErrorResponse is the body written for boundary failures (4xx/5xx).
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

// HealthResponse is the response for GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}
