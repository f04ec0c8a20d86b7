package scraper

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/use-agent/pagelens/config"
	"github.com/use-agent/pagelens/models"
)

const staticPage = `<html><head>
<title>Acme Kettles</title>
<meta name="description" content="Kettles that boil fast.">
</head><body><p>Welcome.</p></body></html>`

func newMockedFetcher(t *testing.T) (*StaticFetcher, *httpmock.MockTransport) {
	t.Helper()
	f := NewStaticFetcher(config.BrowserConfig{
		UserAgent:      "pagelens-test",
		AcceptLanguage: "en-GB",
	}, 5*time.Second)
	mock := httpmock.NewMockTransport()
	f.client.SetTransport(mock)
	return f, mock
}

func TestStaticFetch(t *testing.T) {
	f, mock := newMockedFetcher(t)
	mock.RegisterResponder(http.MethodGet, "https://acme.example/",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "pagelens-test", req.Header.Get("User-Agent"))
			assert.Equal(t, "en-GB", req.Header.Get("Accept-Language"))
			return httpmock.NewStringResponse(http.StatusOK, staticPage), nil
		})

	html, finalURL, err := f.Fetch(context.Background(), "https://acme.example/")

	require.NoError(t, err)
	assert.Equal(t, staticPage, html)
	assert.Equal(t, "https://acme.example/", finalURL)
}

func TestStaticFetchHTTPError(t *testing.T) {
	f, mock := newMockedFetcher(t)
	mock.RegisterResponder(http.MethodGet, "https://acme.example/missing",
		httpmock.NewStringResponder(http.StatusNotFound, "not found"))

	_, _, err := f.Fetch(context.Background(), "https://acme.example/missing")

	require.Error(t, err)
	se := models.AsScrapeError(err)
	assert.Equal(t, models.ErrCodeNavigation, se.Code)
	assert.Equal(t, "target URL answered HTTP 404", se.Message)
}

func TestScrapeWebsiteOverHTTP(t *testing.T) {
	f, mock := newMockedFetcher(t)
	mock.RegisterResponder(http.MethodGet, "https://acme.example/",
		httpmock.NewStringResponder(http.StatusOK, staticPage))

	// No connector: the browser must not be touched in http mode.
	s := New(NewManager(nil, nil), f, config.ScraperConfig{}, nil)
	req := &models.ScrapeRequest{URL: "https://acme.example/", Keyword: "kettles", FetchMode: models.FetchModeHTTP}

	meta, err := s.ScrapeWebsite(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "Acme Kettles", meta.Title)
	assert.Equal(t, "Acme Kettles", meta.MetaTitle)
	assert.Equal(t, "Kettles that boil fast.", meta.MetaDescription)
	assert.Equal(t, "https://acme.example/favicon.ico", meta.FaviconURL)
	require.NotNil(t, meta.SEOAnalysis)
	assert.Equal(t, 7, meta.SEOAnalysis.Score.Total)
}
