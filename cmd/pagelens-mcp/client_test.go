package main

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBase = "http://pagelens.test"

func newTestClient(t *testing.T, apiKey string) *apiClient {
	t.Helper()
	c := newAPIClient(testBase+"/", apiKey, 5*time.Second)
	httpmock.ActivateNonDefault(c.rest.GetClient())
	t.Cleanup(httpmock.DeactivateAndReset)
	return c
}

func sseResponder(body string) httpmock.Responder {
	return func(*http.Request) (*http.Response, error) {
		resp := httpmock.NewStringResponse(http.StatusOK, body)
		resp.Header.Set("Content-Type", "text/event-stream")
		return resp, nil
	}
}

func TestPostReturnsIndentedEnvelope(t *testing.T) {
	c := newTestClient(t, "secret")
	httpmock.RegisterResponder(http.MethodPost, testBase+"/amazon/check",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "secret", req.Header.Get("X-API-Key"))
			return httpmock.NewStringResponse(http.StatusOK, `{"success":true,"data":{"title":"Kettle"}}`), nil
		})

	out, err := c.post(context.Background(), "/amazon/check", map[string]string{"url": "https://www.amazon.in/dp/B0TESTASIN"})
	require.NoError(t, err)
	assert.Contains(t, out, "\n  \"data\"")
	assert.Contains(t, out, `"title": "Kettle"`)
}

func TestPostOmitsKeyWhenUnset(t *testing.T) {
	c := newTestClient(t, "")
	httpmock.RegisterResponder(http.MethodPost, testBase+"/scrape",
		func(req *http.Request) (*http.Response, error) {
			assert.Empty(t, req.Header.Get("X-API-Key"))
			return httpmock.NewStringResponse(http.StatusOK, `{"success":true,"data":{}}`), nil
		})

	_, err := c.post(context.Background(), "/scrape", map[string]string{"url": "https://example.com"})
	require.NoError(t, err)
}

func TestPostFailureEnvelope(t *testing.T) {
	c := newTestClient(t, "")
	httpmock.RegisterResponder(http.MethodPost, testBase+"/amazon/reviews",
		httpmock.NewStringResponder(http.StatusOK, `{"success":false,"error":"No reviews found for this product","code":"EXTRACTION_EMPTY"}`))

	_, err := c.post(context.Background(), "/amazon/reviews", map[string]string{"url": "https://www.amazon.in/dp/B0TESTASIN"})
	require.Error(t, err)
	assert.Equal(t, "[EXTRACTION_EMPTY] No reviews found for this product", err.Error())
}

func TestPostNonJSONBody(t *testing.T) {
	c := newTestClient(t, "")
	httpmock.RegisterResponder(http.MethodPost, testBase+"/scrape",
		httpmock.NewStringResponder(http.StatusBadGateway, "<html>bad gateway</html>"))

	_, err := c.post(context.Background(), "/scrape", map[string]string{"url": "https://example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 502")
}

func TestSummarizeConcatenatesChunks(t *testing.T) {
	c := newTestClient(t, "")
	httpmock.RegisterResponder(http.MethodPost, testBase+"/youtube/summarize",
		sseResponder(
			`data: {"type":"info","data":{"title":"T","channel":"C","duration":"1:00","transcript":"x","wordCount":1}}`+"\n\n"+
				`data: {"type":"summary","content":"Hello"}`+"\n\n"+
				`data: {"type":"summary","content":" world"}`+"\n\n"+
				"data: [DONE]\n\n"))

	out, err := c.summarize(context.Background(), "/youtube/summarize", map[string]string{"url": "https://youtu.be/abc"})
	require.NoError(t, err)
	assert.Equal(t, "Hello world", out)
}

func TestSummarizeErrorEvent(t *testing.T) {
	c := newTestClient(t, "")
	httpmock.RegisterResponder(http.MethodPost, testBase+"/youtube/summarize",
		sseResponder(
			`data: {"type":"summary","content":"partial"}`+"\n\n"+
				`data: {"type":"error","message":"Rate limit exceeded. Please try again later."}`+"\n\n"))

	_, err := c.summarize(context.Background(), "/youtube/summarize", map[string]string{"url": "https://youtu.be/abc"})
	require.Error(t, err)
	assert.Equal(t, "Rate limit exceeded. Please try again later.", err.Error())
}

func TestSummarizeTruncatedStream(t *testing.T) {
	c := newTestClient(t, "")
	httpmock.RegisterResponder(http.MethodPost, testBase+"/youtube/summarize-text",
		sseResponder(`data: {"type":"summary","content":"partial"}`+"\n\n"))

	_, err := c.summarize(context.Background(), "/youtube/summarize-text", map[string]string{"transcript": "t"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before completion")
}

func TestSummarizeBoundaryFailure(t *testing.T) {
	c := newTestClient(t, "")
	httpmock.RegisterResponder(http.MethodPost, testBase+"/youtube/summarize-text",
		httpmock.NewStringResponder(http.StatusInternalServerError,
			`{"success":false,"error":"OpenAI API key not configured. Please set OPENAI_API_KEY environment variable.","code":"LLM_NOT_CONFIGURED"}`))

	_, err := c.summarize(context.Background(), "/youtube/summarize-text", map[string]string{"transcript": "t"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[LLM_NOT_CONFIGURED]")
}
