package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/use-agent/pagelens/models"
)

// envelope is the part of every pagelens response the bridge inspects.
type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

// apiClient talks to a running pagelens server.
type apiClient struct {
	rest *resty.Client
}

func newAPIClient(baseURL, apiKey string, timeout time.Duration) *apiClient {
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	if apiKey != "" {
		c.SetHeader("X-API-Key", apiKey)
	}
	return &apiClient{rest: c}
}

// post sends payload to path and returns the indented body of a successful envelope.
func (a *apiClient) post(ctx context.Context, path string, payload any) (string, error) {
	resp, err := a.rest.R().SetContext(ctx).SetBody(payload).Post(path)
	if err != nil {
		return "", fmt.Errorf("API request failed: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return "", fmt.Errorf("failed to parse response (HTTP %d): %w", resp.StatusCode(), err)
	}
	if !env.Success {
		return "", envelopeError(env)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, resp.Body(), "", "  "); err != nil {
		return "", fmt.Errorf("failed to format response: %w", err)
	}
	return out.String(), nil
}

// summarize posts to a streaming endpoint and concatenates the summary
// chunks. An error event or a stream without [DONE] fails the call.
func (a *apiClient) summarize(ctx context.Context, path string, payload any) (string, error) {
	resp, err := a.rest.R().
		SetContext(ctx).
		SetBody(payload).
		SetHeader("Accept", "text/event-stream").
		SetDoNotParseResponse(true).
		Post(path)
	if err != nil {
		return "", fmt.Errorf("API request failed: %w", err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() != http.StatusOK {
		var env envelope
		if err := json.NewDecoder(body).Decode(&env); err != nil {
			return "", fmt.Errorf("API answered HTTP %d", resp.StatusCode())
		}
		return "", envelopeError(env)
	}

	var summary strings.Builder
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		data, ok := strings.CutPrefix(scanner.Text(), "data: ")
		if !ok {
			continue
		}
		if data == "[DONE]" {
			return summary.String(), nil
		}

		var ev models.StreamEvent
		if err := json.Unmarshal([]byte(data), &ev); err != nil {
			return "", fmt.Errorf("malformed stream event: %w", err)
		}
		switch ev.Type {
		case models.EventSummary:
			summary.WriteString(ev.Content)
		case models.EventError:
			return "", errors.New(ev.Message)
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read stream: %w", err)
	}
	return "", errors.New("stream ended before completion")
}

func envelopeError(env envelope) error {
	msg := env.Error
	if msg == "" {
		msg = "request failed"
	}
	if env.Code != "" {
		return fmt.Errorf("[%s] %s", env.Code, msg)
	}
	return errors.New(msg)
}
