package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/use-agent/pagelens/config"
	"github.com/use-agent/pagelens/models"
	"github.com/use-agent/pagelens/reqlog"
)

// Prompts sent with every summarization request.
const (
	SystemPrompt = "You are an expert at summarizing transcripts. Create concise, well-structured summaries " +
		"that capture the key points and main ideas. Format your response with clear sections: " +
		"Overview, Key Points (as bullet points), and Conclusion."
	userPromptPrefix = "Please summarize the following transcript:\n\n"
)

// User-visible provider failures.
const (
	MsgNotConfigured = "OpenAI API key not configured. Please set OPENAI_API_KEY environment variable."
	msgAuth          = "Invalid OpenAI API key. Please check your configuration."
	msgRateLimited   = "OpenAI API rate limit exceeded. Please try again later."
	msgServer        = "OpenAI service error. Please try again later."
	msgFailurePrefix = "Failed to generate summary: "
)

// maxLine bounds a single SSE line from the provider.
const maxLine = 1 << 20

// Client is a lightweight OpenAI-compatible API client for streamed
// summaries. It uses net/http directly; no third-party SDK needed.
type Client struct {
	httpClient *http.Client
	cfg        config.LLMConfig
}

// NewClient creates a new LLM client. Pass a nil httpClient to get one
// bounded by cfg.Timeout.
func NewClient(cfg config.LLMConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{httpClient: httpClient, cfg: cfg}
}

// Configured reports whether the client has credentials.
func (c *Client) Configured() bool {
	return c.cfg.Configured()
}

// chatRequest is the OpenAI chat completion request body.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Stream      bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatChunk is one streamed completion delta.
type chatChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

// chatErrorResponse captures an API error from the LLM provider.
type chatErrorResponse struct {
	Error apiError `json:"error"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Summarize starts a streamed summary of transcript. Provider errors that
// arrive before the first byte of the stream are returned here; later ones
// surface from Stream.Next.
func (c *Client) Summarize(ctx context.Context, transcript string) (*Stream, error) {
	if !c.Configured() {
		return nil, models.NewScrapeError(models.ErrCodeLLMNotConfigured, MsgNotConfigured, nil)
	}

	reqBody := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: SystemPrompt},
			{Role: "user", Content: userPromptPrefix + transcript},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
		Stream:      true,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	// Build URL: baseURL + /chat/completions
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	reqlog.Stage(ctx, "relay").Debug("requesting summary", "model", c.cfg.Model, "chars", len(transcript))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, failure(err.Error(), err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxLine))
		return nil, classifyLLMError(resp.StatusCode, body)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)
	return &Stream{body: resp.Body, scanner: scanner}, nil
}

// Stream is an in-flight streamed completion. Next yields content deltas
// in arrival order and io.EOF after the provider's [DONE] marker.
type Stream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	once    sync.Once

	// err is sticky: once set, every later Next returns it.
	err error
}

// Next returns the next content delta. Deltas may be empty.
func (s *Stream) Next(ctx context.Context) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if err := ctx.Err(); err != nil {
		return "", s.stop(failure(err.Error(), err))
	}

	for s.scanner.Scan() {
		line := strings.TrimSpace(s.scanner.Text())
		data, ok := strings.CutPrefix(line, "data:")
		if !ok {
			continue // blank separators, comments, event names
		}
		data = strings.TrimSpace(data)
		if data == "[DONE]" {
			return "", s.stop(io.EOF)
		}

		var chunk chatChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			return "", s.stop(failure("malformed stream chunk", err))
		}
		if chunk.Error != nil {
			return "", s.stop(failure(chunk.Error.Message, nil))
		}
		if len(chunk.Choices) == 0 {
			return "", nil
		}
		return chunk.Choices[0].Delta.Content, nil
	}

	err := s.scanner.Err()
	if err == nil {
		// Body ended without [DONE].
		err = io.ErrUnexpectedEOF
	}
	return "", s.stop(failure(err.Error(), err))
}

// Close releases the response body. It is safe to call more than once.
func (s *Stream) Close() error {
	var err error
	s.once.Do(func() { err = s.body.Close() })
	return err
}

func (s *Stream) stop(err error) error {
	s.err = err
	_ = s.Close()
	return err
}

func failure(msg string, err error) *models.ScrapeError {
	return models.NewScrapeError(models.ErrCodeLLMFailure, msgFailurePrefix+msg, err)
}

// classifyLLMError maps HTTP status codes to appropriate error codes.
func classifyLLMError(statusCode int, body []byte) *models.ScrapeError {
	var errResp chatErrorResponse
	msg := fmt.Sprintf("provider returned HTTP %d", statusCode)
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		msg = errResp.Error.Message
	}
	cause := errors.New(msg)

	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return models.NewScrapeError(models.ErrCodeLLMAuthFailure, msgAuth, cause)
	case statusCode == http.StatusTooManyRequests:
		return models.NewScrapeError(models.ErrCodeLLMRateLimited, msgRateLimited, cause)
	case statusCode >= http.StatusInternalServerError:
		return models.NewScrapeError(models.ErrCodeLLMServerError, msgServer, cause)
	default:
		return failure(msg, cause)
	}
}
