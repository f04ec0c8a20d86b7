package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/pagelens/llm"
	"github.com/use-agent/pagelens/metrics"
	"github.com/use-agent/pagelens/models"
	"github.com/use-agent/pagelens/normalize"
	"github.com/use-agent/pagelens/reqlog"
	"github.com/use-agent/pagelens/scraper"
	"github.com/use-agent/pagelens/stream"
)

// Transcript returns a handler for POST /youtube/transcript.
func Transcript(sc *scraper.Scraper) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.URLRequest
		if !bindJSON(c, &req) {
			return
		}
		if err := req.ValidateVideo(); err != nil {
			respondError(c, err)
			return
		}

		bundle, err := sc.FetchTranscript(c.Request.Context(), req.URL)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.TranscriptResponse{Success: true, Data: bundle})
	}
}

// Summarize returns a handler for POST /youtube/summarize.
//
// Stream layout:
//
//	info      – video metadata and the full transcript
//	summary…  – one event per provider chunk
//	[DONE]    – or a single error event
//
// Once the stream has started every failure, including the transcript
// fetch, is reported in-stream.
func Summarize(sc *scraper.Scraper, lc *llm.Client, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.URLRequest
		if !bindJSON(c, &req) {
			return
		}
		if err := req.ValidateVideo(); err != nil {
			respondError(c, err)
			return
		}
		if !lc.Configured() {
			respondError(c, models.NewScrapeError(models.ErrCodeLLMNotConfigured, llm.MsgNotConfigured, nil))
			return
		}

		ctx := c.Request.Context()
		sink := stream.NewSSEWriter(c.Writer, m)
		c.Status(http.StatusOK)

		bundle, err := sc.FetchTranscript(ctx, req.URL)
		if err != nil {
			_ = stream.Fail(ctx, sink, err)
			return
		}

		info := models.StreamEvent{Type: models.EventInfo, Data: normalize.VideoInfo(bundle)}
		if err := stream.Pipe(ctx, sink, info, summarySource(lc, bundle.Transcript)); err != nil {
			reqlog.Stage(ctx, "relay").Warn("summary stream ended with error", "error", err)
		}
	}
}

// SummarizeText returns a handler for POST /youtube/summarize-text.
func SummarizeText(lc *llm.Client, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SummarizeTextRequest
		if !bindJSON(c, &req) {
			return
		}
		if err := req.Validate(); err != nil {
			respondError(c, err)
			return
		}
		if !lc.Configured() {
			respondError(c, models.NewScrapeError(models.ErrCodeLLMNotConfigured, llm.MsgNotConfigured, nil))
			return
		}

		ctx := c.Request.Context()
		sink := stream.NewSSEWriter(c.Writer, m)
		c.Status(http.StatusOK)

		first := models.StreamEvent{Type: models.EventTranscript, Content: req.Transcript}
		if err := stream.Pipe(ctx, sink, first, summarySource(lc, req.Transcript)); err != nil {
			reqlog.Stage(ctx, "relay").Warn("summary stream ended with error", "error", err)
		}
	}
}

func summarySource(lc *llm.Client, transcript string) stream.Opener {
	return func(ctx context.Context) (stream.Source, error) {
		s, err := lc.Summarize(ctx, transcript)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}
