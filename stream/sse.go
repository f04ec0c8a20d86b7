package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/use-agent/pagelens/metrics"
	"github.com/use-agent/pagelens/models"
)

// DoneSentinel terminates a successful stream.
const DoneSentinel = "[DONE]"

// SSEWriter writes events as `data: <json>` frames and flushes after
// each one so the caller sees chunks as they arrive.
type SSEWriter struct {
	w       io.Writer
	flusher http.Flusher
	metrics *metrics.Metrics
}

// NewSSEWriter sets the event-stream headers on w. m may be nil.
func NewSSEWriter(w http.ResponseWriter, m *metrics.Metrics) *SSEWriter {
	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")

	flusher, _ := w.(http.Flusher)
	return &SSEWriter{w: w, flusher: flusher, metrics: m}
}

// Send writes one event.
func (s *SSEWriter) Send(ctx context.Context, ev models.StreamEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if err := s.frame(string(payload)); err != nil {
		return err
	}
	s.metrics.IncStreamEvent(ev.Type)
	return nil
}

// Done writes the [DONE] sentinel.
func (s *SSEWriter) Done(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.frame(DoneSentinel); err != nil {
		return err
	}
	s.metrics.IncStreamEvent(models.EventDone)
	return nil
}

func (s *SSEWriter) frame(data string) error {
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", data); err != nil {
		return err
	}
	if s.flusher != nil {
		s.flusher.Flush()
	}
	return nil
}
