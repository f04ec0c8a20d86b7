// Package stream relays incrementally produced text to a caller as an
// ordered sequence of events.
package stream

import (
	"context"
	"errors"
	"io"

	"github.com/use-agent/pagelens/models"
	"github.com/use-agent/pagelens/reqlog"
)

// Source yields text chunks in order. Next returns io.EOF once the source
// is exhausted.
type Source interface {
	Next(ctx context.Context) (string, error)
}

// Sink receives events. Done writes the terminal sentinel.
type Sink interface {
	Send(ctx context.Context, ev models.StreamEvent) error
	Done(ctx context.Context) error
}

// Opener starts a Source.
type Opener func(ctx context.Context) (Source, error)

// Relay forwards every non-empty chunk of src to sink as one summary
// event, in arrival order, then writes the terminal sentinel. If src fails
// a single error event is sent and the relay stops without a sentinel.
// The returned error is the source failure or the first sink failure.
func Relay(ctx context.Context, src Source, sink Sink) error {
	log := reqlog.Stage(ctx, "relay")
	chunks := 0

	for {
		chunk, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			log.Debug("source exhausted", "chunks", chunks)
			return sink.Done(ctx)
		}
		if err != nil {
			log.Warn("source failed mid-stream", "chunks", chunks, "error", err)
			return Fail(ctx, sink, err)
		}
		if chunk == "" {
			continue
		}
		if err := sink.Send(ctx, models.StreamEvent{Type: models.EventSummary, Content: chunk}); err != nil {
			return err
		}
		chunks++
	}
}

// Pipe sends first, then opens a source and relays it. A source that
// cannot be opened ends the stream with an error event. Sources that are
// io.Closers are closed once the relay ends.
func Pipe(ctx context.Context, sink Sink, first models.StreamEvent, open Opener) error {
	if err := sink.Send(ctx, first); err != nil {
		return err
	}
	src, err := open(ctx)
	if err != nil {
		reqlog.Stage(ctx, "relay").Warn("opening source failed", "error", err)
		return Fail(ctx, sink, err)
	}
	if c, ok := src.(io.Closer); ok {
		defer c.Close()
	}
	return Relay(ctx, src, sink)
}

// Fail ends a stream with a single error event carrying err's message.
// It returns err, joined with the sink's failure if the event could not
// be written.
func Fail(ctx context.Context, sink Sink, err error) error {
	ev := models.StreamEvent{Type: models.EventError, Message: models.AsScrapeError(err).Message}
	if sendErr := sink.Send(ctx, ev); sendErr != nil {
		return errors.Join(err, sendErr)
	}
	return err
}
