package scraper

import (
	"context"
	"time"
)

// Signal is one readiness condition. It returns nil once the condition
// holds and must return promptly when ctx is cancelled.
type Signal func(ctx context.Context) error

// FirstOf runs every signal concurrently and returns the index and result
// of the first one to settle, success or failure. The others are cancelled
// and their results discarded. It returns (-1, ctx.Err()) if ctx ends
// first, and (-1, nil) when no signal is given.
func FirstOf(ctx context.Context, signals ...Signal) (int, error) {
	if len(signals) == 0 {
		return -1, nil
	}

	type settled struct {
		idx int
		err error
	}

	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Buffered so that losers never block after the race is decided.
	results := make(chan settled, len(signals))
	for i, signal := range signals {
		go func(i int, signal Signal) {
			results <- settled{idx: i, err: signal(raceCtx)}
		}(i, signal)
	}

	select {
	case r := <-results:
		return r.idx, r.err
	case <-ctx.Done():
		return -1, ctx.Err()
	}
}

// ElementSignal settles when selector appears on page or timeout elapses.
func ElementSignal(page Page, selector string, timeout time.Duration) Signal {
	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return page.WaitElement(ctx, selector)
	}
}

// DelaySignal settles successfully after d.
func DelaySignal(d time.Duration) Signal {
	return func(ctx context.Context) error {
		return sleep(ctx, d)
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
