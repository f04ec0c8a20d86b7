package scraper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func blockUntilDone(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestFirstOfReturnsFirstSettled(t *testing.T) {
	defer goleak.VerifyNone(t)

	idx, err := FirstOf(context.Background(),
		blockUntilDone,
		DelaySignal(10*time.Millisecond),
		blockUntilDone,
	)

	assert.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func TestFirstOfReportsFailure(t *testing.T) {
	defer goleak.VerifyNone(t)

	boom := errors.New("marker wait failed")
	idx, err := FirstOf(context.Background(),
		func(ctx context.Context) error { return boom },
		blockUntilDone,
	)

	assert.Equal(t, 0, idx)
	assert.ErrorIs(t, err, boom)
}

func TestFirstOfContextEnds(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	idx, err := FirstOf(ctx, func(context.Context) error {
		time.Sleep(200 * time.Millisecond)
		return nil
	})

	assert.Equal(t, -1, idx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFirstOfNoSignals(t *testing.T) {
	idx, err := FirstOf(context.Background())
	assert.Equal(t, -1, idx)
	assert.NoError(t, err)
}

func TestDelaySignalHonoursCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := DelaySignal(time.Hour)(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
