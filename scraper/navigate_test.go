package scraper

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/use-agent/pagelens/models"
)

func TestCategorizeError(t *testing.T) {
	typed := models.NewScrapeError(models.ErrCodeInteraction, "panel unavailable", nil)

	tests := []struct {
		name     string
		err      error
		wantCode string
		wantMsg  string
	}{
		{"typed error kept", typed, models.ErrCodeInteraction, "panel unavailable"},
		{"wrapped typed error kept", fmt.Errorf("click: %w", typed), models.ErrCodeInteraction, "panel unavailable"},
		{"deadline", fmt.Errorf("navigate: %w", context.DeadlineExceeded), models.ErrCodeTimeout, "navigation failed"},
		{"cancel", context.Canceled, models.ErrCodeTimeout, "request canceled"},
		{"network", errors.New("net::ERR_CONNECTION_RESET"), models.ErrCodeNavigation, "navigation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := categorizeError(tt.err, "navigation failed")
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantMsg, got.Message)
		})
	}
}

func TestSettle(t *testing.T) {
	assert.NoError(t, Settle(context.Background(), 0))
	assert.NoError(t, Settle(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Settle(ctx, time.Hour)
	assert.Equal(t, models.ErrCodeTimeout, models.CodeOf(err))
}
