package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/use-agent/pagelens/config"
	"github.com/use-agent/pagelens/reqlog"
)

// cdpRecorder is a proto.Client that records method calls and fails the
// ones listed in fail.
type cdpRecorder struct {
	calls []string
	fail  map[string]error
}

func (r *cdpRecorder) Call(_ context.Context, _, method string, _ interface{}) ([]byte, error) {
	r.calls = append(r.calls, method)
	if err := r.fail[method]; err != nil {
		return nil, err
	}
	return []byte("{}"), nil
}

func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, l := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if l == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(l), &m))
		out = append(out, m)
	}
	return out
}

func TestApplyIdentityLogsEveryFailure(t *testing.T) {
	var buf bytes.Buffer
	ctx := reqlog.WithLogger(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))

	client := &cdpRecorder{fail: map[string]error{
		"Network.setUserAgentOverride": errors.New("ua refused"),
		"Network.setExtraHTTPHeaders":  errors.New("headers refused"),
	}}
	applyIdentity(ctx, client, config.BrowserConfig{UserAgent: "pagelens-test", AcceptLanguage: "en-GB"})

	assert.Equal(t, []string{"Network.setUserAgentOverride", "Network.setExtraHTTPHeaders"}, client.calls)

	lines := logLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "user agent override failed", lines[0]["msg"])
	assert.Equal(t, "ua refused", lines[0]["error"])
	assert.Equal(t, "extra headers override failed", lines[1]["msg"])
	assert.Equal(t, "headers refused", lines[1]["error"])
	assert.Equal(t, "connect", lines[1]["stage"])
}

func TestApplyIdentitySkipsHeadersWithoutLanguage(t *testing.T) {
	var buf bytes.Buffer
	ctx := reqlog.WithLogger(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))

	client := &cdpRecorder{}
	applyIdentity(ctx, client, config.BrowserConfig{UserAgent: "pagelens-test"})

	assert.Equal(t, []string{"Network.setUserAgentOverride"}, client.calls)
	assert.Empty(t, buf.String())
}
