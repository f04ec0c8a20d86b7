package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const watchHTML = `<html><head><title>Go Concurrency Patterns - YouTube</title></head><body>
<h1 class="ytd-watch-metadata"><yt-formatted-string>Go Concurrency Patterns</yt-formatted-string></h1>
<ytd-channel-name><a>Google for Developers</a></ytd-channel-name>
<div class="ytp-time-display"><span>0:00 / 51:26</span></div>
<div id="segments-container">
  <ytd-transcript-segment-renderer><yt-formatted-string class="segment-text">so today</yt-formatted-string></ytd-transcript-segment-renderer>
  <ytd-transcript-segment-renderer><yt-formatted-string class="segment-text">  </yt-formatted-string></ytd-transcript-segment-renderer>
  <ytd-transcript-segment-renderer><yt-formatted-string class="segment-text">I want to
     talk about</yt-formatted-string></ytd-transcript-segment-renderer>
  <ytd-transcript-segment-renderer><yt-formatted-string class="segment-text">channels</yt-formatted-string></ytd-transcript-segment-renderer>
</div>
</body></html>`

func TestTranscriptProfile(t *testing.T) {
	doc := mustParse(t, watchHTML)

	raw := Transcript.Extract(doc.Selection)

	assert.Equal(t, "Go Concurrency Patterns", raw.Get(FieldTitle))
	assert.Equal(t, "Google for Developers", raw.Get(FieldChannel))
	assert.Equal(t, "51:26", raw.Get(FieldDuration))
	assert.Equal(t, []string{"so today", "I want to talk about", "channels"}, raw.List(ListSegments))
}

func TestJoinSegmentsIsOrderedAndIdempotent(t *testing.T) {
	doc := mustParse(t, watchHTML)

	first := JoinSegments(doc.Selection)
	second := JoinSegments(doc.Selection)

	assert.Equal(t, "so today I want to talk about channels", first)
	assert.Equal(t, first, second)
}

func TestTranscriptTitleFallsBackToDocumentTitle(t *testing.T) {
	doc := mustParse(t, `<html><head><title>Lecture 1 - YouTube</title></head><body></body></html>`)

	raw := Transcript.Extract(doc.Selection)

	assert.Equal(t, "Lecture 1", raw.Get(FieldTitle))
	assert.Equal(t, DefaultChannel, raw.Get(FieldChannel))
	assert.Equal(t, "", raw.Get(FieldDuration))
	assert.Empty(t, JoinSegments(doc.Selection))
}
