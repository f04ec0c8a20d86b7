package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Transcript field names.
const (
	FieldChannel  = "channel"
	FieldDuration = "duration"
	ListSegments  = "segments"
)

// Transcript defaults.
const (
	DefaultVideoTitle = "Unknown Title"
	DefaultChannel    = "Unknown Channel"
)

// SegmentSelector matches the caption fragments inside the segment container.
const SegmentSelector = "#segments-container ytd-transcript-segment-renderer yt-formatted-string.segment-text"

var segments = AllText(SegmentSelector)

func trimSiteSuffix(v string) string {
	return strings.TrimSpace(strings.Replace(v, " - YouTube", "", 1))
}

func afterSlash(v string) string {
	_, after, ok := strings.Cut(v, "/")
	if !ok {
		return ""
	}
	return strings.TrimSpace(after)
}

// Transcript is the video-transcript profile. Segments are read in DOM order.
var Transcript = Profile{
	Name: "transcript",
	Fields: []Field{
		{Name: FieldTitle, Default: DefaultVideoTitle, Cascade: Cascade{
			Text("h1.ytd-watch-metadata yt-formatted-string"),
			Text("h1 yt-formatted-string"),
			Text("h1"),
			Map(Text("head > title"), trimSiteSuffix),
		}},
		{Name: FieldChannel, Default: DefaultChannel, Cascade: Cascade{
			Text("ytd-channel-name a"),
			Text("#channel-name a"),
		}},
		{Name: FieldDuration, Cascade: Cascade{
			Text(".ytp-time-duration"),
			Map(Text(".ytp-time-display"), afterSlash),
		}},
	},
	Lists: []ListField{
		{Name: ListSegments, Collect: segments},
	},
}

// JoinSegments concatenates segments with single spaces, preserving order.
func JoinSegments(scope *goquery.Selection) string {
	return strings.Join(segments(scope), " ")
}
