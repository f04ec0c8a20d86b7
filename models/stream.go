package models

// Stream event types.
const (
	EventInfo       = "info"
	EventTranscript = "transcript"
	EventSummary    = "summary"
	EventError      = "error"
	EventDone       = "done"
)

// StreamEvent is one element of a summarize stream. Done is never
// serialized as JSON; the SSE sink writes the literal [DONE] sentinel.
type StreamEvent struct {
	Type    string     `json:"type"`
	Content string     `json:"content,omitempty"`
	Message string     `json:"message,omitempty"`
	Data    *VideoInfo `json:"data,omitempty"`
}

// VideoInfo is the payload of the info event that opens a summarize-by-URL stream.
type VideoInfo struct {
	Title      string `json:"title"`
	Channel    string `json:"channel"`
	Duration   string `json:"duration"`
	Transcript string `json:"transcript"`
	WordCount  int    `json:"wordCount"`
}
