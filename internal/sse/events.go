package sse

// SSE event type constants
const (
	EventState       = "state"
	EventScoreUpdate = "score-update"
	EventClosed      = "closed" // last event of an ended session's stream
)
