package game

// EventType represents a session event type with type safety
type EventType string

const (
	EventTypeWordAccepted EventType = "word_accepted"
	EventTypeWordRejected EventType = "word_rejected"
	EventTypeSessionEnded EventType = "session_ended"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event describes a change, or attempted change, to a session.
type Event struct {
	Type      EventType
	SessionID string
	Word      string
	Outcome   Outcome
}

// Observer receives session events.
type Observer func(Event)
