// Package protocol defines the JSON messages exchanged between a remote
// wordscramble client and server over a websocket.
package protocol

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lox/wordscramble/internal/game"
)

// MessageType identifies the type of message
type MessageType string

const (
	// Client -> Server
	TypeSubmit MessageType = "submit"
	TypeState  MessageType = "state"

	// Server -> Client
	TypeSession MessageType = "session"
	TypeOutcome MessageType = "outcome"
	TypeError   MessageType = "error"
)

func (t MessageType) String() string {
	return string(t)
}

// Message is the envelope for every frame.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage encodes data into an envelope stamped with now.
func NewMessage(t MessageType, data any, now time.Time) (*Message, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", t, err)
	}
	return &Message{Type: t, Data: raw, Timestamp: now}, nil
}

// Decode unmarshals the payload into v.
func (m *Message) Decode(v any) error {
	if err := json.Unmarshal(m.Data, v); err != nil {
		return fmt.Errorf("decode %s: %w", m.Type, err)
	}
	return nil
}

// Client -> Server payloads

// Submit carries one raw submission, exactly as typed.
type Submit struct {
	Word string `json:"word"`
}

// StateRequest asks for a fresh Session message.
type StateRequest struct{}

// Server -> Client payloads

// Session describes the session bound to the connection.
type Session struct {
	ID        string    `json:"id"`
	RootWord  string    `json:"rootWord"`
	Language  string    `json:"language"`
	State     string    `json:"state"`
	UsedWords []string  `json:"usedWords"`
	StartedAt time.Time `json:"startedAt"`
}

// Outcome reports the result of a Submit.
type Outcome struct {
	Status    string   `json:"status"`
	Word      string   `json:"word,omitempty"`
	Reason    string   `json:"reason,omitempty"`
	Title     string   `json:"title,omitempty"`
	Message   string   `json:"message,omitempty"`
	UsedWords []string `json:"usedWords"`
}

// Error reports a protocol level failure.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewSession converts a session snapshot to its wire form.
func NewSession(s game.Snapshot) Session {
	return Session{
		ID:        s.ID,
		RootWord:  s.RootWord,
		Language:  s.Language,
		State:     s.State.String(),
		UsedWords: nonNil(s.UsedWords),
		StartedAt: s.StartedAt,
	}
}

// NewOutcome converts a game outcome to its wire form.
func NewOutcome(out game.Outcome, usedWords []string) Outcome {
	o := Outcome{
		Status:    out.Status.String(),
		Word:      out.Word,
		UsedWords: nonNil(usedWords),
	}
	if out.Rejection != nil {
		o.Reason = out.Rejection.Reason.String()
		o.Title = out.Rejection.Title
		o.Message = out.Rejection.Message
	}
	return o
}

// GameOutcome converts a wire outcome back into a game outcome.
func (o Outcome) GameOutcome() (game.Outcome, error) {
	out := game.Outcome{Word: o.Word}
	switch o.Status {
	case game.StatusIgnored.String():
		out.Status = game.StatusIgnored
	case game.StatusAccepted.String():
		out.Status = game.StatusAccepted
	case game.StatusRejected.String():
		out.Status = game.StatusRejected
		out.Rejection = &game.Rejection{
			Reason:  game.Reason(o.Reason),
			Title:   o.Title,
			Message: o.Message,
		}
	default:
		return game.Outcome{}, fmt.Errorf("unknown outcome status %q", o.Status)
	}
	return out, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
