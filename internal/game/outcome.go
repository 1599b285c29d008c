package game

import (
	"errors"
	"fmt"
)

// Status is the coarse result of a submission.
type Status int

const (
	// StatusIgnored means the input was empty after normalization.
	StatusIgnored Status = iota
	StatusAccepted
	StatusRejected
)

func (s Status) String() string {
	switch s {
	case StatusIgnored:
		return "ignored"
	case StatusAccepted:
		return "accepted"
	case StatusRejected:
		return "rejected"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Reason identifies which check rejected a word.
type Reason string

const (
	ReasonAlreadyUsed  Reason = "already_used"
	ReasonNotPossible  Reason = "not_possible"
	ReasonNotReal      Reason = "not_real"
	ReasonSameAsRoot   Reason = "same_as_root"
	ReasonSessionEnded Reason = "session_ended"
)

func (r Reason) String() string {
	return string(r)
}

// Sentinel errors matching each Reason, for errors.Is.
var (
	ErrAlreadyUsed  = errors.New("word already used")
	ErrNotPossible  = errors.New("word not possible from root")
	ErrNotReal      = errors.New("not a real word")
	ErrSameAsRoot   = errors.New("word is the root word")
	ErrSessionEnded = errors.New("session ended")
)

var reasonErrors = map[Reason]error{
	ReasonAlreadyUsed:  ErrAlreadyUsed,
	ReasonNotPossible:  ErrNotPossible,
	ReasonNotReal:      ErrNotReal,
	ReasonSameAsRoot:   ErrSameAsRoot,
	ReasonSessionEnded: ErrSessionEnded,
}

// Rejection is the user-facing explanation of a rejected word.
type Rejection struct {
	Reason  Reason
	Title   string
	Message string
}

func newRejection(reason Reason, root string) *Rejection {
	r := &Rejection{Reason: reason}
	switch reason {
	case ReasonAlreadyUsed:
		r.Title, r.Message = "Word used already", "Be more original."
	case ReasonNotPossible:
		r.Title, r.Message = "Word not possible", fmt.Sprintf("You can't spell that word from '%s'.", root)
	case ReasonNotReal:
		r.Title, r.Message = "Word not recognized", "You can't just make them up, you know."
	case ReasonSameAsRoot:
		r.Title, r.Message = "Word is the root word", "Find words hidden inside it instead."
	case ReasonSessionEnded:
		r.Title, r.Message = "Game over", "Start a new game to keep playing."
	}
	return r
}

// Outcome is the result of one Submit call.
type Outcome struct {
	Status Status
	// Word is the normalized submission. Empty when Status is StatusIgnored.
	Word string
	// Rejection is set only when Status is StatusRejected.
	Rejection *Rejection
}

// Accepted reports whether the word was added to the session.
func (o Outcome) Accepted() bool {
	return o.Status == StatusAccepted
}

// Err returns the rejection as an error, or nil.
func (o Outcome) Err() error {
	if o.Status != StatusRejected || o.Rejection == nil {
		return nil
	}
	return &RejectionError{Word: o.Word, Rejection: *o.Rejection}
}

// RejectionError wraps a Rejection so it can travel as an error. It unwraps
// to the sentinel for its Reason.
type RejectionError struct {
	Word      string
	Rejection Rejection
}

func (e *RejectionError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%q rejected: %s", e.Word, e.Rejection.Title)
}

func (e *RejectionError) Unwrap() error {
	return reasonErrors[e.Rejection.Reason]
}
