package game

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lox/wordscramble/internal/dictionary"
	"github.com/lox/wordscramble/internal/sessionid"
)

// State is the lifecycle state of a session.
type State int

const (
	StateActive State = iota
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateEnded:
		return "ended"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ErrEmptyRoot is returned by NewSession when the root word is blank.
var ErrEmptyRoot = errors.New("root word is empty")

// Entry is an accepted word and when it was accepted.
type Entry struct {
	Word       string
	AcceptedAt time.Time
}

// Session holds one root word and the words accepted against it.
type Session struct {
	id        string
	root      string
	language  string
	checker   dictionary.Checker
	caser     cases.Caser
	clock     quartz.Clock
	logger    *log.Logger
	observers []Observer

	// used is ordered most recent first; seen mirrors it for lookups.
	used []Entry
	seen map[string]struct{}

	state     State
	startedAt time.Time
}

// Option configures a Session.
type Option func(*sessionOptions)

type sessionOptions struct {
	id        string
	language  string
	clock     quartz.Clock
	logger    *log.Logger
	observers []Observer
}

// WithLanguage sets the dictionary and casing language. Defaults to "en".
func WithLanguage(lang string) Option {
	return func(o *sessionOptions) { o.language = lang }
}

// WithClock injects the clock used for timestamps.
func WithClock(clock quartz.Clock) Option {
	return func(o *sessionOptions) { o.clock = clock }
}

// WithID sets the session ID instead of generating one.
func WithID(id string) Option {
	return func(o *sessionOptions) { o.id = id }
}

// WithLogger sets the logger. Sessions are silent by default.
func WithLogger(logger *log.Logger) Option {
	return func(o *sessionOptions) { o.logger = logger }
}

// WithObserver registers an observer. May be given more than once.
func WithObserver(obs Observer) Option {
	return func(o *sessionOptions) { o.observers = append(o.observers, obs) }
}

// NewSession starts an active session for root. The root word is normalized
// the same way submissions are.
func NewSession(root string, checker dictionary.Checker, opts ...Option) (*Session, error) {
	o := sessionOptions{language: dictionary.DefaultLanguage}
	for _, opt := range opts {
		opt(&o)
	}
	if o.clock == nil {
		o.clock = quartz.NewReal()
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	if o.id == "" {
		o.id = sessionid.NewGenerator(o.clock, nil).Generate()
	}
	if checker == nil {
		return nil, errors.New("dictionary checker is required")
	}

	tag, err := language.Parse(o.language)
	if err != nil {
		return nil, fmt.Errorf("session language %q: %w", o.language, err)
	}
	caser := cases.Lower(tag)

	root = normalize(caser, root)
	if root == "" {
		return nil, ErrEmptyRoot
	}

	s := &Session{
		id:        o.id,
		root:      root,
		language:  o.language,
		checker:   checker,
		caser:     caser,
		clock:     o.clock,
		logger:    o.logger.WithPrefix("session"),
		observers: o.observers,
		seen:      make(map[string]struct{}),
		state:     StateActive,
		startedAt: o.clock.Now(),
	}
	s.logger.Debug("Session started", "id", s.id, "root", s.root, "language", s.language)
	return s, nil
}

// Submit normalizes raw and runs it through the validation pipeline. An
// accepted word is prepended to the used words; nothing else changes.
func (s *Session) Submit(raw string) Outcome {
	word := normalize(s.caser, raw)
	if word == "" {
		return Outcome{Status: StatusIgnored}
	}

	if reason, ok := s.check(word); !ok {
		out := Outcome{Status: StatusRejected, Word: word, Rejection: newRejection(reason, s.root)}
		s.logger.Debug("Word rejected", "word", word, "reason", reason)
		s.emit(Event{Type: EventTypeWordRejected, SessionID: s.id, Word: word, Outcome: out})
		return out
	}

	s.used = slices.Insert(s.used, 0, Entry{Word: word, AcceptedAt: s.clock.Now()})
	s.seen[word] = struct{}{}

	out := Outcome{Status: StatusAccepted, Word: word}
	s.logger.Debug("Word accepted", "word", word, "found", len(s.used))
	s.emit(Event{Type: EventTypeWordAccepted, SessionID: s.id, Word: word, Outcome: out})
	return out
}

// check runs the pipeline in order and returns the first failing reason.
// The order is visible to players through the message they see.
func (s *Session) check(word string) (Reason, bool) {
	switch {
	case s.state == StateEnded:
		return ReasonSessionEnded, false
	case !s.isOriginal(word):
		return ReasonAlreadyUsed, false
	case !s.isPossible(word):
		return ReasonNotPossible, false
	case !s.isReal(word):
		return ReasonNotReal, false
	case word == s.root:
		return ReasonSameAsRoot, false
	}
	return "", true
}

func (s *Session) isOriginal(word string) bool {
	_, used := s.seen[word]
	return !used
}

func (s *Session) isPossible(word string) bool {
	return IsPossible(word, s.root)
}

func (s *Session) isReal(word string) bool {
	return s.checker.IsRealWord(word, s.language)
}

// End moves the session to its terminal state. Further submissions are
// rejected with ReasonSessionEnded. Calling End twice is a no-op.
func (s *Session) End() {
	if s.state == StateEnded {
		return
	}
	s.state = StateEnded
	s.logger.Debug("Session ended", "id", s.id, "found", len(s.used))
	s.emit(Event{Type: EventTypeSessionEnded, SessionID: s.id})
}

func (s *Session) emit(ev Event) {
	for _, obs := range s.observers {
		obs(ev)
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// RootWord returns the root word.
func (s *Session) RootWord() string { return s.root }

// Language returns the session language as configured.
func (s *Session) Language() string { return s.language }

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// StartedAt returns when the session was created.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// UsedWords returns the accepted words, most recent first.
func (s *Session) UsedWords() []string {
	out := make([]string, len(s.used))
	for i, e := range s.used {
		out[i] = e.Word
	}
	return out
}

// Entries returns the accepted words with their timestamps, most recent first.
func (s *Session) Entries() []Entry {
	return slices.Clone(s.used)
}

// Snapshot is a point-in-time copy of a session for presentation.
type Snapshot struct {
	ID        string
	RootWord  string
	Language  string
	State     State
	UsedWords []string
	StartedAt time.Time
}

// Snapshot copies the session's visible state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		ID:        s.id,
		RootWord:  s.root,
		Language:  s.language,
		State:     s.state,
		UsedWords: s.UsedWords(),
		StartedAt: s.startedAt,
	}
}
