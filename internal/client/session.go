// Package client drives a game session hosted by a remote wordscramble
// server.
package client

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/wordscramble/internal/game"
	"github.com/lox/wordscramble/internal/protocol"
	"github.com/lox/wordscramble/internal/sessionid"
)

// DefaultTimeout bounds a single request/response exchange.
const DefaultTimeout = 10 * time.Second

// ErrServer wraps protocol errors reported by the server.
var ErrServer = errors.New("server error")

// Session is a remote game session. Requests are serialised; a background
// reader keeps the connection answering pings while the player thinks.
type Session struct {
	conn     *websocket.Conn
	logger   *log.Logger
	timeout  time.Duration
	incoming chan *protocol.Message
	readErr  error
	done     chan struct{}

	mu     sync.Mutex
	info   protocol.Session
	nextID int
}

// Dial connects to url (ws:// or wss://) and waits for the session the server
// starts for this connection.
func Dial(ctx context.Context, url string, logger *log.Logger) (*Session, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}

	s := &Session{
		conn:     conn,
		logger:   logger.WithPrefix("client"),
		timeout:  DefaultTimeout,
		incoming: make(chan *protocol.Message, 16),
		done:     make(chan struct{}),
	}
	go s.readLoop()

	msg, err := s.next(ctx)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if msg.Type != protocol.TypeSession {
		_ = conn.Close()
		return nil, fmt.Errorf("expected %s message, got %s", protocol.TypeSession, msg.Type)
	}
	if err := msg.Decode(&s.info); err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := sessionid.Validate(s.info.ID); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: %w", ErrServer, err)
	}

	s.logger.Info("Connected", "session", s.info.ID, "root", s.info.RootWord)
	return s, nil
}

// ID returns the remote session ID.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.info.ID
}

// RootWord returns the remote session's root word.
func (s *Session) RootWord() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.info.RootWord
}

// UsedWords returns the accepted words as of the last server reply.
func (s *Session) UsedWords() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.info.UsedWords...)
}

// Submit sends raw to the server and returns its verdict.
func (s *Session) Submit(raw string) (game.Outcome, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.SubmitContext(ctx, raw)
}

// SubmitContext is Submit with a caller supplied context.
func (s *Session) SubmitContext(ctx context.Context, raw string) (game.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, err := s.roundTrip(ctx, protocol.TypeSubmit, protocol.Submit{Word: raw})
	if err != nil {
		return game.Outcome{}, err
	}
	if msg.Type != protocol.TypeOutcome {
		return game.Outcome{}, fmt.Errorf("expected %s message, got %s", protocol.TypeOutcome, msg.Type)
	}

	var wire protocol.Outcome
	if err := msg.Decode(&wire); err != nil {
		return game.Outcome{}, err
	}
	s.info.UsedWords = wire.UsedWords
	return wire.GameOutcome()
}

// Refresh re-reads the session state from the server.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, err := s.roundTrip(ctx, protocol.TypeState, protocol.StateRequest{})
	if err != nil {
		return err
	}
	if msg.Type != protocol.TypeSession {
		return fmt.Errorf("expected %s message, got %s", protocol.TypeSession, msg.Type)
	}
	return msg.Decode(&s.info)
}

// Close closes the connection; the server ends the session.
func (s *Session) Close() error {
	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return s.conn.Close()
}

// roundTrip sends a request and reads until the matching reply. Callers hold mu.
func (s *Session) roundTrip(ctx context.Context, t protocol.MessageType, data any) (*protocol.Message, error) {
	s.nextID++
	requestID := strconv.Itoa(s.nextID)

	req, err := protocol.NewMessage(t, data, time.Now())
	if err != nil {
		return nil, err
	}
	req.RequestID = requestID

	if deadline, ok := ctx.Deadline(); ok {
		_ = s.conn.SetWriteDeadline(deadline)
	}
	if err := s.conn.WriteJSON(req); err != nil {
		return nil, fmt.Errorf("send %s: %w", t, err)
	}

	for {
		msg, err := s.next(ctx)
		if err != nil {
			return nil, err
		}
		if msg.RequestID != requestID {
			s.logger.Debug("Skipping unrelated message", "type", msg.Type, "requestId", msg.RequestID)
			continue
		}
		if msg.Type == protocol.TypeError {
			var e protocol.Error
			if err := msg.Decode(&e); err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %s: %s", ErrServer, e.Code, e.Message)
		}
		return msg, nil
	}
}

// readLoop owns all reads on the connection. Reading keeps gorilla's default
// ping handler running.
func (s *Session) readLoop() {
	defer close(s.done)
	for {
		var msg protocol.Message
		if err := s.conn.ReadJSON(&msg); err != nil {
			s.readErr = err
			return
		}
		select {
		case s.incoming <- &msg:
		default:
			s.logger.Warn("Dropping unsolicited message", "type", msg.Type)
		}
	}
}

// next waits for the next message from the server.
func (s *Session) next(ctx context.Context) (*protocol.Message, error) {
	select {
	case msg := <-s.incoming:
		return msg, nil
	case <-s.done:
		// Drain anything the reader queued before it stopped.
		select {
		case msg := <-s.incoming:
			return msg, nil
		default:
		}
		return nil, fmt.Errorf("read message: %w", s.readErr)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
