package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/wordscramble/internal/dictionary"
	"github.com/lox/wordscramble/internal/game"
	"github.com/lox/wordscramble/internal/protocol"
	"github.com/lox/wordscramble/internal/server"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func startServer(t *testing.T) string {
	t.Helper()
	set, err := dictionary.Build([]string{"ball", "loan", "all"})
	require.NoError(t, err)
	reg := dictionary.NewRegistry()
	require.NoError(t, reg.Register(dictionary.DefaultLanguage, set))

	srv := server.NewServer(func() (*game.Session, error) {
		return game.NewSession("balloon", reg)
	}, testLogger(), quartz.NewReal())

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
}

func TestRemoteSession(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s, err := Dial(ctx, startServer(t), testLogger())
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, "balloon", s.RootWord())
	assert.NotEmpty(t, s.ID())
	assert.Empty(t, s.UsedWords())

	out, err := s.Submit("Ball")
	require.NoError(t, err)
	assert.True(t, out.Accepted())
	assert.Equal(t, "ball", out.Word)

	out, err = s.Submit("ball")
	require.NoError(t, err)
	assert.Equal(t, game.StatusRejected, out.Status)
	assert.ErrorIs(t, out.Err(), game.ErrAlreadyUsed)

	out, err = s.SubmitContext(ctx, "zebra")
	require.NoError(t, err)
	assert.ErrorIs(t, out.Err(), game.ErrNotPossible)
	assert.Equal(t, "You can't spell that word from 'balloon'.", out.Rejection.Message)

	out, err = s.Submit("loan")
	require.NoError(t, err)
	assert.True(t, out.Accepted())
	assert.Equal(t, []string{"loan", "ball"}, s.UsedWords())

	out, err = s.Submit("")
	require.NoError(t, err)
	assert.Equal(t, game.StatusIgnored, out.Status)

	require.NoError(t, s.Refresh(ctx))
	assert.Equal(t, []string{"loan", "ball"}, s.UsedWords())
}

func TestDialFailure(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := Dial(ctx, "ws://127.0.0.1:1/ws", testLogger())
	assert.Error(t, err)
}

// startFakeServer answers every websocket with a session carrying id.
func startFakeServer(t *testing.T, id string) string {
	t.Helper()
	upgrader := websocket.Upgrader{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		msg, err := protocol.NewMessage(protocol.TypeSession, protocol.Session{ID: id, RootWord: "balloon"}, time.Now())
		if err != nil {
			return
		}
		_ = conn.WriteJSON(msg)
		_, _, _ = conn.ReadMessage()
	}))
	t.Cleanup(ts.Close)
	return "ws" + strings.TrimPrefix(ts.URL, "http")
}

func TestDialValidatesSessionID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"generated", "01jnf0qz6qe8v2k9h7g6fxs0ab", false},
		{"empty", "", true},
		{"too short", "abc", true},
		{"bad character", "01jnf0qz6qe8v2k9h7g6fxs0au", true},
		{"first character out of range", "81jnf0qz6qe8v2k9h7g6fxs0ab", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			s, err := Dial(ctx, startFakeServer(t, tt.id), testLogger())
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrServer)
				return
			}
			require.NoError(t, err)
			defer s.Close()
			assert.Equal(t, tt.id, s.ID())
		})
	}
}

func TestSubmitAfterServerCloses(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s, err := Dial(ctx, startServer(t), testLogger())
	require.NoError(t, err)
	require.NoError(t, s.conn.Close())

	_, err = s.Submit("ball")
	assert.Error(t, err)
}
