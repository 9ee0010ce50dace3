package realtime_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"boardsync/internal/ordering"
	"boardsync/internal/realtime"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authzFunc func(ctx context.Context, boardID, userID uuid.UUID) error

func (f authzFunc) Authorize(ctx context.Context, boardID, userID uuid.UUID) error {
	return f(ctx, boardID, userID)
}

// membersOf allows only the listed users onto any board.
func membersOf(users ...uuid.UUID) realtime.Authorizer {
	return authzFunc(func(_ context.Context, _, userID uuid.UUID) error {
		for _, u := range users {
			if u == userID {
				return nil
			}
		}
		return ordering.ErrForbidden
	})
}

func startServer(t *testing.T, hub *realtime.Hub) string {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(r.URL.Query().Get("user"))
		if err != nil {
			http.Error(w, "bad user", http.StatusBadRequest)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Serve(conn, userID)
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(hub.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string, userID uuid.UUID) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url+"?user="+userID.String(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, msg realtime.ClientMessage) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(msg))
}

// next reads one envelope, failing after two seconds.
func next(t *testing.T, conn *websocket.Conn) realtime.Envelope {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	var env realtime.Envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	return env
}

// until reads envelopes until one named event arrives.
func until(t *testing.T, conn *websocket.Conn, event string) realtime.Envelope {
	t.Helper()
	for {
		env := next(t, conn)
		if env.Event == event {
			return env
		}
	}
}

func joinBoard(t *testing.T, conn *websocket.Conn, boardID uuid.UUID) {
	t.Helper()
	send(t, conn, realtime.ClientMessage{Type: realtime.MsgJoinBoard, BoardID: boardID})
	env := next(t, conn)
	require.Equal(t, "joined", env.Event, string(env.Data))
	until(t, conn, "user:joined")
}

func TestHub_JoinBoardAndReceive(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	hub := realtime.NewHub(membersOf(alice, bob))
	url := startServer(t, hub)
	boardID := uuid.New()

	a := dial(t, url, alice)
	b := dial(t, url, bob)
	joinBoard(t, a, boardID)
	joinBoard(t, b, boardID)

	// a sees b arrive
	joined := until(t, a, "user:joined")
	assert.Contains(t, string(joined.Data), bob.String())

	cardID := uuid.New()
	hub.ToBoard(context.Background(), boardID, realtime.CardCreated{BoardID: boardID, CardID: cardID})

	for _, conn := range []*websocket.Conn{a, b} {
		env := until(t, conn, "card:created")
		assert.Equal(t, boardID, env.BoardID())
		assert.Contains(t, string(env.Data), cardID.String())
	}

	assert.ElementsMatch(t, []uuid.UUID{alice, bob}, hub.Present(boardID))
}

func TestHub_JoinBoardForbidden(t *testing.T) {
	alice, mallory := uuid.New(), uuid.New()
	hub := realtime.NewHub(membersOf(alice))
	url := startServer(t, hub)
	boardID := uuid.New()

	m := dial(t, url, mallory)
	send(t, m, realtime.ClientMessage{Type: realtime.MsgJoinBoard, BoardID: boardID})

	env := next(t, m)
	assert.Equal(t, "error", env.Event)
	assert.Empty(t, hub.Present(boardID))
}

func TestHub_JoinUserOnlySelf(t *testing.T) {
	alice := uuid.New()
	hub := realtime.NewHub(membersOf(alice))
	url := startServer(t, hub)

	a := dial(t, url, alice)
	send(t, a, realtime.ClientMessage{Type: realtime.MsgJoinUser, UserID: uuid.New()})
	assert.Equal(t, "error", next(t, a).Event)

	send(t, a, realtime.ClientMessage{Type: realtime.MsgJoinUser, UserID: alice})
	assert.Equal(t, "joined", next(t, a).Event)

	boardID := uuid.New()
	hub.ToUser(context.Background(), alice, realtime.BoardCreated{BoardID: boardID})
	env := next(t, a)
	assert.Equal(t, "board:created", env.Event)
	assert.Equal(t, boardID, env.BoardID())
}

func TestHub_PingPong(t *testing.T) {
	alice := uuid.New()
	hub := realtime.NewHub(membersOf(alice))
	a := dial(t, startServer(t, hub), alice)

	send(t, a, realtime.ClientMessage{Type: realtime.MsgPing})
	assert.Equal(t, "pong", next(t, a).Event)

	send(t, a, realtime.ClientMessage{Type: "dance"})
	assert.Equal(t, "error", next(t, a).Event)
}

func TestHub_RelayWhitelist(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	hub := realtime.NewHub(membersOf(alice, bob))
	url := startServer(t, hub)
	boardID := uuid.New()

	a := dial(t, url, alice)
	b := dial(t, url, bob)

	// relaying before joining is refused
	send(t, a, realtime.ClientMessage{Type: realtime.MsgRelay, Event: "card:moved", BoardID: boardID})
	assert.Equal(t, "error", next(t, a).Event)

	joinBoard(t, a, boardID)
	joinBoard(t, b, boardID)

	send(t, a, realtime.ClientMessage{Type: realtime.MsgRelay, Event: "board:deleted", BoardID: boardID})
	assert.Equal(t, "error", until(t, a, "error").Event)

	send(t, a, realtime.ClientMessage{Type: realtime.MsgRelay, Event: "card:moved", BoardID: boardID})
	env := until(t, b, "card:moved")
	assert.Equal(t, boardID, env.BoardID())
	assert.Contains(t, string(env.Data), alice.String())
}

func TestHub_LeaveAndDisconnectAnnounceUserLeft(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	hub := realtime.NewHub(membersOf(alice, bob))
	url := startServer(t, hub)
	boardID := uuid.New()

	a := dial(t, url, alice)
	b := dial(t, url, bob)
	joinBoard(t, a, boardID)
	joinBoard(t, b, boardID)

	send(t, b, realtime.ClientMessage{Type: realtime.MsgLeaveBoard, BoardID: boardID})
	left := until(t, a, "user:left")
	assert.Contains(t, string(left.Data), bob.String())
	assert.Equal(t, []uuid.UUID{alice}, hub.Present(boardID))

	joinBoard(t, b, boardID)
	require.NoError(t, b.Close())
	left = until(t, a, "user:left")
	assert.Contains(t, string(left.Data), bob.String())
	assert.Eventually(t, func() bool { return hub.ConnectionCount() == 1 }, 2*time.Second, 10*time.Millisecond)
}
