package reconciler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"boardsync/internal/realtime"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	minReconnectDelay = 1 * time.Second
	maxReconnectDelay = 5 * time.Second

	// The server pings every 54s; allow for one missed ping.
	readWait  = 2 * time.Minute
	writeWait = 10 * time.Second
)

// ErrJoinRefused means the server would not let this user join the board.
// Reconnecting will not help.
var ErrJoinRefused = errors.New("board join refused")

var (
	errNotConnected = errors.New("not connected")
	errNotJoined    = errors.New("board not joined yet")
)

// Notifier is told that the board may have changed. *Reconciler implements it.
type Notifier interface {
	Notify()
}

// Subscriber holds a websocket session for one board and turns every event
// for it, and every (re)connect, into a Notify.
type Subscriber struct {
	url      string
	boardID  uuid.UUID
	notifier Notifier
	dialer   *websocket.Dialer
	onEvent  func(realtime.Event)
	log      *slog.Logger
	minDelay time.Duration
	maxDelay time.Duration

	mu     sync.Mutex
	conn   *websocket.Conn
	joined bool
}

type SubscriberOption func(*Subscriber)

// WithEventHandler observes each decoded event for the board after Notify.
func WithEventHandler(fn func(realtime.Event)) SubscriberOption {
	return func(s *Subscriber) { s.onEvent = fn }
}

func WithReconnectDelay(initial, ceiling time.Duration) SubscriberOption {
	return func(s *Subscriber) { s.minDelay, s.maxDelay = initial, ceiling }
}

func WithSubscriberLogger(l *slog.Logger) SubscriberOption {
	return func(s *Subscriber) { s.log = l }
}

// NewSubscriber dials url, which must already carry credentials (see
// apiclient.Client.WebsocketURL).
func NewSubscriber(url string, boardID uuid.UUID, notifier Notifier, opts ...SubscriberOption) *Subscriber {
	s := &Subscriber{
		url:      url,
		boardID:  boardID,
		notifier: notifier,
		dialer:   websocket.DefaultDialer,
		log:      slog.Default(),
		minDelay: minReconnectDelay,
		maxDelay: maxReconnectDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run keeps a session open until ctx is done or the join is refused.
func (s *Subscriber) Run(ctx context.Context) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.minDelay
	b.MaxInterval = s.maxDelay
	b.MaxElapsedTime = 0
	b.Reset()

	for {
		joined, err := s.session(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(err, ErrJoinRefused) {
			return err
		}
		if joined {
			b.Reset()
		}

		wait := b.NextBackOff()
		s.log.Warn("realtime connection lost, reconnecting", "board_id", s.boardID, "error", err, "retry_in", wait)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// session runs one connection. joined reports whether the board join was
// acknowledged before the connection ended.
func (s *Subscriber) session(ctx context.Context) (joined bool, err error) {
	conn, _, err := s.dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return false, fmt.Errorf("dial: %w", err)
	}
	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()

	done := make(chan struct{})
	defer func() {
		close(done)
		s.mu.Lock()
		s.conn, s.joined = nil, false
		s.mu.Unlock()
		conn.Close()
	}()
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	conn.SetReadDeadline(time.Now().Add(readWait))
	conn.SetPingHandler(func(data string) error {
		conn.SetReadDeadline(time.Now().Add(readWait))
		return conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(writeWait))
	})

	if err := s.write(realtime.ClientMessage{Type: realtime.MsgJoinBoard, BoardID: s.boardID}); err != nil {
		return false, err
	}

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return joined, err
		}
		conn.SetReadDeadline(time.Now().Add(readWait))

		var env realtime.Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			continue
		}
		ev, err := realtime.Decode(raw)
		if err != nil {
			s.log.Debug("skipping undecodable message", "error", err)
			continue
		}

		switch e := ev.(type) {
		case *realtime.Joined:
			if e.Group != realtime.BoardGroup(s.boardID) {
				continue
			}
			joined = true
			s.mu.Lock()
			s.joined = true
			s.mu.Unlock()
			// Anything may have changed while disconnected.
			s.notifier.Notify()
		case *realtime.ErrorMessage:
			if !joined {
				return false, fmt.Errorf("%w: %s", ErrJoinRefused, e.Message)
			}
			s.log.Warn("realtime server error", "board_id", s.boardID, "message", e.Message)
		case *realtime.Pong:
		default:
			if env.BoardID() != s.boardID {
				continue
			}
			s.notifier.Notify()
			if s.onEvent != nil {
				s.onEvent(ev)
			}
		}
	}
}

// Signal asks the server to forward a change hint to the board's other
// connections. Only card:moved, card:updated, list:reordered and
// list:updated are accepted.
func (s *Subscriber) Signal(_ context.Context, event string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.joined {
		return errNotJoined
	}
	return s.writeLocked(realtime.ClientMessage{Type: realtime.MsgRelay, BoardID: s.boardID, Event: event})
}

func (s *Subscriber) write(msg realtime.ClientMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(msg)
}

func (s *Subscriber) writeLocked(msg realtime.ClientMessage) error {
	if s.conn == nil {
		return errNotConnected
	}
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(msg)
}
