package realtime

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"boardsync/internal/observability"

	"github.com/google/uuid"
)

// Broadcaster is what mutation handlers use to announce committed changes.
type Broadcaster interface {
	ToBoard(ctx context.Context, boardID uuid.UUID, ev Event)
	ToUser(ctx context.Context, userID uuid.UUID, ev Event)
}

// Publisher carries encoded envelopes to every instance's hub. Without one
// the hub delivers to its own connections only.
type Publisher interface {
	Publish(ctx context.Context, group string, payload []byte) error
}

// Authorizer decides whether a user may join a board group.
type Authorizer interface {
	Authorize(ctx context.Context, boardID, userID uuid.UUID) error
}

func BoardGroup(id uuid.UUID) string { return "board-" + id.String() }
func UserGroup(id uuid.UUID) string  { return "user-" + id.String() }

func boardFromGroup(group string) (uuid.UUID, bool) {
	rest, ok := strings.CutPrefix(group, "board-")
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(rest)
	return id, err == nil
}

// Hub is the in-memory directory of connections and the groups they joined.
// It is rebuilt from live connections and never persisted.
type Hub struct {
	mu        sync.RWMutex
	clients   map[*Client]struct{}
	groups    map[string]map[*Client]struct{}
	authz     Authorizer
	publisher Publisher
	sendBuf   int
	log       *slog.Logger
}

type HubOption func(*Hub)

func WithPublisher(p Publisher) HubOption {
	return func(h *Hub) { h.publisher = p }
}

func WithLogger(l *slog.Logger) HubOption {
	return func(h *Hub) { h.log = l }
}

// WithSendBuffer sets the per-connection outbound queue length.
func WithSendBuffer(n int) HubOption {
	return func(h *Hub) {
		if n > 0 {
			h.sendBuf = n
		}
	}
}

func NewHub(authz Authorizer, opts ...HubOption) *Hub {
	h := &Hub{
		clients: make(map[*Client]struct{}),
		groups:  make(map[string]map[*Client]struct{}),
		authz:   authz,
		sendBuf: 256,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Hub) ToBoard(ctx context.Context, boardID uuid.UUID, ev Event) {
	h.Broadcast(ctx, BoardGroup(boardID), ev)
}

func (h *Hub) ToUser(ctx context.Context, userID uuid.UUID, ev Event) {
	h.Broadcast(ctx, UserGroup(userID), ev)
}

// Broadcast encodes ev and sends it to every connection in group, through the
// publisher when one is configured. Delivery is best effort.
func (h *Hub) Broadcast(ctx context.Context, group string, ev Event) {
	payload, err := Encode(ev)
	if err != nil {
		h.log.Error("failed to encode event", "event", ev.EventName(), "error", err)
		return
	}
	observability.RealtimeEventsTotal.WithLabelValues(ev.EventName()).Inc()

	if h.publisher != nil {
		err := h.publisher.Publish(ctx, group, payload)
		if err == nil {
			return
		}
		h.log.Warn("relay publish failed, delivering locally", "group", group, "error", err)
	}
	h.Deliver(group, payload)
}

// Deliver queues payload on every local connection in group. Connections
// whose queue is full are dropped; they resync when they reconnect.
func (h *Hub) Deliver(group string, payload []byte) {
	var slow []*Client
	h.mu.RLock()
	for c := range h.groups[group] {
		select {
		case c.send <- payload:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.log.Warn("client send buffer full, dropping connection", "user_id", c.userID)
		observability.RealtimeDroppedClients.Inc()
		h.unregister(c)
	}
}

// Present returns the distinct users connected to the board on this instance.
func (h *Hub) Present(boardID uuid.UUID) []uuid.UUID {
	h.mu.RLock()
	seen := make(map[uuid.UUID]struct{})
	for c := range h.groups[BoardGroup(boardID)] {
		seen[c.userID] = struct{}{}
	}
	h.mu.RUnlock()

	users := make([]uuid.UUID, 0, len(seen))
	for id := range seen {
		users = append(users, id)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].String() < users[j].String() })
	return users
}

// ConnectionCount returns the number of open connections on this instance.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	observability.RealtimeConnections.Inc()
	h.log.Debug("client connected", "user_id", c.userID)
}

// unregister removes c from every group and closes its queue. It announces
// user:left on each board the connection had joined. Safe to call twice.
func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	var boards []uuid.UUID
	for group := range c.groups {
		if id, ok := boardFromGroup(group); ok {
			boards = append(boards, id)
		}
		h.leaveLocked(c, group)
	}
	c.closed = true
	close(c.send)
	h.mu.Unlock()

	observability.RealtimeConnections.Dec()
	h.log.Debug("client disconnected", "user_id", c.userID)
	for _, b := range boards {
		h.ToBoard(context.Background(), b, UserLeft{BoardID: b, UserID: c.userID})
	}
}

func (h *Hub) join(c *Client, group string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c.closed {
		return false
	}
	members, ok := h.groups[group]
	if !ok {
		members = make(map[*Client]struct{})
		h.groups[group] = members
	}
	members[c] = struct{}{}
	c.groups[group] = struct{}{}
	return true
}

func (h *Hub) leave(c *Client, group string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := c.groups[group]
	h.leaveLocked(c, group)
	return ok
}

func (h *Hub) leaveLocked(c *Client, group string) {
	delete(c.groups, group)
	if members, ok := h.groups[group]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.groups, group)
		}
	}
}

// inGroup reports whether c has joined group.
func (h *Hub) inGroup(c *Client, group string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := c.groups[group]
	return ok
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()
	for _, c := range clients {
		h.unregister(c)
	}
}
