// Package realtime fans board events out to websocket connections grouped by
// board and by user. Events are change notifications: receivers refetch the
// board instead of applying payloads.
package realtime

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Event is one named notification. Each event name has its own type.
type Event interface {
	EventName() string
}

// Envelope is the wire form of every server-to-client message.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type CardCreated struct {
	BoardID uuid.UUID `json:"boardId"`
	CardID  uuid.UUID `json:"cardId"`
	ListID  uuid.UUID `json:"listId"`
}

type CardUpdated struct {
	BoardID uuid.UUID `json:"boardId"`
	CardID  uuid.UUID `json:"cardId"`
	UserID  uuid.UUID `json:"userId"`
}

type CardMoved struct {
	BoardID    uuid.UUID `json:"boardId"`
	CardID     uuid.UUID `json:"cardId"`
	FromListID uuid.UUID `json:"fromList"`
	ToListID   uuid.UUID `json:"toList"`
	Position   int       `json:"position"`
	UserID     uuid.UUID `json:"userId"`
}

type CardDeleted struct {
	BoardID uuid.UUID `json:"boardId"`
	CardID  uuid.UUID `json:"cardId"`
	ListID  uuid.UUID `json:"listId"`
}

type ListCreated struct {
	BoardID uuid.UUID `json:"boardId"`
	ListID  uuid.UUID `json:"listId"`
}

type ListUpdated struct {
	BoardID uuid.UUID `json:"boardId"`
	ListID  uuid.UUID `json:"listId"`
	UserID  uuid.UUID `json:"userId"`
}

type ListsReordered struct {
	BoardID uuid.UUID   `json:"boardId"`
	ListIDs []uuid.UUID `json:"lists"`
	UserID  uuid.UUID   `json:"userId"`
}

type ListDeleted struct {
	BoardID uuid.UUID `json:"boardId"`
	ListID  uuid.UUID `json:"listId"`
}

type BoardCreated struct {
	BoardID uuid.UUID `json:"boardId"`
}

type BoardUpdated struct {
	BoardID uuid.UUID `json:"boardId"`
}

type BoardDeleted struct {
	BoardID uuid.UUID `json:"boardId"`
}

type ConnectorCreated struct {
	BoardID     uuid.UUID `json:"boardId"`
	ConnectorID uuid.UUID `json:"connectorId"`
}

type ConnectorUpdated struct {
	BoardID     uuid.UUID `json:"boardId"`
	ConnectorID uuid.UUID `json:"connectorId"`
}

type ConnectorDeleted struct {
	BoardID     uuid.UUID `json:"boardId"`
	ConnectorID uuid.UUID `json:"connectorId"`
}

type UserJoined struct {
	BoardID uuid.UUID `json:"boardId"`
	UserID  uuid.UUID `json:"userId"`
}

type UserLeft struct {
	BoardID uuid.UUID `json:"boardId"`
	UserID  uuid.UUID `json:"userId"`
}

// Joined acknowledges a join-board or join-user request to the caller only.
type Joined struct {
	Group string `json:"group"`
}

type Pong struct {
	Timestamp string `json:"timestamp"`
}

// ErrorMessage reports a rejected client message to the caller only.
type ErrorMessage struct {
	Message string `json:"message"`
}

func (CardCreated) EventName() string      { return "card:created" }
func (CardUpdated) EventName() string      { return "card:updated" }
func (CardMoved) EventName() string        { return "card:moved" }
func (CardDeleted) EventName() string      { return "card:deleted" }
func (ListCreated) EventName() string      { return "list:created" }
func (ListUpdated) EventName() string      { return "list:updated" }
func (ListsReordered) EventName() string   { return "list:reordered" }
func (ListDeleted) EventName() string      { return "list:deleted" }
func (BoardCreated) EventName() string     { return "board:created" }
func (BoardUpdated) EventName() string     { return "board:updated" }
func (BoardDeleted) EventName() string     { return "board:deleted" }
func (ConnectorCreated) EventName() string { return "connector:created" }
func (ConnectorUpdated) EventName() string { return "connector:updated" }
func (ConnectorDeleted) EventName() string { return "connector:deleted" }
func (UserJoined) EventName() string       { return "user:joined" }
func (UserLeft) EventName() string         { return "user:left" }
func (Joined) EventName() string           { return "joined" }
func (Pong) EventName() string             { return "pong" }
func (ErrorMessage) EventName() string     { return "error" }

var registry = map[string]func() Event{
	"card:created":      func() Event { return &CardCreated{} },
	"card:updated":      func() Event { return &CardUpdated{} },
	"card:moved":        func() Event { return &CardMoved{} },
	"card:deleted":      func() Event { return &CardDeleted{} },
	"list:created":      func() Event { return &ListCreated{} },
	"list:updated":      func() Event { return &ListUpdated{} },
	"list:reordered":    func() Event { return &ListsReordered{} },
	"list:deleted":      func() Event { return &ListDeleted{} },
	"board:created":     func() Event { return &BoardCreated{} },
	"board:updated":     func() Event { return &BoardUpdated{} },
	"board:deleted":     func() Event { return &BoardDeleted{} },
	"connector:created": func() Event { return &ConnectorCreated{} },
	"connector:updated": func() Event { return &ConnectorUpdated{} },
	"connector:deleted": func() Event { return &ConnectorDeleted{} },
	"user:joined":       func() Event { return &UserJoined{} },
	"user:left":         func() Event { return &UserLeft{} },
	"joined":            func() Event { return &Joined{} },
	"pong":              func() Event { return &Pong{} },
	"error":             func() Event { return &ErrorMessage{} },
}

// relayable are the hints a client may ask the server to forward to its board.
var relayable = map[string]func(boardID, userID uuid.UUID) Event{
	"card:moved":     func(b, u uuid.UUID) Event { return CardMoved{BoardID: b, UserID: u} },
	"card:updated":   func(b, u uuid.UUID) Event { return CardUpdated{BoardID: b, UserID: u} },
	"list:reordered": func(b, u uuid.UUID) Event { return ListsReordered{BoardID: b, UserID: u} },
	"list:updated":   func(b, u uuid.UUID) Event { return ListUpdated{BoardID: b, UserID: u} },
}

// Encode wraps ev in an envelope.
func Encode(ev Event) ([]byte, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", ev.EventName(), err)
	}
	return json.Marshal(Envelope{Event: ev.EventName(), Data: data})
}

// Decode parses an envelope into its typed event. The returned value is a
// pointer to the event type, e.g. *CardMoved.
func Decode(raw []byte) (Event, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("failed to decode envelope: %w", err)
	}
	newEvent, ok := registry[env.Event]
	if !ok {
		return nil, fmt.Errorf("unknown event %q", env.Event)
	}
	ev := newEvent()
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, ev); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", env.Event, err)
		}
	}
	return ev, nil
}

// BoardID returns the boardId carried in the envelope data, or uuid.Nil.
func (e Envelope) BoardID() uuid.UUID {
	var probe struct {
		BoardID uuid.UUID `json:"boardId"`
	}
	if len(e.Data) == 0 || json.Unmarshal(e.Data, &probe) != nil {
		return uuid.Nil
	}
	return probe.BoardID
}
