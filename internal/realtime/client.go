package realtime

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 64 * 1024

	authorizeTimeout = 5 * time.Second
)

// Client message types.
const (
	MsgJoinBoard  = "join-board"
	MsgLeaveBoard = "leave-board"
	MsgJoinUser   = "join-user"
	MsgPing       = "ping"
	MsgRelay      = "relay"
)

// ClientMessage is the wire form of every client-to-server message.
type ClientMessage struct {
	Type    string    `json:"type"`
	BoardID uuid.UUID `json:"boardId"`
	UserID  uuid.UUID `json:"userId"`
	Event   string    `json:"event,omitempty"`
}

// Client is one websocket connection. groups and closed are guarded by hub.mu.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID uuid.UUID
	groups map[string]struct{}
	closed bool
}

// Serve registers conn for userID and pumps messages until the connection
// ends. It blocks for the life of the connection.
func (h *Hub) Serve(conn *websocket.Conn, userID uuid.UUID) {
	c := &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, h.sendBuf),
		userID: userID,
		groups: make(map[string]struct{}),
	}
	h.register(c)
	go c.writePump()
	c.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				c.hub.log.Warn("websocket read failed", "user_id", c.userID, "error", err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.reply(ErrorMessage{Message: "malformed message"})
			continue
		}
		c.handle(msg)
	}
}

func (c *Client) handle(msg ClientMessage) {
	switch msg.Type {
	case MsgPing:
		c.reply(Pong{Timestamp: time.Now().UTC().Format(time.RFC3339)})

	case MsgJoinBoard:
		if msg.BoardID == uuid.Nil {
			c.reply(ErrorMessage{Message: "boardId is required"})
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), authorizeTimeout)
		err := c.hub.authz.Authorize(ctx, msg.BoardID, c.userID)
		cancel()
		if err != nil {
			c.hub.log.Info("join-board refused", "user_id", c.userID, "board_id", msg.BoardID, "error", err)
			c.reply(ErrorMessage{Message: "cannot join board"})
			return
		}
		group := BoardGroup(msg.BoardID)
		if c.hub.join(c, group) {
			c.reply(Joined{Group: group})
			c.hub.ToBoard(context.Background(), msg.BoardID, UserJoined{BoardID: msg.BoardID, UserID: c.userID})
		}

	case MsgLeaveBoard:
		if c.hub.leave(c, BoardGroup(msg.BoardID)) {
			c.hub.ToBoard(context.Background(), msg.BoardID, UserLeft{BoardID: msg.BoardID, UserID: c.userID})
		}

	case MsgJoinUser:
		if msg.UserID != uuid.Nil && msg.UserID != c.userID {
			c.reply(ErrorMessage{Message: "cannot join another user's channel"})
			return
		}
		group := UserGroup(c.userID)
		if c.hub.join(c, group) {
			c.reply(Joined{Group: group})
		}

	case MsgRelay:
		build, ok := relayable[msg.Event]
		if !ok {
			c.reply(ErrorMessage{Message: "event cannot be relayed"})
			return
		}
		if !c.hub.inGroup(c, BoardGroup(msg.BoardID)) {
			c.reply(ErrorMessage{Message: "join the board first"})
			return
		}
		c.hub.ToBoard(context.Background(), msg.BoardID, build(msg.BoardID, c.userID))

	default:
		c.reply(ErrorMessage{Message: "unknown message type"})
	}
}

// reply queues ev for this connection only. Dropped if the queue is full.
func (c *Client) reply(ev Event) {
	payload, err := Encode(ev)
	if err != nil {
		return
	}
	c.hub.mu.RLock()
	defer c.hub.mu.RUnlock()
	if c.closed {
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
