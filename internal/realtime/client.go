package realtime

import (
	"encoding/json"
	"strings"

	"github.com/gorilla/websocket"
)

// Chat protocol events. Every frame is a JSON envelope with an event
// name and an event-specific payload.
const (
	EventAuthenticate = "authenticate"
	EventAuthSuccess  = "authSuccess"
	EventAuthError    = "authError"
	EventJoinChat     = "joinChat"
	EventSendMessage  = "sendMessage"
	EventNewMessage   = "newMessage"
	EventMessageError = "messageError"
	EventTyping       = "typing"
	EventUserTyping   = "userTyping"
)

type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID string
	room   string
}

func (c *Client) readLoop() {
	defer c.conn.Close()
	c.conn.SetReadLimit(64 * 1024)

	for {
		var env Envelope
		if err := c.conn.ReadJSON(&env); err != nil {
			return
		}

		if env.Event == EventAuthenticate {
			c.handleAuthenticate(env.Data)
			continue
		}

		// Everything else requires a bound identity.
		if c.userID == "" {
			c.sendEvent(EventAuthError, map[string]string{"message": "Authentication required"})
			continue
		}

		switch env.Event {
		case EventJoinChat:
			c.handleJoinChat(env.Data)
		case EventSendMessage:
			c.handleSendMessage(env.Data)
		case EventTyping:
			c.handleTyping(env.Data)
		}
	}
}

func (c *Client) writeLoop() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// handleAuthenticate binds the connection to the token's user. A second
// authenticate frame rebinds the connection to the new identity.
func (c *Client) handleAuthenticate(data json.RawMessage) {
	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.Token == "" {
		c.sendEvent(EventAuthError, map[string]string{"message": "Token is required"})
		return
	}

	user, err := c.hub.auth.GetUserFromToken(payload.Token)
	if err != nil {
		c.sendEvent(EventAuthError, map[string]string{"message": "Invalid token"})
		return
	}

	c.hub.register(c, user.UserID)
	c.sendEvent(EventAuthSuccess, map[string]string{"userId": user.UserID})
}

// handleJoinChat takes the canonical room key. Both participants compute
// the same key on their side; the server only checks that the caller is
// one of the two ids in it.
func (c *Client) handleJoinChat(data json.RawMessage) {
	var payload struct {
		ChatID string `json:"chatId"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.ChatID == "" {
		c.sendEvent(EventMessageError, map[string]string{"message": "Chat id is required"})
		return
	}

	parts := strings.Split(payload.ChatID, "_")
	if len(parts) != 2 || RoomKey(parts[0], parts[1]) != payload.ChatID {
		c.sendEvent(EventMessageError, map[string]string{"message": "Invalid chat id"})
		return
	}
	if parts[0] != c.userID && parts[1] != c.userID {
		c.sendEvent(EventMessageError, map[string]string{"message": "Not a participant of this chat"})
		return
	}

	c.hub.joinRoom(c, payload.ChatID)
}

// handleSendMessage persists the message first and only then fans it
// out, so nothing is broadcast that did not reach the database.
func (c *Client) handleSendMessage(data json.RawMessage) {
	var payload struct {
		ReceiverID string `json:"receiverId"`
		Message    string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.ReceiverID == "" {
		c.sendEvent(EventMessageError, map[string]string{"message": "Receiver and message are required"})
		return
	}

	msg, err := c.hub.chat.Send(c.hub.baseCtx, c.userID, payload.ReceiverID, payload.Message)
	if err != nil {
		c.sendEvent(EventMessageError, map[string]string{"message": "Could not send message"})
		return
	}

	out, err := json.Marshal(Envelope{Event: EventNewMessage, Data: mustMarshal(msg)})
	if err != nil {
		return
	}

	// Fan-out is room-scoped. A receiver who has not joined the room
	// sees the message through history and unread counts instead.
	c.hub.broadcastRoom(RoomKey(c.userID, payload.ReceiverID), out)
}

func (c *Client) handleTyping(data json.RawMessage) {
	var payload struct {
		ReceiverID string `json:"receiverId"`
		IsTyping   bool   `json:"isTyping"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.ReceiverID == "" {
		return
	}

	out := map[string]interface{}{
		"userId":   c.userID,
		"isTyping": payload.IsTyping,
	}
	payloadBytes, err := json.Marshal(Envelope{Event: EventUserTyping, Data: mustMarshal(out)})
	if err != nil {
		return
	}
	c.hub.sendToUser(payload.ReceiverID, payloadBytes)
}

func (c *Client) sendEvent(event string, data interface{}) {
	payload, err := json.Marshal(Envelope{Event: event, Data: mustMarshal(data)})
	if err != nil {
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}

func mustMarshal(v interface{}) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage(`null`)
	}
	return b
}
