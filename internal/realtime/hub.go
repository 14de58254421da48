package realtime

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"feedgram/internal/config"
	"feedgram/internal/service"
)

// Hub tracks authenticated chat connections. The registry maps a user id
// to their most recent connection; rooms group the two participants of an
// open conversation.
type Hub struct {
	mu      sync.Mutex
	clients map[string]*Client
	rooms   map[string]map[*Client]struct{}

	auth    service.AuthService
	chat    service.ChatService
	baseCtx context.Context

	upgrader websocket.Upgrader
}

func NewHub(auth service.AuthService, chat service.ChatService, cfg *config.Config) *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		rooms:   make(map[string]map[*Client]struct{}),
		auth:    auth,
		chat:    chat,
		baseCtx: context.Background(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || cfg.AllowedOrigin == "*" || origin == cfg.AllowedOrigin
			},
		},
	}
}

// RoomKey builds the canonical room name for a pair of users. Both
// participants derive the same key regardless of argument order.
func RoomKey(userA, userB string) string {
	ids := []string{userA, userB}
	sort.Strings(ids)
	return strings.Join(ids, "_")
}

func (h *Hub) HandleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	c := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 16),
	}

	go c.writeLoop()
	c.readLoop()
	h.unregister(c)
}

// register binds a connection to a user id. A later connection for the
// same user replaces the earlier one in the registry; the replaced
// connection keeps its room memberships until it disconnects. Rebinding
// a live connection to a new identity prunes its old registry entry so
// the registry never holds a stale mapping.
func (h *Hub) register(c *Client, userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c.userID != "" && c.userID != userID && h.clients[c.userID] == c {
		delete(h.clients, c.userID)
	}
	c.userID = userID
	h.clients[userID] = c
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c.userID != "" && h.clients[c.userID] == c {
		delete(h.clients, c.userID)
	}
	if c.room != "" {
		h.leaveRoomLocked(c, c.room)
	}
	close(c.send)
}

// joinRoom moves the client into the given room, leaving the previous
// one. A client is in at most one conversation room at a time.
func (h *Hub) joinRoom(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c.room == room {
		return
	}
	if c.room != "" {
		h.leaveRoomLocked(c, c.room)
	}

	members := h.rooms[room]
	if members == nil {
		members = make(map[*Client]struct{})
		h.rooms[room] = members
	}
	members[c] = struct{}{}
	c.room = room
}

func (h *Hub) leaveRoomLocked(c *Client, room string) {
	if members, ok := h.rooms[room]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	c.room = ""
}

// broadcastRoom delivers a payload to every member of the room. A member
// whose send buffer is full is dropped from the room.
func (h *Hub) broadcastRoom(room string, payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for member := range h.rooms[room] {
		select {
		case member.send <- payload:
		default:
			h.leaveRoomLocked(member, room)
		}
	}
}

// sendToUser delivers a payload to the user's registered connection, if
// any. Used only for typing indicators; message fan-out is room-scoped.
func (h *Hub) sendToUser(userID string, payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clients[userID]
	if !ok {
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}
