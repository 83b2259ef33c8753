package chat

import (
	"sync"

	"github.com/gorilla/websocket"
)

type client struct {
	conn *websocket.Conn
	// subscriptions holds conversation ids this connection listens to.
	subscriptions map[string]struct{}
}

// Hub tracks one websocket connection per user and the conversations it
// subscribed to. Every subscription taken on connect is released when
// the connection unregisters, no matter how it terminates.
type Hub struct {
	mu      sync.RWMutex
	clients map[int64]*client
}

func NewHub() *Hub {
	return &Hub{clients: make(map[int64]*client)}
}

// Register adds the user's connection, closing any previous one.
func (h *Hub) Register(userID int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old, exists := h.clients[userID]; exists && old.conn != nil {
		_ = old.conn.Close()
	}
	h.clients[userID] = &client{
		conn:          conn,
		subscriptions: make(map[string]struct{}),
	}
}

// Unregister closes the connection and drops all its subscriptions.
func (h *Hub) Unregister(userID int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	cl, exists := h.clients[userID]
	if !exists {
		return
	}
	// A reconnect may have replaced the entry already.
	if cl.conn != conn {
		return
	}
	if cl.conn != nil {
		_ = cl.conn.Close()
	}
	delete(h.clients, userID)
}

func (h *Hub) Subscribe(userID int64, conversationID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if cl, exists := h.clients[userID]; exists {
		cl.subscriptions[conversationID] = struct{}{}
	}
}

func (h *Hub) Unsubscribe(userID int64, conversationID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if cl, exists := h.clients[userID]; exists {
		delete(cl.subscriptions, conversationID)
	}
}

// SendToUser delivers to the user's connection if present. A write
// failure drops the connection.
func (h *Hub) SendToUser(userID int64, message any) bool {
	h.mu.RLock()
	cl, exists := h.clients[userID]
	h.mu.RUnlock()

	if !exists || cl.conn == nil {
		return false
	}
	if err := cl.conn.WriteJSON(message); err != nil {
		h.Unregister(userID, cl.conn)
		return false
	}
	return true
}

// BroadcastToConversation delivers to every connected subscriber of the
// conversation.
func (h *Hub) BroadcastToConversation(conversationID string, message any) {
	h.mu.RLock()
	var targets []int64
	for userID, cl := range h.clients {
		if _, ok := cl.subscriptions[conversationID]; ok {
			targets = append(targets, userID)
		}
	}
	h.mu.RUnlock()

	for _, userID := range targets {
		_ = h.SendToUser(userID, message)
	}
}

func (h *Hub) IsOnline(userID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	_, exists := h.clients[userID]
	return exists
}

func (h *Hub) OnlineCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for userID, cl := range h.clients {
		if cl.conn != nil {
			_ = cl.conn.Close()
		}
		delete(h.clients, userID)
	}
}
