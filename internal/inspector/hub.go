package inspector

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/viewslot/pkg/scenario"
)

// MessageType identifies a websocket message.
type MessageType string

const (
	MessageSnapshot MessageType = "snapshot"
	MessageDone     MessageType = "done"
	MessageError    MessageType = "error"
)

// Message is sent to inspector clients.
type Message struct {
	Type     MessageType        `json:"type"`
	Snapshot *scenario.Snapshot `json:"snapshot,omitempty"`
	Error    string             `json:"error,omitempty"`
}

// Hub manages websocket clients and broadcasts scenario progress.
type Hub struct {
	clients  map[*websocket.Conn]bool
	mu       sync.RWMutex
	writeMu  sync.Mutex
	last     []byte
	upgrader websocket.Upgrader
}

// NewHub creates a hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // local tool
			},
		},
	}
}

// HandleWebSocket upgrades the connection and keeps it registered until the
// client disconnects.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}

	h.writeMu.Lock()
	h.mu.Lock()
	h.clients[conn] = true
	last := h.last
	h.mu.Unlock()
	if last != nil {
		conn.WriteMessage(websocket.TextMessage, last)
	}
	h.writeMu.Unlock()

	// Keep connection alive until client disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

// Publish sends a step snapshot to every client.
func (h *Hub) Publish(s scenario.Snapshot) {
	h.broadcast(Message{Type: MessageSnapshot, Snapshot: &s}, true)
}

// Done tells clients the scenario finished. A non-nil err is reported as a
// failure.
func (h *Hub) Done(err error) {
	if err != nil {
		h.broadcast(Message{Type: MessageError, Error: err.Error()}, false)
		return
	}
	h.broadcast(Message{Type: MessageDone}, false)
}

// broadcast sends a message to all connected clients. Snapshots are kept for
// clients that connect later.
func (h *Hub) broadcast(msg Message, keep bool) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	h.mu.Lock()
	if keep {
		h.last = data
	}
	clients := make([]*websocket.Conn, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.Unlock()

	for _, client := range clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			h.mu.Lock()
			delete(h.clients, client)
			h.mu.Unlock()
			client.Close()
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close closes all client connections.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		client.Close()
		delete(h.clients, client)
	}
}
