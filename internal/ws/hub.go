// Package ws pushes workflow snapshots to websocket subscribers. Every
// dispatch cycle ends with a snapshot broadcast so connected clients track
// loading counters, selection counts and errors without polling.
package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/cx-tal-miterani/fare-workflow/internal/engine"
)

// MessageType represents the type of WebSocket message
type MessageType string

const (
	MessageTypeSnapshot MessageType = "snapshot"
	MessageTypeBooking  MessageType = "booking_committed"
)

// Message represents a WebSocket message
type Message struct {
	Type      MessageType      `json:"type"`
	Snapshot  *engine.Snapshot `json:"snapshot,omitempty"`
	Message   string           `json:"message,omitempty"`
	Timestamp int64            `json:"timestamp"`
}

// Hub manages WebSocket connections
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
	mu         sync.RWMutex
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 256),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			log.Printf("WebSocket: Client registered (total: %d)", len(h.clients))
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Printf("WebSocket: Client unregistered (remaining: %d)", len(h.clients))
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			data, err := json.Marshal(message)
			if err != nil {
				log.Printf("WebSocket: Failed to marshal message: %v", err)
				continue
			}

			h.mu.RLock()
			clients := make([]*Client, 0, len(h.clients))
			for client := range h.clients {
				clients = append(clients, client)
			}
			h.mu.RUnlock()

			for _, client := range clients {
				select {
				case client.send <- data:
				default:
					h.mu.Lock()
					delete(h.clients, client)
					close(client.send)
					h.mu.Unlock()
				}
			}
		}
	}
}

// Publish broadcasts an engine snapshot to every subscriber. It satisfies
// the engine's Notifier interface.
func (h *Hub) Publish(snapshot engine.Snapshot) {
	msg := &Message{
		Type:      MessageTypeSnapshot,
		Snapshot:  &snapshot,
		Timestamp: time.Now().UnixMilli(),
	}
	select {
	case h.broadcast <- msg:
	default:
		log.Printf("WebSocket: Broadcast buffer full, dropping snapshot")
	}
}

// BroadcastBookingCommitted notifies clients that a booking was committed
func (h *Hub) BroadcastBookingCommitted(recordLocator string) {
	msg := &Message{
		Type:      MessageTypeBooking,
		Message:   "Booking committed: " + recordLocator,
		Timestamp: time.Now().UnixMilli(),
	}
	h.broadcast <- msg
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
