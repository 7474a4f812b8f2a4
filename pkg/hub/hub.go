// Package hub provides a thread-safe websocket broadcast hub using the
// channel-based fan-out pattern. The animation daemon uses one hub to
// push frame snapshots to every connected viewer.
package hub

import (
	"encoding/json"
	"sync"

	"github.com/BlackRoad-Interactive/blackroad-animation-controller/internal/log"
)

// Hub maintains the set of active clients and broadcasts JSON payloads
// to them.
type Hub struct {
	// Name for logging
	name string

	// Registered clients
	clients map[*Client]bool

	// Inbound payloads to broadcast
	broadcast chan []byte

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Guards the clients map for reads from outside the run loop
	mu sync.RWMutex
}

// New creates a new Hub.
func New(name string) *Hub {
	return &Hub{
		name:       name,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's main loop. This should be called in a goroutine;
// it runs for the lifetime of the process.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			log.Info("client connected", "hub", h.name, "client", client.ID(), "total", count)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			log.Info("client disconnected", "hub", h.name, "client", client.ID(), "remaining", count)

		case payload := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- payload:
				default:
					// The client's buffer is full; it cannot keep up
					// with the frame rate, so drop it.
					close(client.send)
					delete(h.clients, client)
					log.Warn("dropped slow client", "hub", h.name, "client", client.ID())
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast queues a pre-encoded JSON payload for every client. If the
// hub cannot keep up the payload is dropped; frames are ephemeral.
func (h *Hub) Broadcast(payload []byte) {
	select {
	case h.broadcast <- payload:
	default:
		log.Warn("broadcast channel full, dropping payload", "hub", h.name)
	}
}

// BroadcastJSON encodes v and broadcasts it.
func (h *Hub) BroadcastJSON(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	h.Broadcast(data)
	return nil
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
