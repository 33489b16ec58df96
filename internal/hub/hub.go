// Package hub implements the real-time telemetry channel: a websocket hub
// that fans named JSON events out to every connected subscriber and
// dispatches inbound named events to registered handlers.
//
// Delivery is best-effort. A slow subscriber is disconnected rather than
// allowed to block the hub; events from one sender reach a given
// subscriber in send order.
package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Event is the wire envelope for both directions.
type Event struct {
	Name string          `json:"event"`
	Data json.RawMessage `json:"data"`
}

// Handler processes one inbound named event from a connection. Returned
// errors are logged by the dispatch loop, not sent back to the producer.
type Handler func(ctx context.Context, data json.RawMessage) error

// Hub tracks subscriber membership and fans broadcasts out to all of
// them. It owns connection membership only, not event semantics.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	clients    map[*Client]bool

	handlers map[string]Handler
	upgrader websocket.Upgrader

	closeOnce sync.Once
	done      chan struct{}
}

// New returns a hub that accepts websocket upgrades from the given
// browser origin. Requests without an Origin header (sensor firmware,
// CLI producers) are always accepted. Call Run before serving.
func New(allowedOrigin string) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		clients:    make(map[*Client]bool),
		handlers:   make(map[string]Handler),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origin == allowedOrigin
			},
		},
		done: make(chan struct{}),
	}
}

// HandleEvent registers the handler for an inbound event name, applied to
// every connection. Must be called before Run.
func (h *Hub) HandleEvent(name string, fn Handler) {
	h.handlers[name] = fn
}

// Run processes registrations and broadcasts until Close is called.
// Call in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Subscriber can't keep up; drop it so the
					// others keep receiving.
					delete(h.clients, c)
					close(c.send)
				}
			}
		case <-h.done:
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			return
		}
	}
}

// Broadcast sends one named event to every currently connected
// subscriber. Fire-and-forget: no delivery guarantee to disconnected or
// slow subscribers. Returns an error only when the payload cannot be
// serialized or the hub is closed.
func (h *Hub) Broadcast(name string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("hub: marshal %s payload: %w", name, err)
	}
	msg, err := json.Marshal(Event{Name: name, Data: payload})
	if err != nil {
		return fmt.Errorf("hub: marshal %s event: %w", name, err)
	}
	select {
	case <-h.done:
		return fmt.Errorf("hub: closed")
	default:
	}
	select {
	case h.broadcast <- msg:
		return nil
	case <-h.done:
		return fmt.Errorf("hub: closed")
	}
}

// ServeWS upgrades the HTTP request to a websocket connection and attaches
// it to the hub.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		return
	}
	c := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}
	go c.writePump()
	go c.readPump()
}

// Close disconnects all subscribers and stops the hub. Safe to call more
// than once.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}
