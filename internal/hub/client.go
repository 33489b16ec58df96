package hub

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// writeWait is the max time allowed to write one message to a subscriber.
	writeWait = 10 * time.Second
	// pongWait is how long a connection may stay silent before it is
	// considered dead; pings go out every pingPeriod.
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	// maxMessageSize bounds inbound messages; telemetry events are tiny.
	maxMessageSize = 4096
	// sendBuffer is the per-subscriber outbound queue. A subscriber that
	// falls this far behind is dropped.
	sendBuffer = 256
)

// Client is one websocket connection attached to the hub, producer or
// subscriber. A single writer goroutine per client keeps delivery FIFO
// for that subscriber.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// readPump reads inbound envelopes and dispatches them to the hub's named
// handlers. Each message is handled as an independent task; handler
// errors are logged and do not end the connection.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
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
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("hub: read: %v", err)
			}
			return
		}
		var ev Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			log.Printf("hub: bad inbound message: %v", err)
			continue
		}
		fn, ok := c.hub.handlers[ev.Name]
		if !ok {
			continue
		}
		if err := fn(context.Background(), ev.Data); err != nil {
			log.Printf("hub: %s handler: %v", ev.Name, err)
		}
	}
}

// writePump writes broadcasts to the connection and keeps it alive with
// pings. One writer per connection; the hub closes c.send to end it.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
