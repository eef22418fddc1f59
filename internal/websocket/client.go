package websocket

import (
	"encoding/json"
	"log/slog"
	"time"

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
	maxMessageSize = 512
)

// ClientMessage represents incoming messages from clients
type ClientMessage struct {
	Type   string      `json:"type"`
	ListID string      `json:"list_id,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}

// Client message types
const (
	ClientMessageSubscribe   = "subscribe"
	ClientMessageUnsubscribe = "unsubscribe"
	ClientMessagePing        = "ping"
)

// readPump pumps messages from the websocket connection to the hub
func (c *Client) readPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, messageBytes, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("websocket read error", "error", err)
			}
			break
		}

		var clientMessage ClientMessage
		if err := json.Unmarshal(messageBytes, &clientMessage); err != nil {
			slog.Warn("failed to unmarshal client message", "error", err)
			continue
		}

		c.handleClientMessage(clientMessage)
	}
}

// writePump pumps messages from the hub to the websocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			message.Time = time.Now().Unix()
			messageBytes, err := json.Marshal(message)
			if err != nil {
				slog.Warn("failed to marshal message", "error", err)
				continue
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, messageBytes); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleClientMessage processes incoming messages from the client
func (c *Client) handleClientMessage(message ClientMessage) {
	switch message.Type {
	case ClientMessageSubscribe:
		if message.ListID != "" {
			c.SubscribeToList(message.ListID)
			c.reply(Message{
				Type:   "subscribed",
				ListID: message.ListID,
				Data:   map[string]interface{}{"list_id": message.ListID, "status": "subscribed"},
			})
		}

	case ClientMessageUnsubscribe:
		if message.ListID != "" {
			c.UnsubscribeFromList(message.ListID)
			c.reply(Message{
				Type:   "unsubscribed",
				ListID: message.ListID,
				Data:   map[string]interface{}{"list_id": message.ListID, "status": "unsubscribed"},
			})
		}

	case ClientMessagePing:
		c.reply(Message{
			Type: "pong",
			Data: map[string]interface{}{"timestamp": time.Now().Unix()},
		})

	default:
		slog.Debug("unknown client message type", "type", message.Type)
	}
}

// reply drops the message when the client's send buffer is full. Closing
// the channel here would race the hub's unregister path, which also closes
// it.
func (c *Client) reply(message Message) {
	select {
	case c.Send <- message:
	default:
		slog.Debug("dropping reply, client send buffer full", "client_id", c.ID)
	}
}
