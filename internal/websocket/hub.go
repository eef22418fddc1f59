package websocket

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Message types for real-time updates
const (
	MessageTypeListUpdate   = "list_update"
	MessageTypeItemUpdate   = "item_update"
	MessageTypeCoupleUpdate = "couple_update"
	MessageTypeNotification = "notification"
	MessageTypeUserOnline   = "user_online"
	MessageTypeUserOffline  = "user_offline"
)

// Message is a frame pushed to connected devices.
type Message struct {
	Type      string      `json:"type"`
	AccountID string      `json:"account_id,omitempty"`
	ListID    string      `json:"list_id,omitempty"`
	Data      interface{} `json:"data"`
	Time      int64       `json:"time"`
}

// Client represents one connected device of an account.
type Client struct {
	ID        string
	AccountID string
	Hub       *Hub
	Conn      *websocket.Conn
	Send      chan Message
	Lists     map[string]bool // lists this client is subscribed to
	mutex     sync.RWMutex
}

// Hub maintains the set of active clients and broadcasts messages.
type Hub struct {
	// Registered clients by account ID
	Clients map[string]map[*Client]bool

	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan Message

	mutex sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[string]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan Message),
	}
}

// Run starts the hub's main loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.registerClient(client)
		case client := <-h.Unregister:
			h.unregisterClient(client)
		case message := <-h.Broadcast:
			h.broadcastMessage(message)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if h.Clients[client.AccountID] == nil {
		h.Clients[client.AccountID] = make(map[*Client]bool)
	}
	h.Clients[client.AccountID][client] = true

	slog.Debug("websocket client registered",
		"client_id", client.ID, "account_id", client.AccountID,
		"clients", len(h.Clients[client.AccountID]))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if clients, ok := h.Clients[client.AccountID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client.Send)

			if len(clients) == 0 {
				delete(h.Clients, client.AccountID)
			}

			slog.Debug("websocket client unregistered",
				"client_id", client.ID, "account_id", client.AccountID)
		}
	}
}

// broadcastMessage holds the write lock: the send paths evict clients with
// a full buffer, mutating the client map.
func (h *Hub) broadcastMessage(message Message) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	switch message.Type {
	case MessageTypeListUpdate, MessageTypeItemUpdate:
		h.sendToListSubscribers(message)
	case MessageTypeCoupleUpdate, MessageTypeNotification:
		h.sendToAccount(message.AccountID, message)
	}
}

func (h *Hub) sendToListSubscribers(message Message) {
	for accountID, clients := range h.Clients {
		for client := range clients {
			client.mutex.RLock()
			isSubscribed := client.Lists[message.ListID]
			client.mutex.RUnlock()

			if isSubscribed {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(clients, client)
					if len(clients) == 0 {
						delete(h.Clients, accountID)
					}
				}
			}
		}
	}
}

func (h *Hub) sendToAccount(accountID string, message Message) {
	if clients, ok := h.Clients[accountID]; ok {
		for client := range clients {
			select {
			case client.Send <- message:
			default:
				close(client.Send)
				delete(clients, client)
				if len(clients) == 0 {
					delete(h.Clients, accountID)
				}
			}
		}
	}
}

// BroadcastListUpdate sends a list update to subscribers.
func (h *Hub) BroadcastListUpdate(listID string, data interface{}) {
	h.Broadcast <- Message{Type: MessageTypeListUpdate, ListID: listID, Data: data}
}

// BroadcastItemUpdate sends an item update to list subscribers.
func (h *Hub) BroadcastItemUpdate(listID string, data interface{}) {
	h.Broadcast <- Message{Type: MessageTypeItemUpdate, ListID: listID, Data: data}
}

// BroadcastCoupleUpdate sends a couple-level change to each given account.
func (h *Hub) BroadcastCoupleUpdate(accountIDs []string, data interface{}) {
	for _, accountID := range accountIDs {
		h.Broadcast <- Message{Type: MessageTypeCoupleUpdate, AccountID: accountID, Data: data}
	}
}

// BroadcastNotification sends a notification to one account's devices.
func (h *Hub) BroadcastNotification(accountID string, data interface{}) {
	h.Broadcast <- Message{Type: MessageTypeNotification, AccountID: accountID, Data: data}
}

// GetOnlineAccounts returns the account IDs with at least one open socket.
func (h *Hub) GetOnlineAccounts() []string {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	var online []string
	for accountID := range h.Clients {
		online = append(online, accountID)
	}
	return online
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeWS upgrades the HTTP connection and attaches it to the hub.
func (h *Hub) ServeWS(c *gin.Context, accountID string) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Hub:       h,
		Conn:      conn,
		Send:      make(chan Message, 256),
		Lists:     make(map[string]bool),
	}

	h.Register <- client

	go client.writePump()
	go client.readPump()
}

// SubscribeToList subscribes a client to list updates.
func (c *Client) SubscribeToList(listID string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.Lists == nil {
		c.Lists = make(map[string]bool)
	}
	c.Lists[listID] = true
}

// UnsubscribeFromList unsubscribes a client from list updates.
func (c *Client) UnsubscribeFromList(listID string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.Lists != nil {
		delete(c.Lists, listID)
	}
}
