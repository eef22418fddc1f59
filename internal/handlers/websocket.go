package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Wizzel1/cuppl-sub000/internal/auth"
	"github.com/Wizzel1/cuppl-sub000/internal/websocket"
)

type WebSocketHandler struct {
	hub *websocket.Hub
}

func NewWebSocketHandler(hub *websocket.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	accountID, exists := auth.GetAccountID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not authenticated"})
		return
	}

	h.hub.ServeWS(c, accountID)
}

func (h *WebSocketHandler) GetOnlineAccounts(c *gin.Context) {
	if _, exists := auth.GetAccountID(c); !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not authenticated"})
		return
	}

	online := h.hub.GetOnlineAccounts()
	c.JSON(http.StatusOK, gin.H{"online_accounts": online})
}
