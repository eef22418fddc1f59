package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Wizzel1/cuppl-sub000/internal/auth"
	"github.com/Wizzel1/cuppl-sub000/internal/models"
	"github.com/Wizzel1/cuppl-sub000/internal/ownership"
	"github.com/Wizzel1/cuppl-sub000/internal/store"
	"github.com/Wizzel1/cuppl-sub000/internal/visibility"
	"github.com/Wizzel1/cuppl-sub000/internal/websocket"
)

type ListHandler struct {
	store     store.Store
	hub       *websocket.Hub
	validator *validator.Validate
}

func NewListHandler(store store.Store, hub *websocket.Hub) *ListHandler {
	return &ListHandler{
		store:     store,
		hub:       hub,
		validator: validator.New(),
	}
}

// GetLists returns the couple's lists partitioned into the viewer's
// mine/partner's/shared buckets.
func (h *ListHandler) GetLists(c *gin.Context) {
	accountID, exists := auth.GetAccountID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not authenticated"})
		return
	}

	couple, err := h.store.GetCoupleByAccount(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err)
		return
	}

	lists, err := h.store.ListLists(c.Request.Context(), couple.ID, accountID)
	if err != nil {
		respondError(c, err)
		return
	}

	partnerID := ownership.PartnerAccountID(couple, accountID)
	buckets := ownership.PartitionLists(lists, accountID, partnerID)

	c.JSON(http.StatusOK, buckets)
}

func (h *ListHandler) CreateList(c *gin.Context) {
	accountID, exists := auth.GetAccountID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not authenticated"})
		return
	}

	var req models.CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	couple, err := h.store.GetCoupleByAccount(c.Request.Context(), accountID)
	if errors.Is(err, models.ErrNotFound) {
		respondError(c, models.ValidationErrorf("an active couple is required to create lists"))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	// The access scope is fixed here, once, for the list's whole life.
	scope := visibility.ScopeForCreation(req.IsHidden, couple.ID, accountID)

	list := models.List{
		Kind:            models.ListKind(req.Kind),
		Title:           req.Title,
		Emoji:           req.Emoji,
		BackgroundColor: req.BackgroundColor,
		CreatorAccID:    accountID,
		AssignedTo:      models.AssignmentTag(req.AssignedTo),
	}
	if err := h.store.CreateList(c.Request.Context(), &list, scope); err != nil {
		respondError(c, err)
		return
	}

	if !list.IsHidden {
		h.hub.BroadcastListUpdate(list.ID, list)
	}
	c.JSON(http.StatusCreated, list)
}

func (h *ListHandler) GetList(c *gin.Context) {
	accountID, exists := auth.GetAccountID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not authenticated"})
		return
	}

	list, err := h.store.GetList(c.Request.Context(), c.Param("id"), accountID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *ListHandler) UpdateList(c *gin.Context) {
	accountID, exists := auth.GetAccountID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not authenticated"})
		return
	}

	var req models.UpdateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := h.store.GetList(c.Request.Context(), c.Param("id"), accountID)
	if err != nil {
		respondError(c, err)
		return
	}

	// Hiddenness is wedded to the access scope and cannot be edited.
	if err := visibility.CheckEdit(list.IsHidden, req.IsHidden); err != nil {
		respondError(c, err)
		return
	}

	if req.Title != nil {
		list.Title = *req.Title
	}
	if req.Emoji != nil {
		list.Emoji = req.Emoji
	}
	if req.BackgroundColor != nil {
		list.BackgroundColor = req.BackgroundColor
	}
	if req.AssignedTo != nil {
		list.AssignedTo = models.AssignmentTag(*req.AssignedTo)
	}

	if err := h.store.UpdateList(c.Request.Context(), list); err != nil {
		respondError(c, err)
		return
	}

	if !list.IsHidden {
		h.hub.BroadcastListUpdate(list.ID, list)
	}
	c.JSON(http.StatusOK, list)
}

// DeleteList retires the list with a tombstone; nothing is removed from
// storage.
func (h *ListHandler) DeleteList(c *gin.Context) {
	accountID, exists := auth.GetAccountID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not authenticated"})
		return
	}

	list, err := h.store.GetList(c.Request.Context(), c.Param("id"), accountID)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.store.SoftDeleteList(c.Request.Context(), list.ID); err != nil {
		respondError(c, err)
		return
	}

	if !list.IsHidden {
		h.hub.BroadcastListUpdate(list.ID, gin.H{"id": list.ID, "deleted": true})
	}
	c.JSON(http.StatusOK, gin.H{"message": "List deleted successfully"})
}
