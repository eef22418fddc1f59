package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Wizzel1/cuppl-sub000/internal/auth"
	"github.com/Wizzel1/cuppl-sub000/internal/models"
	"github.com/Wizzel1/cuppl-sub000/internal/ownership"
	"github.com/Wizzel1/cuppl-sub000/internal/recurrence"
	"github.com/Wizzel1/cuppl-sub000/internal/reminders"
	"github.com/Wizzel1/cuppl-sub000/internal/store"
	"github.com/Wizzel1/cuppl-sub000/internal/visibility"
	"github.com/Wizzel1/cuppl-sub000/internal/websocket"
)

type ItemHandler struct {
	store     store.Store
	engine    *recurrence.Engine
	scheduler *reminders.Scheduler
	hub       *websocket.Hub
	validator *validator.Validate
}

func NewItemHandler(store store.Store, engine *recurrence.Engine, scheduler *reminders.Scheduler, hub *websocket.Hub) *ItemHandler {
	return &ItemHandler{
		store:     store,
		engine:    engine,
		scheduler: scheduler,
		hub:       hub,
		validator: validator.New(),
	}
}

// GetItems returns the list's items partitioned into the viewer's
// mine/partner's/shared buckets.
func (h *ItemHandler) GetItems(c *gin.Context) {
	accountID, exists := auth.GetAccountID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not authenticated"})
		return
	}

	// Resolving the list also proves the viewer may see it.
	list, err := h.store.GetList(c.Request.Context(), c.Param("id"), accountID)
	if err != nil {
		respondError(c, err)
		return
	}

	items, err := h.store.ListItems(c.Request.Context(), list.ID, accountID)
	if err != nil {
		respondError(c, err)
		return
	}

	couple, err := h.store.GetCoupleByAccount(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err)
		return
	}

	partnerID := ownership.PartnerAccountID(couple, accountID)
	buckets := ownership.Partition(items, accountID, partnerID)

	c.JSON(http.StatusOK, buckets)
}

func (h *ItemHandler) CreateItem(c *gin.Context) {
	accountID, exists := auth.GetAccountID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not authenticated"})
		return
	}

	var req models.CreateItemRequest
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

	couple, err := h.store.GetCoupleByAccount(c.Request.Context(), accountID)
	if errors.Is(err, models.ErrNotFound) {
		respondError(c, models.ValidationErrorf("an active couple is required to create items"))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	scope := visibility.ScopeForCreation(req.IsHidden, couple.ID, accountID)

	item := models.Item{
		ListID:             list.ID,
		Title:              req.Title,
		Notes:              req.Notes,
		DueDate:            req.DueDate,
		CreatorAccID:       accountID,
		AssignedTo:         models.AssignmentTag(req.AssignedTo),
		AlertMinutes:       req.AlertMinutes,
		SecondAlertMinutes: req.SecondAlertMinutes,
	}
	if req.RecurringUnit != nil {
		unit := models.RecurrenceUnit(*req.RecurringUnit)
		item.RecurringUnit = &unit
	}

	if err := h.store.CreateItem(c.Request.Context(), &item, scope); err != nil {
		respondError(c, err)
		return
	}

	h.scheduler.Schedule(c.Request.Context(), &item)

	if !item.IsHidden {
		h.hub.BroadcastItemUpdate(item.ListID, item)
	}
	c.JSON(http.StatusCreated, item)
}

func (h *ItemHandler) UpdateItem(c *gin.Context) {
	accountID, exists := auth.GetAccountID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not authenticated"})
		return
	}

	var req models.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.store.GetItemForViewer(c.Request.Context(), c.Param("itemId"), accountID)
	if err != nil {
		respondError(c, err)
		return
	}

	// Hiddenness is wedded to the access scope and cannot be edited.
	if err := visibility.CheckEdit(item.IsHidden, req.IsHidden); err != nil {
		respondError(c, err)
		return
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Notes != nil {
		item.Notes = req.Notes
	}
	if req.DueDate != nil {
		item.DueDate = req.DueDate
	}
	if req.ClearDueDate {
		item.DueDate = nil
	}
	if req.AssignedTo != nil {
		item.AssignedTo = models.AssignmentTag(*req.AssignedTo)
	}
	if req.RecurringUnit != nil {
		unit := models.RecurrenceUnit(*req.RecurringUnit)
		item.RecurringUnit = &unit
	}
	if req.AlertMinutes != nil {
		item.AlertMinutes = req.AlertMinutes
	}
	if req.SecondAlertMinutes != nil {
		item.SecondAlertMinutes = req.SecondAlertMinutes
	}

	if err := h.store.UpdateItem(c.Request.Context(), item); err != nil {
		respondError(c, err)
		return
	}

	// Rebuild the reminders against the edited due date and offsets. A
	// completed item stays silent.
	if item.Completed {
		h.scheduler.Cancel(c.Request.Context(), item)
	} else {
		h.scheduler.Schedule(c.Request.Context(), item)
	}

	if !item.IsHidden {
		h.hub.BroadcastItemUpdate(item.ListID, item)
	}
	c.JSON(http.StatusOK, item)
}

// ToggleItem flips an item's completed state. Completing a recurring item
// spawns its successor; undoing the completion retires that successor
// again.
func (h *ItemHandler) ToggleItem(c *gin.Context) {
	accountID, exists := auth.GetAccountID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not authenticated"})
		return
	}

	var req models.ToggleItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	item, err := h.store.GetItemForViewer(c.Request.Context(), c.Param("itemId"), accountID)
	if err != nil {
		respondError(c, err)
		return
	}

	var successor *models.Item
	if req.Completed {
		coupleID, err := h.store.ItemCoupleID(c.Request.Context(), item.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		successor, err = h.engine.Complete(c.Request.Context(), item, coupleID)
		if err != nil {
			respondError(c, err)
			return
		}
	} else {
		if err := h.engine.Undo(c.Request.Context(), item); err != nil {
			respondError(c, err)
			return
		}
	}

	if !item.IsHidden {
		h.hub.BroadcastItemUpdate(item.ListID, item)
		if successor != nil {
			h.hub.BroadcastItemUpdate(successor.ListID, successor)
		}
	}

	resp := gin.H{"item": item}
	if successor != nil {
		resp["next_item"] = successor
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteItem retires the item with a tombstone and cancels its reminders.
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	accountID, exists := auth.GetAccountID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not authenticated"})
		return
	}

	item, err := h.store.GetItemForViewer(c.Request.Context(), c.Param("itemId"), accountID)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.store.SoftDeleteItem(c.Request.Context(), item.ID); err != nil {
		respondError(c, err)
		return
	}

	h.scheduler.Cancel(c.Request.Context(), item)

	if !item.IsHidden {
		h.hub.BroadcastItemUpdate(item.ListID, gin.H{"id": item.ID, "deleted": true})
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}
