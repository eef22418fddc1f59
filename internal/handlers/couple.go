package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Wizzel1/cuppl-sub000/internal/auth"
	"github.com/Wizzel1/cuppl-sub000/internal/models"
	"github.com/Wizzel1/cuppl-sub000/internal/ownership"
	"github.com/Wizzel1/cuppl-sub000/internal/store"
	"github.com/Wizzel1/cuppl-sub000/internal/websocket"
)

type CoupleHandler struct {
	store     store.Store
	hub       *websocket.Hub
	validator *validator.Validate
}

func NewCoupleHandler(store store.Store, hub *websocket.Hub) *CoupleHandler {
	return &CoupleHandler{
		store:     store,
		hub:       hub,
		validator: validator.New(),
	}
}

// CreateCouple starts a new couple with the caller as its first partner.
func (h *CoupleHandler) CreateCouple(c *gin.Context) {
	accountID, exists := auth.GetAccountID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not authenticated"})
		return
	}

	var req models.CreateCoupleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.store.GetCoupleByAccount(c.Request.Context(), accountID); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Account already belongs to a couple"})
		return
	} else if !errors.Is(err, models.ErrNotFound) {
		respondError(c, err)
		return
	}

	couple := models.Couple{}
	profile := models.PartnerProfile{
		AccountID:   accountID,
		DisplayName: req.DisplayName,
		Mood:        req.Mood,
		AvatarURL:   req.AvatarURL,
	}
	if err := h.store.CreateCouple(c.Request.Context(), &couple, &profile); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, couple)
}

// GetCurrentCouple returns the caller's active couple with the viewer's and
// partner's profiles resolved.
func (h *CoupleHandler) GetCurrentCouple(c *gin.Context) {
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

	myProfile, partnerProfile := ownership.ResolveProfiles(couple, accountID)

	c.JSON(http.StatusOK, gin.H{
		"couple":          couple,
		"my_profile":      myProfile,
		"partner_profile": partnerProfile,
	})
}

// UpdateProfile edits the caller's own partner profile.
func (h *CoupleHandler) UpdateProfile(c *gin.Context) {
	accountID, exists := auth.GetAccountID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not authenticated"})
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	couple, err := h.store.GetCoupleByAccount(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err)
		return
	}

	myProfile, _ := ownership.ResolveProfiles(couple, accountID)
	if myProfile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	if req.DisplayName != nil {
		myProfile.DisplayName = *req.DisplayName
	}
	if req.Mood != nil {
		myProfile.Mood = *req.Mood
	}
	if req.AvatarURL != nil {
		myProfile.AvatarURL = req.AvatarURL
	}

	if err := h.store.UpdateProfile(c.Request.Context(), myProfile); err != nil {
		respondError(c, err)
		return
	}

	h.broadcastCoupleChange(c, couple.ID, gin.H{"profile": myProfile})
	c.JSON(http.StatusOK, myProfile)
}

// SetBackground sets the couple's shared background photo.
func (h *CoupleHandler) SetBackground(c *gin.Context) {
	accountID, exists := auth.GetAccountID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not authenticated"})
		return
	}

	var req models.SetBackgroundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	couple, err := h.store.GetCoupleByAccount(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.store.SetBackgroundPhoto(c.Request.Context(), couple.ID, req.PhotoURL); err != nil {
		respondError(c, err)
		return
	}

	h.broadcastCoupleChange(c, couple.ID, gin.H{"background_photo": req.PhotoURL})
	c.JSON(http.StatusOK, gin.H{"message": "Background updated successfully"})
}

// GenerateInvite creates a shareable token that grants the couple's shared
// scope to a second account.
func (h *CoupleHandler) GenerateInvite(c *gin.Context) {
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

	if len(couple.Profiles) >= 2 {
		c.JSON(http.StatusConflict, gin.H{"error": "Couple already has two partners"})
		return
	}

	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		respondError(c, err)
		return
	}
	token := hex.EncodeToString(bytes)

	if err := h.store.SetInviteToken(c.Request.Context(), couple.ID, &token); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"invite_token": token})
}

// JoinCouple accepts an invite token, adding the caller as the second
// partner. The caller's previous couple, if any, is flagged deleted and
// left behind as a tombstone.
func (h *CoupleHandler) JoinCouple(c *gin.Context) {
	accountID, exists := auth.GetAccountID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not authenticated"})
		return
	}

	var req models.JoinCoupleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	couple, err := h.store.GetCoupleByInviteToken(c.Request.Context(), req.Token)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invalid or expired invite token"})
		return
	}

	for _, p := range couple.Profiles {
		if p.AccountID == accountID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot join your own couple"})
			return
		}
	}
	if len(couple.Profiles) >= 2 {
		c.JSON(http.StatusConflict, gin.H{"error": "Couple already has two partners"})
		return
	}

	// Leaving a couple never destroys it.
	if old, err := h.store.GetCoupleByAccount(c.Request.Context(), accountID); err == nil {
		if err := h.store.SoftDeleteCouple(c.Request.Context(), old.ID); err != nil {
			respondError(c, err)
			return
		}
	} else if !errors.Is(err, models.ErrNotFound) {
		respondError(c, err)
		return
	}

	profile := models.PartnerProfile{
		CoupleID:    couple.ID,
		AccountID:   accountID,
		DisplayName: req.DisplayName,
		Mood:        req.Mood,
		AvatarURL:   req.AvatarURL,
	}
	if err := h.store.AddProfile(c.Request.Context(), &profile); err != nil {
		respondError(c, err)
		return
	}

	// Invite tokens are single use.
	if err := h.store.SetInviteToken(c.Request.Context(), couple.ID, nil); err != nil {
		respondError(c, err)
		return
	}

	// Tell the inviting partner.
	for _, p := range couple.Profiles {
		notification := &models.Notification{
			AccountID: p.AccountID,
			Type:      models.NotifTypePartnerJoined,
			Title:     "Partner joined",
			Message:   req.DisplayName + " joined your couple",
		}
		if err := h.store.InsertNotification(c.Request.Context(), notification); err == nil {
			h.hub.BroadcastNotification(p.AccountID, notification)
		}
	}

	couple.Profiles = append(couple.Profiles, profile)
	couple.InviteToken = nil
	c.JSON(http.StatusCreated, gin.H{"couple": couple, "message": "Successfully joined couple"})
}

func (h *CoupleHandler) broadcastCoupleChange(c *gin.Context, coupleID string, data interface{}) {
	accountIDs, err := h.store.CoupleAccountIDs(c.Request.Context(), coupleID)
	if err != nil {
		return
	}
	h.hub.BroadcastCoupleUpdate(accountIDs, data)
}
