package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Wizzel1/cuppl-sub000/internal/auth"
	"github.com/Wizzel1/cuppl-sub000/internal/models"
	"github.com/Wizzel1/cuppl-sub000/internal/store"
)

type AuthHandler struct {
	store      store.Store
	jwtManager *auth.JWTManager
	validator  *validator.Validate
}

func NewAuthHandler(store store.Store, jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{
		store:      store,
		jwtManager: jwtManager,
		validator:  validator.New(),
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	exists, err := h.store.AccountExists(c.Request.Context(), req.Username, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	if exists {
		c.JSON(http.StatusConflict, gin.H{"error": "Account already exists"})
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	account := models.Account{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: &hashedPassword,
	}
	if err := h.store.CreateAccount(c.Request.Context(), &account); err != nil {
		respondError(c, err)
		return
	}

	token, err := h.jwtManager.GenerateToken(&account)
	if err != nil {
		respondError(c, err)
		return
	}

	account.PasswordHash = nil
	c.JSON(http.StatusCreated, models.LoginResponse{Token: token, Account: account})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.store.GetAccountByLogin(c.Request.Context(), req.EmailOrUsername)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if account.PasswordHash == nil || !auth.CheckPasswordHash(req.Password, *account.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.jwtManager.GenerateToken(account)
	if err != nil {
		respondError(c, err)
		return
	}

	account.PasswordHash = nil
	c.JSON(http.StatusOK, models.LoginResponse{Token: token, Account: *account})
}

// GetCurrentAccount returns the authenticated account.
func (h *AuthHandler) GetCurrentAccount(c *gin.Context) {
	accountID, exists := auth.GetAccountID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not authenticated"})
		return
	}

	account, err := h.store.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err)
		return
	}

	account.PasswordHash = nil
	c.JSON(http.StatusOK, account)
}
