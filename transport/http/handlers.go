package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/launchblock/cerberus/core"
	"github.com/launchblock/cerberus/service"
)

// AuthHandlers contains HTTP handlers for auth endpoints
type AuthHandlers struct {
	authService *service.AuthService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authService *service.AuthService) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
	}
}

// LoginRequest is the login handshake payload: the admin's address, the
// challenge message the wallet signed, and the resulting signature.
type LoginRequest struct {
	Address   string `json:"address" binding:"required"`
	Message   string `json:"message" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

// SessionResponse is returned on a successful login.
type SessionResponse struct {
	SessionID string    `json:"session_id"`
	Address   string    `json:"address"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login handles the login request
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	session, err := h.authService.Login(c.Request.Context(), req.Address, req.Message, req.Signature)
	if err != nil {
		statusCode := http.StatusInternalServerError
		errorMsg := "Authentication failed"

		// Map specific errors to appropriate status codes
		switch {
		case errors.Is(err, core.ErrNotAnAdmin):
			statusCode = http.StatusForbidden
			errorMsg = "Address is not authorized"
		case errors.Is(err, core.ErrInvalidMessageFormat):
			statusCode = http.StatusBadRequest
			errorMsg = "Invalid login message"
		case errors.Is(err, core.ErrExpiredChallenge):
			statusCode = http.StatusUnauthorized
			errorMsg = "Login message expired"
		case errors.Is(err, core.ErrChallengeUsed):
			statusCode = http.StatusUnauthorized
			errorMsg = "Login message already used"
		case errors.Is(err, core.ErrInvalidSignature):
			statusCode = http.StatusUnauthorized
			errorMsg = "Invalid signature"
		}

		recordLogin(err)
		c.JSON(statusCode, gin.H{"error": errorMsg})
		return
	}

	recordLogin(nil)
	c.JSON(http.StatusOK, SessionResponse{
		SessionID: session.ID,
		Address:   session.Address,
		ExpiresAt: session.ExpiresAt,
	})
}

// Session handles the non-throwing session validation used by front-end
// polling: unknown or expired ids report valid=false with a 200.
func (h *AuthHandlers) Session(c *gin.Context) {
	sessionID := bearerToken(c)
	if sessionID == "" {
		c.JSON(http.StatusOK, service.SessionStatus{Valid: false})
		return
	}

	status, err := h.authService.ValidateSession(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate session"})
		return
	}

	recordValidation(status.Valid)
	c.JSON(http.StatusOK, status)
}

// Logout handles session logout
func (h *AuthHandlers) Logout(c *gin.Context) {
	sessionID := bearerToken(c)
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing session"})
		return
	}

	if err := h.authService.Logout(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me returns information about the authenticated admin
func (h *AuthHandlers) Me(c *gin.Context) {
	// Admin address is set by the session guard middleware
	address, exists := c.Get("adminAddress")
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Admin not found in context"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"address": address,
	})
}

// Authorize checks if the caller holds a live admin session
func (h *AuthHandlers) Authorize(c *gin.Context) {
	// If the request reached this handler, the session guard has already
	// validated the session
	address, exists := c.Get("adminAddress")
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Admin not found in context"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authorized": true,
		"address":    address,
	})
}
