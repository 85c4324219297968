package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/restropos-api/internal/application/service"
	"github.com/sangkips/restropos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/restropos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/restropos-api/pkg/utils"
)

// AuthHandler handles admin PIN authentication
type AuthHandler struct {
	settingsService *service.SettingsService
	sessions        *utils.SessionManager
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(settingsService *service.SettingsService, sessions *utils.SessionManager) *AuthHandler {
	return &AuthHandler{settingsService: settingsService, sessions: sessions}
}

// Login verifies the admin PIN and issues a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.PinLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.settingsService.VerifyPin(c.Request.Context(), req.PIN); err != nil {
		response.Error(c, err)
		return
	}

	token, err := h.sessions.GenerateToken()
	if err != nil {
		response.InternalServerError(c, "Failed to create session")
		return
	}

	response.OK(c, "PIN verified", gin.H{"token": token})
}

// ChangePin replaces the admin PIN after verifying the current one.
func (h *AuthHandler) ChangePin(c *gin.Context) {
	var req request.ChangePinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.settingsService.ChangePin(c.Request.Context(), req.CurrentPIN, req.NewPIN); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "PIN changed successfully", nil)
}
