package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/restropos-api/internal/application/service"
	"github.com/sangkips/restropos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/restropos-api/internal/presentation/http/dto/response"
)

// SettingsHandler handles store settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get returns the current settings
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings retrieved successfully", settings)
}

// Update merges the provided fields into the stored settings.
func (h *SettingsHandler) Update(c *gin.Context) {
	var req request.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), service.UpdateSettingsInput{
		Currency:           req.Currency,
		TaxRate:            req.TaxRate,
		GSTEnabled:         req.GSTEnabled,
		DiscountEnabled:    req.DiscountEnabled,
		UPIID:              req.UPIID,
		PayeeName:          req.PayeeName,
		DarkMode:           req.DarkMode,
		WhatsAppNumber:     req.WhatsAppNumber,
		WhatsAppAPIService: req.WhatsAppAPIService,
		WhatsAppAPIKey:     req.WhatsAppAPIKey,
		WhatsAppAPIURL:     req.WhatsAppAPIURL,
		AutoReportEnabled:  req.AutoReportEnabled,
		ReportTime:         req.ReportTime,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings updated successfully", settings)
}
