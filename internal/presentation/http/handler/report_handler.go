package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/restropos-api/internal/application/service"
	"github.com/sangkips/restropos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/restropos-api/pkg/whatsapp"
)

// ReportHandler handles sales analytics HTTP requests
type ReportHandler struct {
	reportService   *service.ReportService
	settingsService *service.SettingsService
	sender          service.ReportSender
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService, settingsService *service.SettingsService, sender service.ReportSender) *ReportHandler {
	return &ReportHandler{
		reportService:   reportService,
		settingsService: settingsService,
		sender:          sender,
	}
}

// Get builds the sales report for ?period=today|week|month|year|all.
func (h *ReportHandler) Get(c *gin.Context) {
	period, err := service.ParseReportPeriod(c.Query("period"))
	if err != nil {
		response.Error(c, err)
		return
	}

	report, err := h.reportService.BuildReport(c.Request.Context(), period)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report built successfully", report)
}

// ExportExcel streams the report as an xlsx download.
func (h *ReportHandler) ExportExcel(c *gin.Context) {
	period, err := service.ParseReportPeriod(c.Query("period"))
	if err != nil {
		response.Error(c, err)
		return
	}

	report, err := h.reportService.BuildReport(c.Request.Context(), period)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("sales-report-%s-%s.xlsx", period, time.Now().Format("20060102"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	if err := h.reportService.ExportExcel(c.Request.Context(), report, c.Writer); err != nil {
		_ = c.Error(err)
	}
}

// Send delivers the report over WhatsApp to the configured number.
func (h *ReportHandler) Send(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if settings.WhatsAppNumber == "" {
		response.BadRequest(c, "WhatsApp number is not configured")
		return
	}

	period, err := service.ParseReportPeriod(c.Query("period"))
	if err != nil {
		response.Error(c, err)
		return
	}

	report, err := h.reportService.BuildReport(c.Request.Context(), period)
	if err != nil {
		response.Error(c, err)
		return
	}
	text, err := h.reportService.FormatText(c.Request.Context(), report)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.sender.SendText(c.Request.Context(), settings.WhatsAppNumber, text); err != nil {
		// Gateway failures fall back to a share link the client can open.
		response.Success(c, http.StatusOK, "Gateway unavailable, use share link", gin.H{
			"sent":      false,
			"shareLink": whatsapp.ShareLink(settings.WhatsAppNumber, text),
		})
		return
	}

	response.OK(c, "Report sent", gin.H{"sent": true})
}
