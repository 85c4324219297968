package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/restropos-api/internal/application/service"
	"github.com/sangkips/restropos-api/internal/domain/enum"
	"github.com/sangkips/restropos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/restropos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/restropos-api/pkg/apperror"
)

// OrderHandler handles checkout and order history HTTP requests
type OrderHandler struct {
	orderService   *service.OrderService
	printerService *service.PrinterService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, printerService *service.PrinterService) *OrderHandler {
	return &OrderHandler{orderService: orderService, printerService: printerService}
}

// Checkout commits the current cart as an order.
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	mode, ok := enum.ParsePaymentMode(req.PaymentMode)
	if !ok {
		response.Error(c, apperror.ErrNoPaymentMode)
		return
	}

	order, err := h.orderService.CommitOrder(c.Request.Context(), mode)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order placed successfully", order)
}

// List returns order history, newest first. Optional from/to filters accept
// YYYY-MM-DD dates; to is inclusive of the whole day.
func (h *OrderHandler) List(c *gin.Context) {
	var from, to time.Time

	if v := c.Query("from"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			response.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
			return
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			response.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
			return
		}
		to = t.AddDate(0, 0, 1)
	}

	orders, err := h.orderService.ListOrders(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Orders retrieved successfully", orders)
}

// Get returns a single order
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// Receipt returns the print-ready projection of an order.
func (h *OrderHandler) Receipt(c *gin.Context) {
	receipt, err := h.printerService.BuildReceipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt built successfully", receipt)
}

// Print sends an order's receipt to the configured printer.
func (h *OrderHandler) Print(c *gin.Context) {
	if err := h.printerService.PrintReceipt(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt sent to printer", nil)
}
