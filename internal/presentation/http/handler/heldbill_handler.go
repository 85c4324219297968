package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/restropos-api/internal/application/service"
	"github.com/sangkips/restropos-api/internal/presentation/http/dto/response"
)

// HeldBillHandler handles parked bill HTTP requests
type HeldBillHandler struct {
	heldBillService *service.HeldBillService
}

// NewHeldBillHandler creates a new held bill handler
func NewHeldBillHandler(heldBillService *service.HeldBillService) *HeldBillHandler {
	return &HeldBillHandler{heldBillService: heldBillService}
}

// List returns all held bills
func (h *HeldBillHandler) List(c *gin.Context) {
	bills, err := h.heldBillService.ListHeldBills(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Held bills retrieved successfully", bills)
}

// Hold parks the current cart as a held bill.
func (h *HeldBillHandler) Hold(c *gin.Context) {
	bill, err := h.heldBillService.Hold(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Bill held successfully", bill)
}

// Resume loads a held bill back into the cart.
func (h *HeldBillHandler) Resume(c *gin.Context) {
	cart, err := h.heldBillService.Resume(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill resumed", cart)
}

// Delete discards a held bill
func (h *HeldBillHandler) Delete(c *gin.Context) {
	if err := h.heldBillService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
