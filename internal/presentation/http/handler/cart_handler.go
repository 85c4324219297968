package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/restropos-api/internal/application/service"
	"github.com/sangkips/restropos-api/internal/domain/entity"
	"github.com/sangkips/restropos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/restropos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/restropos-api/pkg/apperror"
)

// CartHandler handles the working cart HTTP requests
type CartHandler struct {
	cartService     *service.CartService
	catalogService  *service.CatalogService
	settingsService *service.SettingsService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService, catalogService *service.CatalogService, settingsService *service.SettingsService) *CartHandler {
	return &CartHandler{
		cartService:     cartService,
		catalogService:  catalogService,
		settingsService: settingsService,
	}
}

// cartView pairs the cart lines with the computed totals.
type cartView struct {
	Lines  entity.Cart   `json:"lines"`
	Count  int           `json:"count"`
	Totals entity.Totals `json:"totals"`
}

func (h *CartHandler) view(c *gin.Context, cart entity.Cart) (*cartView, error) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		return nil, err
	}
	return &cartView{
		Lines:  cart,
		Count:  cart.TotalLineCount(),
		Totals: service.ComputeTotals(cart, settings),
	}, nil
}

// Get returns the cart with its totals.
func (h *CartHandler) Get(c *gin.Context) {
	cart, err := h.cartService.GetCart(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	view, err := h.view(c, cart)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart retrieved successfully", view)
}

// Add puts one unit of an item into the cart. Inactive items are rejected.
func (h *CartHandler) Add(c *gin.Context) {
	var req request.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.catalogService.GetItem(c.Request.Context(), req.ItemID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !item.IsActive {
		response.Error(c, apperror.NewBadRequestError("Item is not available"))
		return
	}

	cart, err := h.cartService.AddLine(c.Request.Context(), item)
	if err != nil {
		response.Error(c, err)
		return
	}

	view, err := h.view(c, cart)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item added to cart", view)
}

// ChangeQuantity adjusts a line's quantity by a signed delta.
func (h *CartHandler) ChangeQuantity(c *gin.Context) {
	var req request.ChangeQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	cart, err := h.cartService.ChangeQuantity(c.Request.Context(), c.Param("itemId"), req.Delta)
	if err != nil {
		response.Error(c, err)
		return
	}

	view, err := h.view(c, cart)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart updated", view)
}

// Remove drops a line from the cart.
func (h *CartHandler) Remove(c *gin.Context) {
	cart, err := h.cartService.RemoveLine(c.Request.Context(), c.Param("itemId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	view, err := h.view(c, cart)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item removed from cart", view)
}

// Clear empties the cart.
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.cartService.Clear(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
