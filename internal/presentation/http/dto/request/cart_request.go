package request

// AddToCartRequest represents a request to add an item to the cart
type AddToCartRequest struct {
	ItemID string `json:"itemId" binding:"required"`
}

// ChangeQuantityRequest represents a cart line quantity adjustment
type ChangeQuantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// CheckoutRequest represents an order commit request
type CheckoutRequest struct {
	PaymentMode string `json:"paymentMode" binding:"required"`
}
