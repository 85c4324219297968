package entity

import (
	"time"

	"github.com/sangkips/restropos-api/internal/domain/enum"
)

// OrderItem is a value snapshot of a cart line at commit time. Later edits to
// the catalog item never alter it.
type OrderItem struct {
	ItemID string  `json:"id"`
	Name   string  `json:"name"`
	Qty    int     `json:"qty"`
	Price  float64 `json:"price"`
}

// Order is an immutable, sequentially invoiced sale record. Once appended to
// the order log it is never updated or deleted.
type Order struct {
	ID          string           `json:"id"`
	InvoiceNo   string           `json:"invoiceNo"`
	Date        time.Time        `json:"date"`
	Items       []OrderItem      `json:"items"`
	Subtotal    float64          `json:"subtotal"`
	Tax         float64          `json:"tax"`
	Discount    float64          `json:"discount"`
	Total       float64          `json:"total"`
	PaymentMode enum.PaymentMode `json:"paymentMode"`
}

// Totals is the computed price breakdown for a line-item list.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}
