package entity

import "time"

// HeldBill is a parked, unpaid cart snapshot. It carries no invoice number
// (it is not an order) and is independent of the live cart: holding copies
// the lines, resuming removes the bill from the log.
type HeldBill struct {
	ID       string    `json:"id"`
	Date     time.Time `json:"date"`
	Items    Cart      `json:"items"`
	Subtotal float64   `json:"subtotal"`
	Tax      float64   `json:"tax"`
	Discount float64   `json:"discount"`
	Total    float64   `json:"total"`
}
