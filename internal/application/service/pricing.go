package service

import (
	"github.com/sangkips/restropos-api/internal/domain/entity"
)

// ComputeTotals turns a line-item list and settings into the price
// breakdown. It is pure: no side effects, same input always yields the same
// output, so it serves both live cart display and historical order
// recomputation.
func ComputeTotals(lines entity.Cart, settings entity.Settings) entity.Totals {
	var subtotal float64
	for _, line := range lines {
		subtotal += line.Price * float64(line.Quantity)
	}

	var tax float64
	if settings.GSTEnabled && settings.TaxRate > 0 {
		tax = subtotal * settings.TaxRate / 100
	}

	// DiscountEnabled is carried in settings but no discount rule is defined
	// yet; the amount stays zero regardless of the flag, pending a product
	// decision on the rule.
	var discount float64

	return entity.Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Discount: discount,
		Total:    subtotal + tax - discount,
	}
}
