package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sangkips/restropos-api/internal/domain/entity"
)

func TestComputeTotals(t *testing.T) {
	cart := entity.Cart{
		{ItemID: "a", Name: "Paneer Tikka", Price: 250, Quantity: 2},
		{ItemID: "b", Name: "Lassi", Price: 100, Quantity: 1},
	}

	t.Run("applies GST when enabled", func(t *testing.T) {
		settings := entity.Settings{GSTEnabled: true, TaxRate: 18}

		totals := ComputeTotals(cart, settings)

		assert.Equal(t, 600.0, totals.Subtotal)
		assert.Equal(t, 108.0, totals.Tax)
		assert.Equal(t, 0.0, totals.Discount)
		assert.Equal(t, 708.0, totals.Total)
	})

	t.Run("skips tax when GST disabled", func(t *testing.T) {
		settings := entity.Settings{GSTEnabled: false, TaxRate: 18}

		totals := ComputeTotals(cart, settings)

		assert.Equal(t, 600.0, totals.Subtotal)
		assert.Equal(t, 0.0, totals.Tax)
		assert.Equal(t, 600.0, totals.Total)
	})

	t.Run("skips tax at zero rate", func(t *testing.T) {
		settings := entity.Settings{GSTEnabled: true, TaxRate: 0}

		totals := ComputeTotals(cart, settings)

		assert.Equal(t, 0.0, totals.Tax)
		assert.Equal(t, 600.0, totals.Total)
	})

	t.Run("empty cart is all zeros", func(t *testing.T) {
		totals := ComputeTotals(entity.Cart{}, entity.DefaultSettings())

		assert.Equal(t, 0.0, totals.Subtotal)
		assert.Equal(t, 0.0, totals.Tax)
		assert.Equal(t, 0.0, totals.Total)
	})

	t.Run("does not mutate its inputs", func(t *testing.T) {
		settings := entity.Settings{GSTEnabled: true, TaxRate: 18}
		before := cart.Clone()

		_ = ComputeTotals(cart, settings)

		assert.Equal(t, before, cart)
	})
}
