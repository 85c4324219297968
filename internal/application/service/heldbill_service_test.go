package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/restropos-api/internal/storage"
	"github.com/sangkips/restropos-api/pkg/apperror"
)

func newHeldBillFixture(t *testing.T) (*HeldBillService, *CartService, storage.Store) {
	t.Helper()
	store := storage.NewMemory()
	cart := NewCartService(store)
	settings := NewSettingsService(store)
	require.NoError(t, settings.EnsureDefaults(context.Background()))
	return NewHeldBillService(store, cart, settings), cart, store
}

func TestHoldRequiresLines(t *testing.T) {
	svc, _, _ := newHeldBillFixture(t)

	_, err := svc.Hold(context.Background())
	assert.ErrorIs(t, err, apperror.ErrEmptyCart)
}

func TestHoldAndResumeRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, cart, _ := newHeldBillFixture(t)

	_, err := cart.AddLine(ctx, testItem("a", "Thali", 180))
	require.NoError(t, err)
	_, err = cart.AddLine(ctx, testItem("a", "Thali", 180))
	require.NoError(t, err)

	bill, err := svc.Hold(ctx)
	require.NoError(t, err)
	assert.Equal(t, 360.0, bill.Subtotal)
	require.Len(t, bill.Items, 1)
	assert.Equal(t, 2, bill.Items[0].Quantity)

	// holding empties the cart
	lines, err := cart.GetCart(ctx)
	require.NoError(t, err)
	assert.Empty(t, lines)

	// resuming removes the bill and restores the cart
	resumed, err := svc.Resume(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, bill.Items, resumed)

	bills, err := svc.ListHeldBills(ctx)
	require.NoError(t, err)
	assert.Empty(t, bills)

	lines, err = cart.GetCart(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)

	// a second resume finds nothing
	_, err = svc.Resume(ctx, bill.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestResumeOverwritesCurrentCart(t *testing.T) {
	ctx := context.Background()
	svc, cart, _ := newHeldBillFixture(t)

	_, err := cart.AddLine(ctx, testItem("a", "Thali", 180))
	require.NoError(t, err)
	bill, err := svc.Hold(ctx)
	require.NoError(t, err)

	_, err = cart.AddLine(ctx, testItem("b", "Tea", 20))
	require.NoError(t, err)

	_, err = svc.Resume(ctx, bill.ID)
	require.NoError(t, err)

	lines, err := cart.GetCart(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "a", lines[0].ItemID)
}

func TestHoldRollsBackWhenCartClearFails(t *testing.T) {
	ctx := context.Background()
	svc, cart, store := newHeldBillFixture(t)

	_, err := cart.AddLine(ctx, testItem("a", "Thali", 180))
	require.NoError(t, err)

	// the bill append succeeds, then the cart clear write fails
	store.(faultyStore).FailNextWrite(storage.KeyCart, errors.New("disk full"))
	_, err = svc.Hold(ctx)
	require.Error(t, err)

	// the appended bill was rolled back, so a retried Hold parks exactly one
	bills, err := svc.ListHeldBills(ctx)
	require.NoError(t, err)
	assert.Empty(t, bills)

	_, err = svc.Hold(ctx)
	require.NoError(t, err)
	bills, err = svc.ListHeldBills(ctx)
	require.NoError(t, err)
	assert.Len(t, bills, 1)
}

func TestResumeRestoresBillWhenCartReplaceFails(t *testing.T) {
	ctx := context.Background()
	svc, cart, store := newHeldBillFixture(t)

	_, err := cart.AddLine(ctx, testItem("a", "Thali", 180))
	require.NoError(t, err)
	bill, err := svc.Hold(ctx)
	require.NoError(t, err)

	// the bill removal succeeds, then the cart replace write fails
	store.(faultyStore).FailNextWrite(storage.KeyCart, errors.New("disk full"))
	_, err = svc.Resume(ctx, bill.ID)
	require.Error(t, err)

	// the bill is back in the held list, nothing was lost
	bills, err := svc.ListHeldBills(ctx)
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.Equal(t, bill.ID, bills[0].ID)

	// retrying resumes it cleanly
	resumed, err := svc.Resume(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, bill.Items, resumed)
}

func TestDeleteHeldBill(t *testing.T) {
	ctx := context.Background()
	svc, cart, _ := newHeldBillFixture(t)

	_, err := cart.AddLine(ctx, testItem("a", "Thali", 180))
	require.NoError(t, err)
	bill, err := svc.Hold(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, bill.ID))

	err = svc.Delete(ctx, bill.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
