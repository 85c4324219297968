package service

import (
	"context"
	"sync"
	"time"

	"github.com/sangkips/restropos-api/internal/domain/entity"
	"github.com/sangkips/restropos-api/internal/storage"
	"github.com/sangkips/restropos-api/pkg/apperror"
	"github.com/sangkips/restropos-api/pkg/utils"
)

// HeldBillService parks in-progress carts so the register can serve another
// customer. Hold and Resume each span two keys (the held list and the cart);
// when the second write fails the first is compensated, so a bill is never
// lost from both places and a retried Hold never parks a duplicate.
type HeldBillService struct {
	store    storage.Store
	cart     *CartService
	settings *SettingsService
	mu       sync.Mutex
}

// NewHeldBillService creates a new held bill service
func NewHeldBillService(store storage.Store, cart *CartService, settings *SettingsService) *HeldBillService {
	return &HeldBillService{store: store, cart: cart, settings: settings}
}

func (s *HeldBillService) read(ctx context.Context) ([]entity.HeldBill, error) {
	var bills []entity.HeldBill
	if _, err := s.store.Get(ctx, storage.KeyHeldBills, &bills); err != nil {
		return nil, err
	}
	return bills, nil
}

// ListHeldBills returns all parked bills, oldest first.
func (s *HeldBillService) ListHeldBills(ctx context.Context) ([]entity.HeldBill, error) {
	return s.read(ctx)
}

// Hold parks the current cart as a held bill and clears the cart. Totals are
// snapshotted under the active settings for display in the held list.
func (s *HeldBillService) Hold(ctx context.Context) (*entity.HeldBill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.cart.GetCart(ctx)
	if err != nil {
		return nil, err
	}
	if len(cart) == 0 {
		return nil, apperror.ErrEmptyCart
	}

	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	totals := ComputeTotals(cart, settings)

	bills, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	bill := entity.HeldBill{
		ID:       utils.NewID(),
		Date:     time.Now(),
		Items:    cart.Clone(),
		Subtotal: totals.Subtotal,
		Tax:      totals.Tax,
		Discount: totals.Discount,
		Total:    totals.Total,
	}

	if err := s.store.Set(ctx, storage.KeyHeldBills, append(bills, bill)); err != nil {
		return nil, err
	}
	if err := s.cart.Clear(ctx); err != nil {
		// Drop the just-parked bill so a retried Hold does not park it twice.
		if rbErr := s.store.Set(ctx, storage.KeyHeldBills, bills); rbErr != nil {
			return nil, apperror.NewPersistenceError(rbErr)
		}
		return nil, err
	}
	return &bill, nil
}

// Resume removes a held bill and loads its lines into the working cart,
// replacing whatever the cart held.
func (s *HeldBillService) Resume(ctx context.Context, id string) (entity.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bills, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range bills {
		if bills[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperror.NewNotFoundError("Held bill")
	}

	bill := bills[idx]
	remaining := append(bills[:idx:idx], bills[idx+1:]...)

	if err := s.store.Set(ctx, storage.KeyHeldBills, remaining); err != nil {
		return nil, err
	}
	if err := s.cart.Replace(ctx, bill.Items); err != nil {
		// Put the bill back so it survives somewhere when the cart write fails.
		if rbErr := s.store.Set(ctx, storage.KeyHeldBills, bills); rbErr != nil {
			return nil, apperror.NewPersistenceError(rbErr)
		}
		return nil, err
	}
	return bill.Items, nil
}

// Delete discards a held bill without touching the cart.
func (s *HeldBillService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bills, err := s.read(ctx)
	if err != nil {
		return err
	}

	filtered := bills[:0:0]
	for _, b := range bills {
		if b.ID != id {
			filtered = append(filtered, b)
		}
	}
	if len(filtered) == len(bills) {
		return apperror.NewNotFoundError("Held bill")
	}
	return s.store.Set(ctx, storage.KeyHeldBills, filtered)
}
