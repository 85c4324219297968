package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sangkips/restropos-api/internal/domain/entity"
	"github.com/sangkips/restropos-api/internal/domain/enum"
	"github.com/sangkips/restropos-api/internal/storage"
	"github.com/sangkips/restropos-api/pkg/apperror"
	"github.com/sangkips/restropos-api/pkg/utils"
)

// OrderService owns the append-only order log. Orders are immutable once
// appended. Invoice numbers are recomputed from the log at commit time, so
// the sequence never skips even after a failed commit.
type OrderService struct {
	store    storage.Store
	cart     *CartService
	settings *SettingsService
	mu       sync.Mutex
}

// NewOrderService creates a new order service
func NewOrderService(store storage.Store, cart *CartService, settings *SettingsService) *OrderService {
	return &OrderService{store: store, cart: cart, settings: settings}
}

func (s *OrderService) read(ctx context.Context) ([]entity.Order, error) {
	var orders []entity.Order
	if _, err := s.store.Get(ctx, storage.KeyOrders, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// NextInvoiceNumber derives the next invoice number for now: INV-YYYYMMDD-NNN
// where NNN counts committed orders sharing now's calendar date, plus one.
// Counting the log instead of keeping a stored counter means the sequence
// self-heals after an aborted commit.
func (s *OrderService) NextInvoiceNumber(ctx context.Context, now time.Time) (string, error) {
	orders, err := s.read(ctx)
	if err != nil {
		return "", err
	}
	return nextInvoiceNumber(orders, now), nil
}

func nextInvoiceNumber(orders []entity.Order, now time.Time) string {
	y, m, d := now.Date()
	count := 0
	for i := range orders {
		oy, om, od := orders[i].Date.Date()
		if oy == y && om == m && od == d {
			count++
		}
	}
	return fmt.Sprintf("INV-%04d%02d%02d-%03d", y, int(m), d, count+1)
}

// CommitOrder turns the current cart into an order: validates, snapshots
// totals under the active settings, appends to the log, then clears the
// cart. If the cart clear fails the appended order is rolled back so the
// commit is all or nothing.
func (s *OrderService) CommitOrder(ctx context.Context, mode enum.PaymentMode) (*entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !mode.Valid() {
		return nil, apperror.ErrNoPaymentMode
	}

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

	orders, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	totals := ComputeTotals(cart, settings)

	items := make([]entity.OrderItem, 0, len(cart))
	for _, line := range cart {
		items = append(items, entity.OrderItem{
			ItemID: line.ItemID,
			Name:   line.Name,
			Qty:    line.Quantity,
			Price:  line.Price,
		})
	}

	order := entity.Order{
		ID:          utils.NewID(),
		InvoiceNo:   nextInvoiceNumber(orders, now),
		Date:        now,
		Items:       items,
		Subtotal:    totals.Subtotal,
		Tax:         totals.Tax,
		Discount:    totals.Discount,
		Total:       totals.Total,
		PaymentMode: mode,
	}

	if err := s.store.Set(ctx, storage.KeyOrders, append(orders, order)); err != nil {
		return nil, err
	}

	if err := s.cart.Clear(ctx); err != nil {
		// Roll the log back so a retried commit does not double-bill.
		if rbErr := s.store.Set(ctx, storage.KeyOrders, orders); rbErr != nil {
			return nil, apperror.NewPersistenceError(rbErr)
		}
		return nil, err
	}

	return &order, nil
}

// ListOrders returns committed orders, newest first. A zero from/to leaves
// that bound open.
func (s *OrderService) ListOrders(ctx context.Context, from, to time.Time) ([]entity.Order, error) {
	orders, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]entity.Order, 0, len(orders))
	for _, o := range orders {
		if !from.IsZero() && o.Date.Before(from) {
			continue
		}
		if !to.IsZero() && !o.Date.Before(to) {
			continue
		}
		filtered = append(filtered, o)
	}

	for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
		filtered[i], filtered[j] = filtered[j], filtered[i]
	}
	return filtered, nil
}

// GetOrder looks up a single order by ID.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*entity.Order, error) {
	orders, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == id {
			return &orders[i], nil
		}
	}
	return nil, apperror.NewNotFoundError("Order")
}

// Subscribe notifies fn after every order log write.
func (s *OrderService) Subscribe(fn func()) (cancel func()) {
	return s.store.Subscribe(storage.KeyOrders, func(string) { fn() })
}
