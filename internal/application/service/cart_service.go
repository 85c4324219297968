package service

import (
	"context"
	"sync"

	"github.com/sangkips/restropos-api/internal/domain/entity"
	"github.com/sangkips/restropos-api/internal/storage"
	"github.com/sangkips/restropos-api/pkg/apperror"
)

// CartService owns the working cart for the open transaction. Every
// mutation persists the full cart snapshot, so a reload or another open
// view reflects the latest state on its next read. A line never persists
// with quantity <= 0: stepping a line to zero removes it.
type CartService struct {
	store storage.Store
	mu    sync.Mutex
}

// NewCartService creates a new cart service
func NewCartService(store storage.Store) *CartService {
	return &CartService{store: store}
}

func (s *CartService) read(ctx context.Context) (entity.Cart, error) {
	var cart entity.Cart
	if _, err := s.store.Get(ctx, storage.KeyCart, &cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// GetCart returns the current cart lines.
func (s *CartService) GetCart(ctx context.Context) (entity.Cart, error) {
	return s.read(ctx)
}

// AddLine merges an item into the cart. An existing line for the item gains
// quantity 1; otherwise a new line is appended with a price snapshot taken
// now, so later catalog price edits never change an open cart.
func (s *CartService) AddLine(ctx context.Context, item *entity.Item) (entity.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range cart {
		if cart[i].ItemID == item.ID {
			cart[i].Quantity++
			merged = true
			break
		}
	}
	if !merged {
		cart = append(cart, entity.CartLine{
			ItemID:   item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: 1,
		})
	}

	if err := s.store.Set(ctx, storage.KeyCart, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// ChangeQuantity applies a delta to a line. A resulting quantity <= 0
// removes the line entirely.
func (s *CartService) ChangeQuantity(ctx context.Context, itemID string, delta int) (entity.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range cart {
		if cart[i].ItemID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperror.NewNotFoundError("Cart line")
	}

	cart[idx].Quantity += delta
	if cart[idx].Quantity <= 0 {
		cart = append(cart[:idx], cart[idx+1:]...)
	}

	if err := s.store.Set(ctx, storage.KeyCart, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveLine drops a line regardless of quantity.
func (s *CartService) RemoveLine(ctx context.Context, itemID string) (entity.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	filtered := cart[:0:0]
	for _, line := range cart {
		if line.ItemID != itemID {
			filtered = append(filtered, line)
		}
	}
	if len(filtered) == len(cart) {
		return nil, apperror.NewNotFoundError("Cart line")
	}

	if err := s.store.Set(ctx, storage.KeyCart, filtered); err != nil {
		return nil, err
	}
	return filtered, nil
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Set(ctx, storage.KeyCart, entity.Cart{})
}

// Replace swaps the whole cart in one write (resuming a held bill).
func (s *CartService) Replace(ctx context.Context, cart entity.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, line := range cart {
		if line.Quantity <= 0 {
			return apperror.NewBadRequestError("Cart line quantity must be positive")
		}
	}
	return s.store.Set(ctx, storage.KeyCart, cart)
}

// TotalLineCount returns the summed quantity for badge display.
func (s *CartService) TotalLineCount(ctx context.Context) (int, error) {
	cart, err := s.read(ctx)
	if err != nil {
		return 0, err
	}
	return cart.TotalLineCount(), nil
}

// Subscribe notifies fn after every cart write. Callers re-read the cart to
// observe the new state.
func (s *CartService) Subscribe(fn func()) (cancel func()) {
	return s.store.Subscribe(storage.KeyCart, func(string) { fn() })
}
