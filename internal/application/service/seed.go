package service

import (
	"context"

	"github.com/sangkips/restropos-api/internal/domain/entity"
	"github.com/sangkips/restropos-api/internal/storage"
	"github.com/sangkips/restropos-api/pkg/utils"
)

// EnsureDefaults seeds the starter menu on first run. Collections that
// already hold data are left untouched.
func (s *CatalogService) EnsureDefaults(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	categories, err := s.readCategories(ctx)
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		categories = []entity.Category{
			{ID: utils.NewID(), Name: "Appetizers"},
			{ID: utils.NewID(), Name: "Main Course"},
			{ID: utils.NewID(), Name: "Desserts"},
			{ID: utils.NewID(), Name: "Beverages"},
		}
		if err := s.store.Set(ctx, storage.KeyCategories, categories); err != nil {
			return err
		}
	}

	items, err := s.readItems(ctx)
	if err != nil {
		return err
	}
	if len(items) > 0 {
		return nil
	}

	byName := make(map[string]string, len(categories))
	for _, c := range categories {
		byName[c.Name] = c.ID
	}

	starter := []struct {
		name     string
		price    float64
		category string
	}{
		{"Caesar Salad", 250, "Appetizers"},
		{"Spring Rolls", 180, "Appetizers"},
		{"Chicken Wings", 320, "Appetizers"},
		{"Grilled Chicken", 450, "Main Course"},
		{"Pasta Carbonara", 380, "Main Course"},
		{"Fish Curry", 420, "Main Course"},
		{"Vegetable Biryani", 350, "Main Course"},
		{"Chocolate Cake", 280, "Desserts"},
		{"Ice Cream", 150, "Desserts"},
		{"Fresh Juice", 120, "Beverages"},
		{"Coffee", 80, "Beverages"},
	}

	items = make([]entity.Item, 0, len(starter))
	for _, s := range starter {
		items = append(items, entity.Item{
			ID:         utils.NewID(),
			Name:       s.name,
			Price:      s.price,
			CategoryID: byName[s.category],
			IsActive:   true,
		})
	}
	return s.store.Set(ctx, storage.KeyItems, items)
}
