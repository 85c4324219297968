package service

import (
	"context"
	"strings"
	"sync"

	"github.com/sangkips/restropos-api/internal/domain/entity"
	"github.com/sangkips/restropos-api/internal/storage"
	"github.com/sangkips/restropos-api/pkg/apperror"
	"github.com/sangkips/restropos-api/pkg/utils"
)

// CatalogService owns the Item and Category collections. Every write
// re-serializes the full collection, so a crash mid-write can never leave a
// partial record behind. A single mutex covers both collections: the
// category-in-use check stays atomic with respect to concurrent item writes.
type CatalogService struct {
	store storage.Store
	mu    sync.Mutex
}

// NewCatalogService creates a new catalog service
func NewCatalogService(store storage.Store) *CatalogService {
	return &CatalogService{store: store}
}

func (s *CatalogService) readItems(ctx context.Context) ([]entity.Item, error) {
	var items []entity.Item
	if _, err := s.store.Get(ctx, storage.KeyItems, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *CatalogService) readCategories(ctx context.Context) ([]entity.Category, error) {
	var categories []entity.Category
	if _, err := s.store.Get(ctx, storage.KeyCategories, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ListItems returns the catalog. With activeOnly set, inactive items are
// filtered out (they remain valid references inside committed orders).
func (s *CatalogService) ListItems(ctx context.Context, activeOnly bool) ([]entity.Item, error) {
	items, err := s.readItems(ctx)
	if err != nil {
		return nil, err
	}
	if !activeOnly {
		return items, nil
	}

	active := make([]entity.Item, 0, len(items))
	for _, item := range items {
		if item.IsActive {
			active = append(active, item)
		}
	}
	return active, nil
}

// GetItem retrieves an item by ID
func (s *CatalogService) GetItem(ctx context.Context, id string) (*entity.Item, error) {
	items, err := s.readItems(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, apperror.NewNotFoundError("Item")
}

// CreateItemInput represents the create item input
type CreateItemInput struct {
	Name       string
	Price      float64
	CategoryID string
	Image      string
	IsActive   bool
}

// CreateItem creates a new item. The category must exist at creation time.
func (s *CatalogService) CreateItem(ctx context.Context, input *CreateItemInput) (*entity.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := entity.Item{
		ID:         utils.NewID(),
		Name:       input.Name,
		Price:      input.Price,
		CategoryID: input.CategoryID,
		Image:      input.Image,
		IsActive:   input.IsActive,
	}
	item.Normalize()

	if item.Name == "" {
		return nil, apperror.NewBadRequestError("Item name is required")
	}
	if input.Price < 0 {
		return nil, apperror.NewBadRequestError("Item price must not be negative")
	}

	if err := s.categoryExists(ctx, item.CategoryID); err != nil {
		return nil, err
	}

	items, err := s.readItems(ctx)
	if err != nil {
		return nil, err
	}
	items = append(items, item)
	if err := s.store.Set(ctx, storage.KeyItems, items); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItemInput represents the update item input. Nil fields keep their
// stored value.
type UpdateItemInput struct {
	Name       *string
	Price      *float64
	CategoryID *string
	Image      *string
	IsActive   *bool
}

// UpdateItem merges the input into an existing item.
func (s *CatalogService) UpdateItem(ctx context.Context, id string, input *UpdateItemInput) (*entity.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if input.CategoryID != nil {
		if err := s.categoryExists(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
	}
	if input.Price != nil && *input.Price < 0 {
		return nil, apperror.NewBadRequestError("Item price must not be negative")
	}

	items, err := s.readItems(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID != id {
			continue
		}
		if input.Name != nil {
			items[i].Name = *input.Name
		}
		if input.Price != nil {
			items[i].Price = *input.Price
		}
		if input.CategoryID != nil {
			items[i].CategoryID = *input.CategoryID
		}
		if input.Image != nil {
			items[i].Image = *input.Image
		}
		if input.IsActive != nil {
			items[i].IsActive = *input.IsActive
		}
		items[i].Normalize()
		if items[i].Name == "" {
			return nil, apperror.NewBadRequestError("Item name is required")
		}

		if err := s.store.Set(ctx, storage.KeyItems, items); err != nil {
			return nil, err
		}
		return &items[i], nil
	}
	return nil, apperror.NewNotFoundError("Item")
}

// ToggleItem flips an item's active flag.
func (s *CatalogService) ToggleItem(ctx context.Context, id string) (*entity.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.readItems(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			items[i].IsActive = !items[i].IsActive
			if err := s.store.Set(ctx, storage.KeyItems, items); err != nil {
				return nil, err
			}
			return &items[i], nil
		}
	}
	return nil, apperror.NewNotFoundError("Item")
}

// DeleteItem removes an item. Committed orders keep their snapshots.
func (s *CatalogService) DeleteItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.readItems(ctx)
	if err != nil {
		return err
	}
	filtered := items[:0:0]
	for _, item := range items {
		if item.ID != id {
			filtered = append(filtered, item)
		}
	}
	if len(filtered) == len(items) {
		return apperror.NewNotFoundError("Item")
	}
	return s.store.Set(ctx, storage.KeyItems, filtered)
}

// ListCategories lists all categories
func (s *CatalogService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return s.readCategories(ctx)
}

// GetCategory retrieves a category by ID
func (s *CatalogService) GetCategory(ctx context.Context, id string) (*entity.Category, error) {
	categories, err := s.readCategories(ctx)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if categories[i].ID == id {
			return &categories[i], nil
		}
	}
	return nil, apperror.NewNotFoundError("Category")
}

// CreateCategory creates a new category
func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*entity.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createCategoryLocked(ctx, name)
}

func (s *CatalogService) createCategoryLocked(ctx context.Context, name string) (*entity.Category, error) {
	category := entity.Category{ID: utils.NewID(), Name: name}
	category.Normalize()
	if category.Name == "" {
		return nil, apperror.NewBadRequestError("Category name is required")
	}

	categories, err := s.readCategories(ctx)
	if err != nil {
		return nil, err
	}
	categories = append(categories, category)
	if err := s.store.Set(ctx, storage.KeyCategories, categories); err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory renames a category.
func (s *CatalogService) UpdateCategory(ctx context.Context, id, name string) (*entity.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	categories, err := s.readCategories(ctx)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if categories[i].ID == id {
			categories[i].Name = name
			categories[i].Normalize()
			if categories[i].Name == "" {
				return nil, apperror.NewBadRequestError("Category name is required")
			}
			if err := s.store.Set(ctx, storage.KeyCategories, categories); err != nil {
				return nil, err
			}
			return &categories[i], nil
		}
	}
	return nil, apperror.NewNotFoundError("Category")
}

// DeleteCategory removes a category. Unknown IDs report not found; a
// category still referenced by any item reports ErrCategoryInUse.
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	categories, err := s.readCategories(ctx)
	if err != nil {
		return err
	}
	idx := -1
	for i := range categories {
		if categories[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperror.NewNotFoundError("Category")
	}

	items, err := s.readItems(ctx)
	if err != nil {
		return err
	}
	for _, item := range items {
		if item.CategoryID == id {
			return apperror.ErrCategoryInUse
		}
	}

	categories = append(categories[:idx], categories[idx+1:]...)
	return s.store.Set(ctx, storage.KeyCategories, categories)
}

func (s *CatalogService) categoryExists(ctx context.Context, id string) error {
	categories, err := s.readCategories(ctx)
	if err != nil {
		return err
	}
	for _, c := range categories {
		if c.ID == id {
			return nil
		}
	}
	return apperror.NewNotFoundError("Category")
}

// FindCategoryByName matches case-insensitively (used by menu import).
func (s *CatalogService) FindCategoryByName(ctx context.Context, name string) (*entity.Category, error) {
	categories, err := s.readCategories(ctx)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if strings.EqualFold(categories[i].Name, strings.TrimSpace(name)) {
			return &categories[i], nil
		}
	}
	return nil, nil
}
