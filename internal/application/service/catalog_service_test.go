package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/restropos-api/internal/storage"
	"github.com/sangkips/restropos-api/pkg/apperror"
)

func newTestCatalog(t *testing.T) (*CatalogService, storage.Store) {
	t.Helper()
	store := storage.NewMemory()
	return NewCatalogService(store), store
}

func TestCatalogServiceItems(t *testing.T) {
	ctx := context.Background()

	t.Run("create requires an existing category", func(t *testing.T) {
		svc, _ := newTestCatalog(t)

		_, err := svc.CreateItem(ctx, &CreateItemInput{
			Name: "Masala Dosa", Price: 120, CategoryID: "missing", IsActive: true,
		})

		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("create and fetch round trip", func(t *testing.T) {
		svc, _ := newTestCatalog(t)
		cat, err := svc.CreateCategory(ctx, "South Indian")
		require.NoError(t, err)

		created, err := svc.CreateItem(ctx, &CreateItemInput{
			Name: "Masala Dosa", Price: 120, CategoryID: cat.ID, IsActive: true,
		})
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)

		got, err := svc.GetItem(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Masala Dosa", got.Name)
		assert.Equal(t, 120.0, got.Price)
		assert.Equal(t, cat.ID, got.CategoryID)
	})

	t.Run("list can filter to active items", func(t *testing.T) {
		svc, _ := newTestCatalog(t)
		cat, err := svc.CreateCategory(ctx, "Drinks")
		require.NoError(t, err)

		_, err = svc.CreateItem(ctx, &CreateItemInput{Name: "Tea", Price: 20, CategoryID: cat.ID, IsActive: true})
		require.NoError(t, err)
		off, err := svc.CreateItem(ctx, &CreateItemInput{Name: "Coffee", Price: 30, CategoryID: cat.ID, IsActive: false})
		require.NoError(t, err)

		all, err := svc.ListItems(ctx, false)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		active, err := svc.ListItems(ctx, true)
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.NotEqual(t, off.ID, active[0].ID)
	})

	t.Run("toggle flips availability", func(t *testing.T) {
		svc, _ := newTestCatalog(t)
		cat, err := svc.CreateCategory(ctx, "Drinks")
		require.NoError(t, err)
		item, err := svc.CreateItem(ctx, &CreateItemInput{Name: "Tea", Price: 20, CategoryID: cat.ID, IsActive: true})
		require.NoError(t, err)

		toggled, err := svc.ToggleItem(ctx, item.ID)
		require.NoError(t, err)
		assert.False(t, toggled.IsActive)

		toggled, err = svc.ToggleItem(ctx, item.ID)
		require.NoError(t, err)
		assert.True(t, toggled.IsActive)
	})

	t.Run("partial update keeps omitted fields", func(t *testing.T) {
		svc, _ := newTestCatalog(t)
		cat, err := svc.CreateCategory(ctx, "Drinks")
		require.NoError(t, err)
		item, err := svc.CreateItem(ctx, &CreateItemInput{Name: "Tea", Price: 20, CategoryID: cat.ID, IsActive: true})
		require.NoError(t, err)

		newPrice := 25.0
		updated, err := svc.UpdateItem(ctx, item.ID, &UpdateItemInput{Price: &newPrice})
		require.NoError(t, err)

		assert.Equal(t, 25.0, updated.Price)
		assert.Equal(t, "Tea", updated.Name)
		assert.Equal(t, cat.ID, updated.CategoryID)
	})
}

func TestCatalogServiceCategories(t *testing.T) {
	ctx := context.Background()

	t.Run("delete fails while items reference it", func(t *testing.T) {
		svc, _ := newTestCatalog(t)
		cat, err := svc.CreateCategory(ctx, "Starters")
		require.NoError(t, err)
		item, err := svc.CreateItem(ctx, &CreateItemInput{Name: "Spring Rolls", Price: 150, CategoryID: cat.ID, IsActive: true})
		require.NoError(t, err)

		err = svc.DeleteCategory(ctx, cat.ID)
		assert.ErrorIs(t, err, apperror.ErrCategoryInUse)

		require.NoError(t, svc.DeleteItem(ctx, item.ID))
		assert.NoError(t, svc.DeleteCategory(ctx, cat.ID))
	})

	t.Run("delete of unknown category reports not found", func(t *testing.T) {
		svc, _ := newTestCatalog(t)

		err := svc.DeleteCategory(ctx, "nope")
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("find by name is case-insensitive", func(t *testing.T) {
		svc, _ := newTestCatalog(t)
		created, err := svc.CreateCategory(ctx, "Beverages")
		require.NoError(t, err)

		found, err := svc.FindCategoryByName(ctx, "  beverages ")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, created.ID, found.ID)

		missing, err := svc.FindCategoryByName(ctx, "Desserts")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})
}

func TestCatalogServiceSeeding(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds starter menu on first run", func(t *testing.T) {
		svc, _ := newTestCatalog(t)

		require.NoError(t, svc.EnsureDefaults(ctx))

		items, err := svc.ListItems(ctx, false)
		require.NoError(t, err)
		assert.NotEmpty(t, items)

		categories, err := svc.ListCategories(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, categories)
	})

	t.Run("never reseeds over existing data", func(t *testing.T) {
		svc, _ := newTestCatalog(t)
		cat, err := svc.CreateCategory(ctx, "Only One")
		require.NoError(t, err)
		_, err = svc.CreateItem(ctx, &CreateItemInput{Name: "Solo", Price: 10, CategoryID: cat.ID, IsActive: true})
		require.NoError(t, err)

		require.NoError(t, svc.EnsureDefaults(ctx))

		items, err := svc.ListItems(ctx, false)
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})
}
