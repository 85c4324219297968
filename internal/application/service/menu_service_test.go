package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportCSV(t *testing.T) {
	ctx := context.Background()

	t.Run("creates items and categories from rows", func(t *testing.T) {
		catalog, _ := newTestCatalog(t)
		svc := NewMenuService(catalog)

		csv := strings.NewReader(
			"Name,Price,Category\n" +
				"Masala Dosa,120,South Indian\n" +
				"Idli,60,South Indian\n" +
				"Tea,20,Beverages\n")

		summary, err := svc.ImportCSV(ctx, csv)
		require.NoError(t, err)

		assert.Equal(t, 3, summary.Imported)
		assert.Equal(t, 0, summary.Skipped)
		assert.Equal(t, 2, summary.CategoriesCreated)

		items, err := catalog.ListItems(ctx, false)
		require.NoError(t, err)
		assert.Len(t, items, 3)
	})

	t.Run("matches existing categories case-insensitively", func(t *testing.T) {
		catalog, _ := newTestCatalog(t)
		existing, err := catalog.CreateCategory(ctx, "Beverages")
		require.NoError(t, err)
		svc := NewMenuService(catalog)

		summary, err := svc.ImportCSV(ctx, strings.NewReader("Tea,20,BEVERAGES\n"))
		require.NoError(t, err)
		assert.Equal(t, 0, summary.CategoriesCreated)

		items, err := catalog.ListItems(ctx, false)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, existing.ID, items[0].CategoryID)
	})

	t.Run("reads optional image and active columns", func(t *testing.T) {
		catalog, _ := newTestCatalog(t)
		svc := NewMenuService(catalog)

		csv := strings.NewReader(
			"Name,Price,Category,Image URL,Active\n" +
				"Tea,20,Beverages,https://img.example/tea.jpg,No\n" +
				"Idli,60,South Indian\n")

		summary, err := svc.ImportCSV(ctx, csv)
		require.NoError(t, err)
		assert.Equal(t, 2, summary.Imported)

		items, err := catalog.ListItems(ctx, false)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "https://img.example/tea.jpg", items[0].Image)
		assert.False(t, items[0].IsActive)
		assert.True(t, items[1].IsActive)
	})

	t.Run("blank category maps to Uncategorized", func(t *testing.T) {
		catalog, _ := newTestCatalog(t)
		svc := NewMenuService(catalog)

		summary, err := svc.ImportCSV(ctx, strings.NewReader("Tea,20\n"))
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Imported)
		assert.Equal(t, 1, summary.CategoriesCreated)

		cat, err := catalog.FindCategoryByName(ctx, "uncategorized")
		require.NoError(t, err)
		require.NotNil(t, cat)
	})

	t.Run("import always appends, never dedupes items", func(t *testing.T) {
		catalog, _ := newTestCatalog(t)
		svc := NewMenuService(catalog)

		_, err := svc.ImportCSV(ctx, strings.NewReader("Tea,20,Beverages\n"))
		require.NoError(t, err)
		_, err = svc.ImportCSV(ctx, strings.NewReader("Tea,20,Beverages\n"))
		require.NoError(t, err)

		items, err := catalog.ListItems(ctx, false)
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("reports bad rows without aborting", func(t *testing.T) {
		catalog, _ := newTestCatalog(t)
		svc := NewMenuService(catalog)

		csv := strings.NewReader(
			"Name,Price,Category\n" +
				",120,South Indian\n" +
				"Idli,not-a-price,South Indian\n" +
				"Tea,20,Beverages\n")

		summary, err := svc.ImportCSV(ctx, csv)
		require.NoError(t, err)

		assert.Equal(t, 1, summary.Imported)
		assert.Equal(t, 2, summary.Skipped)
		assert.Len(t, summary.Errors, 2)
	})

	t.Run("rejects an empty file", func(t *testing.T) {
		catalog, _ := newTestCatalog(t)
		svc := NewMenuService(catalog)

		_, err := svc.ImportCSV(ctx, strings.NewReader(""))
		assert.Error(t, err)
	})
}

func TestExportCSVRoundTrip(t *testing.T) {
	ctx := context.Background()
	catalog, _ := newTestCatalog(t)
	svc := NewMenuService(catalog)

	_, err := svc.ImportCSV(ctx, strings.NewReader("Tea,20,Beverages\nIdli,60,South Indian\n"))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, svc.ExportCSV(ctx, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Name,Price,Category,Image URL,Active", lines[0])
	assert.Contains(t, out.String(), "Tea,20,Beverages,,Yes")
	assert.Contains(t, out.String(), "Idli,60,South Indian,,Yes")
}
