package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sangkips/restropos-api/pkg/apperror"
)

// csvHeader is the column layout for menu import and export. Import accepts
// rows with only the first two columns filled.
var csvHeader = []string{"Name", "Price", "Category", "Image URL", "Active"}

// ImportSummary reports what a CSV import did.
type ImportSummary struct {
	Imported          int      `json:"imported"`
	Skipped           int      `json:"skipped"`
	CategoriesCreated int      `json:"categoriesCreated"`
	Errors            []string `json:"errors,omitempty"`
}

// MenuService moves the catalog in and out of CSV. Import always appends,
// matching rows to categories case-insensitively and creating categories
// that do not exist yet.
type MenuService struct {
	catalog *CatalogService
}

// NewMenuService creates a new menu service
func NewMenuService(catalog *CatalogService) *MenuService {
	return &MenuService{catalog: catalog}
}

// ImportCSV reads csvHeader-shaped rows and appends them to the catalog.
// Category, image and active are optional; a blank category maps to
// "Uncategorized" and active defaults to yes unless the column says "no".
// Rows with a blank name or an unparsable price are skipped and reported in
// the summary rather than aborting the import.
func (s *MenuService) ImportCSV(ctx context.Context, r io.Reader) (*ImportSummary, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid CSV file")
	}
	if len(records) == 0 {
		return nil, apperror.NewBadRequestError("CSV file is empty")
	}

	start := 0
	if isHeaderRow(records[0]) {
		start = 1
	}

	summary := &ImportSummary{}
	for i, row := range records[start:] {
		lineNo := start + i + 1
		if len(row) < 2 {
			summary.Skipped++
			summary.Errors = append(summary.Errors, fmt.Sprintf("line %d: expected at least name and price", lineNo))
			continue
		}

		name := strings.TrimSpace(row[0])
		if name == "" {
			summary.Skipped++
			summary.Errors = append(summary.Errors, fmt.Sprintf("line %d: missing name", lineNo))
			continue
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil || price < 0 {
			summary.Skipped++
			summary.Errors = append(summary.Errors, fmt.Sprintf("line %d: invalid price %q", lineNo, row[1]))
			continue
		}

		categoryName := column(row, 2)
		if categoryName == "" {
			categoryName = "Uncategorized"
		}
		image := column(row, 3)
		active := !strings.EqualFold(column(row, 4), "no")

		category, err := s.catalog.FindCategoryByName(ctx, categoryName)
		if err != nil {
			return nil, err
		}
		if category == nil {
			category, err = s.catalog.CreateCategory(ctx, categoryName)
			if err != nil {
				return nil, err
			}
			summary.CategoriesCreated++
		}

		if _, err := s.catalog.CreateItem(ctx, &CreateItemInput{
			Name:       name,
			Price:      price,
			CategoryID: category.ID,
			Image:      image,
			IsActive:   active,
		}); err != nil {
			return nil, err
		}
		summary.Imported++
	}

	return summary, nil
}

// ExportCSV writes the whole catalog, including inactive items, in the same
// layout ImportCSV reads.
func (s *MenuService) ExportCSV(ctx context.Context, w io.Writer) error {
	items, err := s.catalog.ListItems(ctx, false)
	if err != nil {
		return err
	}
	categories, err := s.catalog.ListCategories(ctx)
	if err != nil {
		return err
	}

	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, item := range items {
		active := "Yes"
		if !item.IsActive {
			active = "No"
		}
		record := []string{
			item.Name,
			strconv.FormatFloat(item.Price, 'f', -1, 64),
			names[item.CategoryID],
			item.Image,
			active,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// column returns the trimmed cell at i, or "" when the row is too short.
func column(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isHeaderRow(row []string) bool {
	if len(row) == 0 {
		return false
	}
	first := strings.TrimSpace(strings.ToLower(row[0]))
	return first == "name" || first == "item" || first == "item name"
}
