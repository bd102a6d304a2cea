package repositories

import (
	"context"
	"database/sql"

	"swapcycle/internal/models"
)

var ErrCategoryNotFound = models.ErrCategoryNotFound

type CategoryRepository struct {
	DB *sql.DB
}

// tableNames resolves the category/subcategory/listing tables for one
// entity type.
func tableNames(categoryType string) (categories, subcategories, listings string) {
	if categoryType == models.CategoryTypeService {
		return "service_categories", "service_subcategories", "services"
	}
	return "product_categories", "product_subcategories", "products"
}

// ListCategories returns the categories of one entity type with nested
// subcategories. When withCounts is set, each category also carries the
// number of currently-available listings.
func (r *CategoryRepository) ListCategories(ctx context.Context, categoryType string, withCounts bool) ([]models.Category, error) {
	catTable, subTable, listingTable := tableNames(categoryType)

	query := `SELECT id, name, created_at FROM ` + catTable + ` ORDER BY name`
	if withCounts {
		query = `
			SELECT c.id, c.name, c.created_at, COUNT(l.id)
			FROM ` + catTable + ` c
			LEFT JOIN ` + listingTable + ` l ON l.category_id = c.id AND l.availability_status = ?
			GROUP BY c.id, c.name, c.created_at
			ORDER BY c.name
		`
	}

	var (
		rows *sql.Rows
		err  error
	)
	if withCounts {
		rows, err = r.DB.QueryContext(ctx, query, models.StatusAvailable)
	} else {
		rows, err = r.DB.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	index := make(map[int]int)
	for rows.Next() {
		c := models.Category{Type: categoryType}
		if withCounts {
			var count int
			if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &count); err != nil {
				return nil, err
			}
			c.Count = &count
		} else {
			if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
				return nil, err
			}
		}
		index[c.ID] = len(categories)
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	subRows, err := r.DB.QueryContext(ctx,
		`SELECT id, category_id, name, created_at FROM `+subTable+` ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer subRows.Close()

	for subRows.Next() {
		var sub models.Subcategory
		if err := subRows.Scan(&sub.ID, &sub.CategoryID, &sub.Name, &sub.CreatedAt); err != nil {
			return nil, err
		}
		if i, ok := index[sub.CategoryID]; ok {
			categories[i].Subcategories = append(categories[i].Subcategories, sub)
		}
	}
	return categories, subRows.Err()
}

// CategoryExists reports whether the category id exists for the type.
func (r *CategoryRepository) CategoryExists(ctx context.Context, categoryType string, id int) (bool, error) {
	catTable, _, _ := tableNames(categoryType)

	var found int
	err := r.DB.QueryRowContext(ctx, `SELECT 1 FROM `+catTable+` WHERE id = ?`, id).Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// SubcategoryBelongs reports whether the subcategory exists and belongs
// to the given category.
func (r *CategoryRepository) SubcategoryBelongs(ctx context.Context, categoryType string, categoryID, subcategoryID int) (bool, error) {
	_, subTable, _ := tableNames(categoryType)

	var found int
	err := r.DB.QueryRowContext(ctx,
		`SELECT 1 FROM `+subTable+` WHERE id = ? AND category_id = ?`,
		subcategoryID, categoryID,
	).Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
