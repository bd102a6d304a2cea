package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"swapcycle/internal/models"
)

var ErrProductNotFound = models.ErrProductNotFound

type ProductRepository struct {
	DB *sql.DB
}

// ProductListFilter narrows the plain listing endpoint. All fields are
// optional; nil means no constraint.
type ProductListFilter struct {
	CategoryID    *int
	SubcategoryID *int
	UserID        *int
}

func (r *ProductRepository) CreateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	images, err := json.Marshal(p.Images)
	if err != nil {
		return models.Product{}, err
	}

	p.UpdateAvailability()
	p.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO products
			(name, description, estimated_value, product_condition, quantity, address, latitude, longitude,
			 images, availability_status, user_id, category_id, subcategory_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.DB.ExecContext(ctx, query,
		p.Name, p.Description, p.EstimatedValue, p.Condition, p.Quantity, p.Address,
		p.Latitude, p.Longitude, images, p.AvailabilityStatus,
		p.UserID, p.CategoryID, p.SubcategoryID, p.CreatedAt,
	)
	if err != nil {
		return models.Product{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.Product{}, err
	}
	p.ID = int(id)
	return p, nil
}

const productColumns = `
	p.id, p.name, p.description, p.estimated_value, p.product_condition, p.quantity,
	p.address, p.latitude, p.longitude, p.images, p.availability_status,
	p.user_id, p.category_id, p.subcategory_id, c.name, sc.name, p.created_at, p.updated_at
`

const productJoins = `
	FROM products p
	JOIN product_categories c ON p.category_id = c.id
	LEFT JOIN product_subcategories sc ON p.subcategory_id = sc.id
`

func scanProduct(row interface{ Scan(...interface{}) error }) (models.Product, error) {
	var (
		p      models.Product
		images []byte
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.EstimatedValue, &p.Condition, &p.Quantity,
		&p.Address, &p.Latitude, &p.Longitude, &images, &p.AvailabilityStatus,
		&p.UserID, &p.CategoryID, &p.SubcategoryID, &p.CategoryName, &p.SubcategoryName,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return models.Product{}, err
	}
	if len(images) > 0 {
		if err := json.Unmarshal(images, &p.Images); err != nil {
			return models.Product{}, err
		}
	}
	return p, nil
}

func (r *ProductRepository) GetProductByID(ctx context.Context, id int) (models.Product, error) {
	query := `SELECT` + productColumns + productJoins + `WHERE p.id = ?`

	p, err := scanProduct(r.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, err
	}
	return p, nil
}

func (r *ProductRepository) UpdateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	images, err := json.Marshal(p.Images)
	if err != nil {
		return models.Product{}, err
	}

	p.UpdateAvailability()
	updatedAt := time.Now().UTC()
	p.UpdatedAt = &updatedAt

	query := `
		UPDATE products
		SET name = ?, description = ?, estimated_value = ?, product_condition = ?, quantity = ?,
		    address = ?, latitude = ?, longitude = ?, images = ?, availability_status = ?,
		    category_id = ?, subcategory_id = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := r.DB.ExecContext(ctx, query,
		p.Name, p.Description, p.EstimatedValue, p.Condition, p.Quantity,
		p.Address, p.Latitude, p.Longitude, images, p.AvailabilityStatus,
		p.CategoryID, p.SubcategoryID, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return models.Product{}, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return models.Product{}, err
	}
	if rowsAffected == 0 {
		return models.Product{}, ErrProductNotFound
	}
	return r.GetProductByID(ctx, p.ID)
}

func (r *ProductRepository) DeleteProduct(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// ListProducts returns available products matching the filter, with
// repository-level pagination, plus the pre-pagination total.
func (r *ProductRepository) ListProducts(ctx context.Context, f ProductListFilter, limit, offset int) ([]models.Product, int, error) {
	conditions := []string{"p.availability_status = ?"}
	params := []interface{}{models.StatusAvailable}

	if f.CategoryID != nil {
		conditions = append(conditions, "p.category_id = ?")
		params = append(params, *f.CategoryID)
	}
	if f.SubcategoryID != nil {
		conditions = append(conditions, "p.subcategory_id = ?")
		params = append(params, *f.SubcategoryID)
	}
	if f.UserID != nil {
		conditions = append(conditions, "p.user_id = ?")
		params = append(params, *f.UserID)
	}

	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	countQuery := `SELECT COUNT(*)` + productJoins + where
	if err := r.DB.QueryRowContext(ctx, countQuery, params...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT` + productColumns + productJoins + where + ` ORDER BY p.created_at DESC LIMIT ? OFFSET ?`
	params = append(params, limit, offset)

	rows, err := r.DB.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

// FilterAvailable applies the search engine's pushed-down predicates:
// availability, keyword, category, price range and an optional bounds
// window. Rows without coordinates never match a bounds window.
func (r *ProductRepository) FilterAvailable(ctx context.Context, f models.ListingFilter) ([]models.Product, error) {
	conditions, params := listingConditions("p", f)

	query := `SELECT` + productColumns + productJoins +
		" WHERE " + strings.Join(conditions, " AND ") +
		` ORDER BY p.created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// MarkersInBounds projects available products inside the window down to
// map markers. Capped and returned in retrieval order (by id).
func (r *ProductRepository) MarkersInBounds(ctx context.Context, q models.MarkerQuery, limit int) ([]models.Marker, error) {
	f := models.ListingFilter{
		Keyword:    q.Keyword,
		CategoryID: q.CategoryID,
		Bounds:     q.Bounds,
	}
	conditions, params := listingConditions("p", f)

	query := `
		SELECT p.id, p.name, p.estimated_value, p.latitude, p.longitude, p.images, c.name
	` + productJoins +
		" WHERE " + strings.Join(conditions, " AND ") +
		` ORDER BY p.id LIMIT ?`
	params = append(params, limit)

	rows, err := r.DB.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var markers []models.Marker
	for rows.Next() {
		m, err := scanMarker(rows, models.CategoryTypeProduct)
		if err != nil {
			return nil, err
		}
		markers = append(markers, m)
	}
	return markers, rows.Err()
}

// MarkUnavailable takes a product out of circulation after an accepted
// trade.
func (r *ProductRepository) MarkUnavailable(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE products SET availability_status = ?, updated_at = ? WHERE id = ?`,
		models.StatusUnavailable, time.Now().UTC(), id,
	)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// listingConditions assembles the WHERE clauses shared by product and
// service search pushdown. alias is the listing table alias.
func listingConditions(alias string, f models.ListingFilter) ([]string, []interface{}) {
	conditions := []string{fmt.Sprintf("%s.availability_status = ?", alias)}
	params := []interface{}{models.StatusAvailable}

	if f.Keyword != "" {
		conditions = append(conditions,
			fmt.Sprintf("(LOWER(%s.name) LIKE ? OR LOWER(%s.description) LIKE ?)", alias, alias))
		pattern := "%" + strings.ToLower(f.Keyword) + "%"
		params = append(params, pattern, pattern)
	}
	if f.CategoryID != nil {
		conditions = append(conditions, fmt.Sprintf("%s.category_id = ?", alias))
		params = append(params, *f.CategoryID)
	}
	if f.MinPrice != nil {
		conditions = append(conditions, fmt.Sprintf("%s.estimated_value >= ?", alias))
		params = append(params, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		conditions = append(conditions, fmt.Sprintf("%s.estimated_value <= ?", alias))
		params = append(params, *f.MaxPrice)
	}
	if f.Bounds != nil {
		conditions = append(conditions, fmt.Sprintf(
			"%s.latitude IS NOT NULL AND %s.longitude IS NOT NULL AND %s.latitude BETWEEN ? AND ? AND %s.longitude BETWEEN ? AND ?",
			alias, alias, alias, alias))
		params = append(params, f.Bounds.South, f.Bounds.North, f.Bounds.West, f.Bounds.East)
	}
	return conditions, params
}

func scanMarker(rows *sql.Rows, markerType string) (models.Marker, error) {
	var (
		m      models.Marker
		images []byte
	)
	if err := rows.Scan(&m.ID, &m.Title, &m.Price, &m.Latitude, &m.Longitude, &images, &m.CategoryName); err != nil {
		return models.Marker{}, err
	}
	m.Type = markerType
	if len(images) > 0 {
		var paths []string
		if err := json.Unmarshal(images, &paths); err == nil && len(paths) > 0 {
			m.Image = &paths[0]
		}
	}
	return m, nil
}
