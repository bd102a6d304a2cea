package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"swapcycle/internal/models"
)

var ErrServiceNotFound = models.ErrServiceNotFound

type ServiceRepository struct {
	DB *sql.DB
}

type ServiceListFilter struct {
	CategoryID    *int
	SubcategoryID *int
	UserID        *int
	IsOnline      *bool
}

func (r *ServiceRepository) CreateService(ctx context.Context, s models.Service) (models.Service, error) {
	images, err := json.Marshal(s.Images)
	if err != nil {
		return models.Service{}, err
	}

	s.NormalizeLocation()
	s.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO services
			(name, description, estimated_value, is_online, address, latitude, longitude,
			 images, availability_status, user_id, category_id, subcategory_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.DB.ExecContext(ctx, query,
		s.Name, s.Description, s.EstimatedValue, s.IsOnline, s.Address, s.Latitude, s.Longitude,
		images, s.AvailabilityStatus, s.UserID, s.CategoryID, s.SubcategoryID, s.CreatedAt,
	)
	if err != nil {
		return models.Service{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.Service{}, err
	}
	s.ID = int(id)
	return s, nil
}

const serviceColumns = `
	s.id, s.name, s.description, s.estimated_value, s.is_online,
	s.address, s.latitude, s.longitude, s.images, s.availability_status,
	s.user_id, s.category_id, s.subcategory_id, c.name, sc.name, s.created_at, s.updated_at
`

const serviceJoins = `
	FROM services s
	JOIN service_categories c ON s.category_id = c.id
	LEFT JOIN service_subcategories sc ON s.subcategory_id = sc.id
`

func scanService(row interface{ Scan(...interface{}) error }) (models.Service, error) {
	var (
		s      models.Service
		images []byte
	)
	err := row.Scan(
		&s.ID, &s.Name, &s.Description, &s.EstimatedValue, &s.IsOnline,
		&s.Address, &s.Latitude, &s.Longitude, &images, &s.AvailabilityStatus,
		&s.UserID, &s.CategoryID, &s.SubcategoryID, &s.CategoryName, &s.SubcategoryName,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return models.Service{}, err
	}
	if len(images) > 0 {
		if err := json.Unmarshal(images, &s.Images); err != nil {
			return models.Service{}, err
		}
	}
	return s, nil
}

func (r *ServiceRepository) GetServiceByID(ctx context.Context, id int) (models.Service, error) {
	query := `SELECT` + serviceColumns + serviceJoins + `WHERE s.id = ?`

	s, err := scanService(r.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return models.Service{}, ErrServiceNotFound
	}
	if err != nil {
		return models.Service{}, err
	}
	return s, nil
}

func (r *ServiceRepository) UpdateService(ctx context.Context, s models.Service) (models.Service, error) {
	images, err := json.Marshal(s.Images)
	if err != nil {
		return models.Service{}, err
	}

	s.NormalizeLocation()
	updatedAt := time.Now().UTC()
	s.UpdatedAt = &updatedAt

	query := `
		UPDATE services
		SET name = ?, description = ?, estimated_value = ?, is_online = ?, address = ?,
		    latitude = ?, longitude = ?, images = ?, availability_status = ?,
		    category_id = ?, subcategory_id = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := r.DB.ExecContext(ctx, query,
		s.Name, s.Description, s.EstimatedValue, s.IsOnline, s.Address,
		s.Latitude, s.Longitude, images, s.AvailabilityStatus,
		s.CategoryID, s.SubcategoryID, s.UpdatedAt, s.ID,
	)
	if err != nil {
		return models.Service{}, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return models.Service{}, err
	}
	if rowsAffected == 0 {
		return models.Service{}, ErrServiceNotFound
	}
	return r.GetServiceByID(ctx, s.ID)
}

func (r *ServiceRepository) DeleteService(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM services WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrServiceNotFound
	}
	return nil
}

func (r *ServiceRepository) ListServices(ctx context.Context, f ServiceListFilter, limit, offset int) ([]models.Service, int, error) {
	conditions := []string{"s.availability_status = ?"}
	params := []interface{}{models.StatusAvailable}

	if f.CategoryID != nil {
		conditions = append(conditions, "s.category_id = ?")
		params = append(params, *f.CategoryID)
	}
	if f.SubcategoryID != nil {
		conditions = append(conditions, "s.subcategory_id = ?")
		params = append(params, *f.SubcategoryID)
	}
	if f.UserID != nil {
		conditions = append(conditions, "s.user_id = ?")
		params = append(params, *f.UserID)
	}
	if f.IsOnline != nil {
		conditions = append(conditions, "s.is_online = ?")
		params = append(params, *f.IsOnline)
	}

	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	countQuery := `SELECT COUNT(*)` + serviceJoins + where
	if err := r.DB.QueryRowContext(ctx, countQuery, params...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT` + serviceColumns + serviceJoins + where + ` ORDER BY s.created_at DESC LIMIT ? OFFSET ?`
	params = append(params, limit, offset)

	rows, err := r.DB.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var services []models.Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, 0, err
		}
		services = append(services, s)
	}
	return services, total, rows.Err()
}

// FilterAvailablePhysical is the search engine's pushdown for services.
// Online services are never geo-searchable, so the physical constraint
// is baked in here rather than left to the caller.
func (r *ServiceRepository) FilterAvailablePhysical(ctx context.Context, f models.ListingFilter) ([]models.Service, error) {
	conditions, params := listingConditions("s", f)
	conditions = append(conditions, "s.is_online = FALSE")

	query := `SELECT` + serviceColumns + serviceJoins +
		" WHERE " + strings.Join(conditions, " AND ") +
		` ORDER BY s.created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []models.Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

// FilterOnline lists available online services with repository-level
// pagination. Location predicates do not apply here.
func (r *ServiceRepository) FilterOnline(ctx context.Context, f models.ListingFilter, limit, offset int) ([]models.Service, int, error) {
	f.Bounds = nil
	conditions, params := listingConditions("s", f)
	conditions = append(conditions, "s.is_online = TRUE")

	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	countQuery := `SELECT COUNT(*)` + serviceJoins + where
	if err := r.DB.QueryRowContext(ctx, countQuery, params...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT` + serviceColumns + serviceJoins + where + ` ORDER BY s.created_at DESC LIMIT ? OFFSET ?`
	params = append(params, limit, offset)

	rows, err := r.DB.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var services []models.Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, 0, err
		}
		services = append(services, s)
	}
	return services, total, rows.Err()
}

func (r *ServiceRepository) MarkersInBounds(ctx context.Context, q models.MarkerQuery, limit int) ([]models.Marker, error) {
	f := models.ListingFilter{
		Keyword:    q.Keyword,
		CategoryID: q.CategoryID,
		Bounds:     q.Bounds,
	}
	conditions, params := listingConditions("s", f)
	conditions = append(conditions, "s.is_online = FALSE")

	query := `
		SELECT s.id, s.name, s.estimated_value, s.latitude, s.longitude, s.images, c.name
	` + serviceJoins +
		" WHERE " + strings.Join(conditions, " AND ") +
		` ORDER BY s.id LIMIT ?`
	params = append(params, limit)

	rows, err := r.DB.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var markers []models.Marker
	for rows.Next() {
		m, err := scanMarker(rows, models.CategoryTypeService)
		if err != nil {
			return nil, err
		}
		markers = append(markers, m)
	}
	return markers, rows.Err()
}

func (r *ServiceRepository) MarkUnavailable(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE services SET availability_status = ?, updated_at = ? WHERE id = ?`,
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
		return ErrServiceNotFound
	}
	return nil
}
