package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"swapcycle/internal/models"
)

var ErrFavoriteNotFound = models.ErrFavoriteNotFound

type FavoriteRepository struct {
	DB *sql.DB
}

func (r *FavoriteRepository) AddFavorite(ctx context.Context, f models.Favorite) (models.Favorite, error) {
	f.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO favorites (user_id, product_id, service_id, created_at)
		VALUES (?, ?, ?, ?)
	`
	result, err := r.DB.ExecContext(ctx, query, f.UserID, f.ProductID, f.ServiceID, f.CreatedAt)
	if err != nil {
		return models.Favorite{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.Favorite{}, err
	}
	f.ID = int(id)
	return f, nil
}

func (r *FavoriteRepository) RemoveFavorite(ctx context.Context, userID, favoriteID int) error {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM favorites WHERE id = ? AND user_id = ?`, favoriteID, userID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

func (r *FavoriteRepository) IsFavorite(ctx context.Context, userID int, productID, serviceID *int) (bool, error) {
	var (
		query string
		arg   int
	)
	switch {
	case productID != nil:
		query = `SELECT 1 FROM favorites WHERE user_id = ? AND product_id = ?`
		arg = *productID
	case serviceID != nil:
		query = `SELECT 1 FROM favorites WHERE user_id = ? AND service_id = ?`
		arg = *serviceID
	default:
		return false, nil
	}

	var found int
	err := r.DB.QueryRowContext(ctx, query, userID, arg).Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListFavoritesByUser returns the user's favorites with an embedded
// listing summary, newest first. itemType optionally narrows to
// product or service favorites.
func (r *FavoriteRepository) ListFavoritesByUser(ctx context.Context, userID int, itemType string) ([]models.Favorite, error) {
	query := `
		SELECT f.id, f.user_id, f.product_id, f.service_id, f.created_at,
		       p.name, p.estimated_value, p.availability_status, p.images, p.address,
		       s.name, s.estimated_value, s.availability_status, s.images, s.address, s.is_online
		FROM favorites f
		LEFT JOIN products p ON f.product_id = p.id
		LEFT JOIN services s ON f.service_id = s.id
		WHERE f.user_id = ?
	`
	switch itemType {
	case models.CategoryTypeProduct:
		query += ` AND f.product_id IS NOT NULL`
	case models.CategoryTypeService:
		query += ` AND f.service_id IS NOT NULL`
	}
	query += ` ORDER BY f.created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var favorites []models.Favorite
	for rows.Next() {
		var (
			f models.Favorite

			pName   *string
			pValue  *float64
			pStatus *string
			pImages []byte
			pAddr   *string

			sName   *string
			sValue  *float64
			sStatus *string
			sImages []byte
			sAddr   *string
			sOnline *bool
		)
		err := rows.Scan(&f.ID, &f.UserID, &f.ProductID, &f.ServiceID, &f.CreatedAt,
			&pName, &pValue, &pStatus, &pImages, &pAddr,
			&sName, &sValue, &sStatus, &sImages, &sAddr, &sOnline)
		if err != nil {
			return nil, err
		}

		switch {
		case f.ProductID != nil:
			f.ItemType = models.CategoryTypeProduct
			if pName != nil {
				f.Item = &models.FavoriteItem{
					ID:                 *f.ProductID,
					Name:               *pName,
					EstimatedValue:     *pValue,
					AvailabilityStatus: *pStatus,
					Images:             decodeImagePaths(pImages),
					Location:           pAddr,
				}
			}
		case f.ServiceID != nil:
			f.ItemType = models.CategoryTypeService
			if sName != nil {
				item := &models.FavoriteItem{
					ID:                 *f.ServiceID,
					Name:               *sName,
					EstimatedValue:     *sValue,
					AvailabilityStatus: *sStatus,
					Images:             decodeImagePaths(sImages),
					IsOnline:           sOnline,
				}
				if sOnline == nil || !*sOnline {
					item.Location = sAddr
				}
				f.Item = item
			}
		}
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}

func decodeImagePaths(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	var paths []string
	if err := json.Unmarshal(raw, &paths); err != nil {
		return nil
	}
	return paths
}
