package repositories

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"swapcycle/internal/models"
)

var ErrUserNotFound = models.ErrUserNotFound

type UserRepository struct {
	DB *sql.DB
}

func (r *UserRepository) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	u.CreatedAt = time.Now().UTC()
	if u.PreferredCurrency == "" {
		u.PreferredCurrency = "USD"
	}

	query := `
		INSERT INTO users
			(email, username, password_hash, name, surname, address, latitude, longitude, preferred_currency, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.DB.ExecContext(ctx, query,
		u.Email, u.Username, u.PasswordHash, u.Name, u.Surname, u.Address,
		u.Latitude, u.Longitude, u.PreferredCurrency, u.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "email") && isDuplicateErr(err) {
			return models.User{}, models.ErrDuplicateEmail
		}
		if isDuplicateErr(err) {
			return models.User{}, models.ErrDuplicateUsername
		}
		return models.User{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.User{}, err
	}
	u.ID = int(id)
	return u, nil
}

func isDuplicateErr(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}

const userColumns = `
	id, email, username, password_hash, name, surname, address,
	latitude, longitude, profile_picture, preferred_currency, fcm_token, created_at, updated_at
`

func scanUser(row interface{ Scan(...interface{}) error }) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Name, &u.Surname, &u.Address,
		&u.Latitude, &u.Longitude, &u.ProfilePicture, &u.PreferredCurrency, &u.FCMToken,
		&u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (models.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx, `SELECT`+userColumns+`FROM users WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx, `SELECT`+userColumns+`FROM users WHERE email = ?`, email))
	if err == sql.ErrNoRows {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, u models.User) (models.User, error) {
	updatedAt := time.Now().UTC()
	u.UpdatedAt = &updatedAt

	query := `
		UPDATE users
		SET name = ?, surname = ?, address = ?, latitude = ?, longitude = ?,
		    profile_picture = ?, preferred_currency = ?, fcm_token = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := r.DB.ExecContext(ctx, query,
		u.Name, u.Surname, u.Address, u.Latitude, u.Longitude,
		u.ProfilePicture, u.PreferredCurrency, u.FCMToken, u.UpdatedAt, u.ID,
	)
	if err != nil {
		return models.User{}, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return models.User{}, err
	}
	if rowsAffected == 0 {
		return models.User{}, ErrUserNotFound
	}
	return r.GetUserByID(ctx, u.ID)
}

func (r *UserRepository) SaveSession(ctx context.Context, s models.Session) error {
	query := `
		INSERT INTO sessions (user_id, refresh_token, expires_at)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE refresh_token = VALUES(refresh_token), expires_at = VALUES(expires_at)
	`
	_, err := r.DB.ExecContext(ctx, query, s.UserID, s.RefreshToken, s.ExpiresAt)
	return err
}

func (r *UserRepository) GetSessionByToken(ctx context.Context, refreshToken string) (models.Session, error) {
	var s models.Session
	err := r.DB.QueryRowContext(ctx,
		`SELECT user_id, refresh_token, expires_at FROM sessions WHERE refresh_token = ?`,
		refreshToken,
	).Scan(&s.UserID, &s.RefreshToken, &s.ExpiresAt)
	if err == sql.ErrNoRows {
		return models.Session{}, nil
	}
	if err != nil {
		return models.Session{}, err
	}
	return s, nil
}
