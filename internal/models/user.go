package models

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

type User struct {
	ID                int        `json:"id"`
	Email             string     `json:"email"`
	Username          string     `json:"username"`
	PasswordHash      string     `json:"-"`
	Name              string     `json:"name"`
	Surname           string     `json:"surname"`
	Address           string     `json:"address"`
	Latitude          *float64   `json:"latitude,omitempty"`
	Longitude         *float64   `json:"longitude,omitempty"`
	ProfilePicture    *string    `json:"profile_picture,omitempty"`
	PreferredCurrency string     `json:"preferred_currency"`
	FCMToken          *string    `json:"-"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
}

type Session struct {
	UserID       int
	RefreshToken string
	ExpiresAt    time.Time
}

type Claims struct {
	UserID uint `json:"user_id"`
	jwt.StandardClaims
}

type SignUpRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Address  string `json:"address"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
