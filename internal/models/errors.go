package models

import (
	"errors"
)

var (
	ErrNoRecord           = errors.New("models: no matching record found")
	ErrInvalidCredentials = errors.New("models: invalid credentials")
	ErrDuplicateEmail     = errors.New("models: duplicate email")
	ErrDuplicateUsername  = errors.New("models: duplicate username")
	ErrProductNotFound    = errors.New("models: product not found")
	ErrServiceNotFound    = errors.New("models: service not found")
	ErrCategoryNotFound   = errors.New("models: category not found")
	ErrUserNotFound       = errors.New("models: user not found")
	ErrTradeNotFound      = errors.New("models: trade not found")
	ErrFavoriteNotFound   = errors.New("models: favorite not found")
	ErrDuplicateFavorite  = errors.New("models: listing already in favorites")
	ErrNotOwner           = errors.New("models: listing belongs to another user")
)

// Request-level validation errors surfaced as 400 responses.
var (
	ErrMapBoundsRequired  = errors.New("map bounds required")
	ErrAddressRequired    = errors.New("physical services require an address")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrInvalidTradeItems  = errors.New("trade must have exactly one offered and one requested item")
	ErrTradeNotPending    = errors.New("trade is no longer pending")
)
