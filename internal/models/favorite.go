package models

import (
	"time"
)

// Favorite references exactly one of ProductID or ServiceID.
type Favorite struct {
	ID        int           `json:"id"`
	UserID    int           `json:"user_id"`
	ProductID *int          `json:"product_id,omitempty"`
	ServiceID *int          `json:"service_id,omitempty"`
	ItemType  string        `json:"item_type"`
	Item      *FavoriteItem `json:"item_data,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

type FavoriteItem struct {
	ID                 int      `json:"id"`
	Name               string   `json:"name"`
	EstimatedValue     float64  `json:"estimated_value"`
	AvailabilityStatus string   `json:"availability_status"`
	Images             []string `json:"images"`
	Location           *string  `json:"location,omitempty"`
	IsOnline           *bool    `json:"is_online,omitempty"`
}
