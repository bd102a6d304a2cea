package models

import (
	"time"
)

const (
	StatusAvailable   = "available"
	StatusUnavailable = "unavailable"
)

type Product struct {
	ID                 int        `json:"id"`
	Name               string     `json:"name"`
	Description        string     `json:"description"`
	EstimatedValue     float64    `json:"estimated_value"`
	Condition          string     `json:"condition"` // new, like-new, good, fair, poor
	Quantity           int        `json:"quantity"`
	Address            string     `json:"address"`
	Latitude           *float64   `json:"latitude,omitempty"`
	Longitude          *float64   `json:"longitude,omitempty"`
	Images             []string   `json:"images"`
	AvailabilityStatus string     `json:"availability_status"`
	UserID             int        `json:"user_id"`
	CategoryID         int        `json:"category_id"`
	SubcategoryID      *int       `json:"subcategory_id,omitempty"`
	CategoryName       string     `json:"category"`
	SubcategoryName    *string    `json:"subcategory,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"`
}

// UpdateAvailability derives the availability status from the remaining
// quantity. A product traded away to zero drops out of search.
func (p *Product) UpdateAvailability() {
	if p.Quantity <= 0 {
		p.AvailabilityStatus = StatusUnavailable
	} else {
		p.AvailabilityStatus = StatusAvailable
	}
}

type ProductListResponse struct {
	Products    []Product `json:"products"`
	Total       int       `json:"total"`
	Pages       int       `json:"pages"`
	CurrentPage int       `json:"current_page"`
}
