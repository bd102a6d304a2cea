package models

import (
	"time"
)

type Service struct {
	ID                 int        `json:"id"`
	Name               string     `json:"name"`
	Description        string     `json:"description"`
	EstimatedValue     float64    `json:"estimated_value"`
	IsOnline           bool       `json:"is_online"`
	Address            *string    `json:"address,omitempty"`
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

// NormalizeLocation clears location data for online services. Online
// services never carry coordinates and never appear in geo search.
func (s *Service) NormalizeLocation() {
	if s.IsOnline {
		s.Address = nil
		s.Latitude = nil
		s.Longitude = nil
	}
}

type ServiceListResponse struct {
	Services    []Service `json:"services"`
	Total       int       `json:"total"`
	Pages       int       `json:"pages"`
	CurrentPage int       `json:"current_page"`
}
