package models

import (
	"time"
)

const (
	CategoryTypeProduct = "product"
	CategoryTypeService = "service"
)

type Category struct {
	ID            int           `json:"id"`
	Name          string        `json:"name"`
	Type          string        `json:"type"` // product or service
	Subcategories []Subcategory `json:"subcategories,omitempty"`
	Count         *int          `json:"count,omitempty"` // available listings, when requested
	CreatedAt     time.Time     `json:"created_at"`
}

type Subcategory struct {
	ID         int       `json:"id"`
	CategoryID int       `json:"category_id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}
