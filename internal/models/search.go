package models

import (
	"time"
)

const (
	SearchTypeAll      = "all"
	SearchTypeProducts = "products"
	SearchTypeServices = "services"
)

const DefaultRadiusKm = 10.0

// Bounds is a rectangular lat/lng window. South <= North is assumed;
// the window never wraps the antimeridian.
type Bounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

func (b Bounds) Contains(lat, lng float64) bool {
	return lat >= b.South && lat <= b.North && lng >= b.West && lng <= b.East
}

// SearchQuery is the request-scoped value object consumed by the search
// engine. Optional filters are pointers so that an explicit zero is
// distinguishable from an absent parameter.
type SearchQuery struct {
	Keyword    string
	Type       string // all, products, services
	CategoryID *int
	MinPrice   *float64
	MaxPrice   *float64

	// Radius mode: center + radius. Bounds mode wins when both are set.
	Latitude  *float64
	Longitude *float64
	RadiusKm  float64

	Bounds *Bounds

	Page    int
	PerPage int
}

// HasReferencePoint reports whether a center point was supplied for
// distance annotation and distance-based sorting.
func (q SearchQuery) HasReferencePoint() bool {
	return q.Latitude != nil && q.Longitude != nil
}

// ListingFilter is the predicate set pushed down to the listing
// repositories. Bounds, when set, restricts to rows whose coordinates
// are present and inside the window.
type ListingFilter struct {
	Keyword    string
	CategoryID *int
	MinPrice   *float64
	MaxPrice   *float64
	Bounds     *Bounds
}

// SearchResult is a listing projected for search output, possibly
// annotated with the distance from the query's reference point.
type SearchResult struct {
	ID                 int       `json:"id"`
	Type               string    `json:"type"` // product or service
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	EstimatedValue     float64   `json:"estimated_value"`
	Address            *string   `json:"address,omitempty"`
	Latitude           *float64  `json:"latitude,omitempty"`
	Longitude          *float64  `json:"longitude,omitempty"`
	Images             []string  `json:"images"`
	AvailabilityStatus string    `json:"availability_status"`
	CategoryName       string    `json:"category"`
	SubcategoryName    *string   `json:"subcategory,omitempty"`
	UserID             int       `json:"user_id"`
	IsOnline           *bool     `json:"is_online,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	DistanceKm         *float64  `json:"distance,omitempty"`
}

type SearchResponse struct {
	Results         []SearchResult `json:"results"`
	Total           int            `json:"total"`
	Page            int            `json:"page"`
	Pages           int            `json:"pages"`
	PerPage         int            `json:"per_page"`
	HasLocationData bool           `json:"has_location_data"`
}

// MarkerQuery selects listings for map display. Bounds are mandatory.
type MarkerQuery struct {
	Bounds     *Bounds
	Type       string
	Keyword    string
	CategoryID *int
}

// Marker is the minimal projection of a listing for map display.
type Marker struct {
	ID           int      `json:"id"`
	Type         string   `json:"type"`
	Title        string   `json:"title"`
	Price        float64  `json:"price"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	Image        *string  `json:"image,omitempty"`
	CategoryName string   `json:"category"`
}

type MapDataResponse struct {
	Markers []Marker `json:"markers"`
	Total   int      `json:"total"`
}
