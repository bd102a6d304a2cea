package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"swapcycle/internal/geo"
	"swapcycle/internal/models"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100

	// markerCap bounds map payload size per entity type.
	markerCap = 100
)

// ProductSource is the read access the search engine needs over the
// product collection.
type ProductSource interface {
	FilterAvailable(ctx context.Context, f models.ListingFilter) ([]models.Product, error)
	MarkersInBounds(ctx context.Context, q models.MarkerQuery, limit int) ([]models.Marker, error)
}

// ServiceSource is the read access the search engine needs over the
// service collection. Physical and online services are separate paths:
// online services never participate in geo search.
type ServiceSource interface {
	FilterAvailablePhysical(ctx context.Context, f models.ListingFilter) ([]models.Service, error)
	FilterOnline(ctx context.Context, f models.ListingFilter, limit, offset int) ([]models.Service, int, error)
	MarkersInBounds(ctx context.Context, q models.MarkerQuery, limit int) ([]models.Marker, error)
}

// SearchService fuses keyword, category, price and location filtering
// across products and physical services, merges, ranks and paginates.
type SearchService struct {
	Products ProductSource
	Services ServiceSource
}

// Search runs the multi-entity search.
//
// Location mode precedence: an explicit bounds window wins over a
// center+radius query. Radius mode applies a rectangular bounding-box
// prefilter at the repository and an exact haversine post-filter here,
// so results are true circle members, not box members.
func (s *SearchService) Search(ctx context.Context, q models.SearchQuery) (models.SearchResponse, error) {
	q = normalizeQuery(q)

	resp := models.SearchResponse{
		Results:         []models.SearchResult{},
		Page:            q.Page,
		PerPage:         q.PerPage,
		HasLocationData: q.HasReferencePoint(),
	}

	// A contradictory price range matches nothing rather than erroring.
	if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
		return resp, nil
	}

	filter := models.ListingFilter{
		Keyword:    q.Keyword,
		CategoryID: q.CategoryID,
		MinPrice:   q.MinPrice,
		MaxPrice:   q.MaxPrice,
	}

	// Exactly one location strategy applies.
	exactRadius := false
	radius := q.RadiusKm
	switch {
	case q.Bounds != nil:
		filter.Bounds = q.Bounds
	case q.HasReferencePoint():
		if radius <= 0 {
			radius = models.DefaultRadiusKm
		}
		box := geo.BoundingBox(*q.Latitude, *q.Longitude, radius)
		filter.Bounds = &box
		exactRadius = true
	}

	var results []models.SearchResult

	if q.Type == models.SearchTypeAll || q.Type == models.SearchTypeProducts {
		products, err := s.Products.FilterAvailable(ctx, filter)
		if err != nil {
			return models.SearchResponse{}, fmt.Errorf("product search: %w", err)
		}
		for _, p := range products {
			result := productResult(p)
			annotateDistance(&result, q)
			if exactRadius && outsideRadius(result.DistanceKm, radius) {
				continue
			}
			results = append(results, result)
		}
	}

	if q.Type == models.SearchTypeAll || q.Type == models.SearchTypeServices {
		services, err := s.Services.FilterAvailablePhysical(ctx, filter)
		if err != nil {
			return models.SearchResponse{}, fmt.Errorf("service search: %w", err)
		}
		for _, svc := range services {
			result := serviceResult(svc)
			annotateDistance(&result, q)
			if exactRadius && outsideRadius(result.DistanceKm, radius) {
				continue
			}
			results = append(results, result)
		}
	}

	sortResults(results, q.HasReferencePoint())

	resp.Total = len(results)
	resp.Pages = pageCount(resp.Total, q.PerPage)
	resp.Results = paginate(results, q.Page, q.PerPage)
	return resp, nil
}

// SearchOnlineServices lists available online services. Location
// parameters never apply; pagination happens at the repository.
func (s *SearchService) SearchOnlineServices(ctx context.Context, q models.SearchQuery) (models.SearchResponse, error) {
	q = normalizeQuery(q)

	resp := models.SearchResponse{
		Results: []models.SearchResult{},
		Page:    q.Page,
		PerPage: q.PerPage,
	}

	if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
		return resp, nil
	}

	filter := models.ListingFilter{
		Keyword:    q.Keyword,
		CategoryID: q.CategoryID,
		MinPrice:   q.MinPrice,
		MaxPrice:   q.MaxPrice,
	}

	offset := (q.Page - 1) * q.PerPage
	services, total, err := s.Services.FilterOnline(ctx, filter, q.PerPage, offset)
	if err != nil {
		return models.SearchResponse{}, fmt.Errorf("online service search: %w", err)
	}

	for _, svc := range services {
		resp.Results = append(resp.Results, serviceResult(svc))
	}
	resp.Total = total
	resp.Pages = pageCount(total, q.PerPage)
	return resp, nil
}

// MapMarkers projects listings inside a mandatory bounds window down to
// map markers, capped per entity type, in retrieval order.
func (s *SearchService) MapMarkers(ctx context.Context, q models.MarkerQuery) (models.MapDataResponse, error) {
	if q.Bounds == nil {
		return models.MapDataResponse{}, models.ErrMapBoundsRequired
	}

	searchType := q.Type
	if searchType != models.SearchTypeProducts && searchType != models.SearchTypeServices {
		searchType = models.SearchTypeAll
	}

	markers := []models.Marker{}

	if searchType == models.SearchTypeAll || searchType == models.SearchTypeProducts {
		productMarkers, err := s.Products.MarkersInBounds(ctx, q, markerCap)
		if err != nil {
			return models.MapDataResponse{}, fmt.Errorf("product markers: %w", err)
		}
		markers = append(markers, productMarkers...)
	}

	if searchType == models.SearchTypeAll || searchType == models.SearchTypeServices {
		serviceMarkers, err := s.Services.MarkersInBounds(ctx, q, markerCap)
		if err != nil {
			return models.MapDataResponse{}, fmt.Errorf("service markers: %w", err)
		}
		markers = append(markers, serviceMarkers...)
	}

	return models.MapDataResponse{Markers: markers, Total: len(markers)}, nil
}

func normalizeQuery(q models.SearchQuery) models.SearchQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage <= 0 {
		q.PerPage = defaultPerPage
	}
	if q.PerPage > maxPerPage {
		q.PerPage = maxPerPage
	}
	if q.Type != models.SearchTypeProducts && q.Type != models.SearchTypeServices {
		q.Type = models.SearchTypeAll
	}
	return q
}

func productResult(p models.Product) models.SearchResult {
	address := p.Address
	return models.SearchResult{
		ID:                 p.ID,
		Type:               models.CategoryTypeProduct,
		Name:               p.Name,
		Description:        p.Description,
		EstimatedValue:     p.EstimatedValue,
		Address:            &address,
		Latitude:           p.Latitude,
		Longitude:          p.Longitude,
		Images:             p.Images,
		AvailabilityStatus: p.AvailabilityStatus,
		CategoryName:       p.CategoryName,
		SubcategoryName:    p.SubcategoryName,
		UserID:             p.UserID,
		CreatedAt:          p.CreatedAt,
	}
}

func serviceResult(s models.Service) models.SearchResult {
	isOnline := s.IsOnline
	return models.SearchResult{
		ID:                 s.ID,
		Type:               models.CategoryTypeService,
		Name:               s.Name,
		Description:        s.Description,
		EstimatedValue:     s.EstimatedValue,
		Address:            s.Address,
		Latitude:           s.Latitude,
		Longitude:          s.Longitude,
		Images:             s.Images,
		AvailabilityStatus: s.AvailabilityStatus,
		CategoryName:       s.CategoryName,
		SubcategoryName:    s.SubcategoryName,
		UserID:             s.UserID,
		IsOnline:           &isOnline,
		CreatedAt:          s.CreatedAt,
	}
}

// annotateDistance attaches the haversine distance from the query's
// reference point when both the point and the listing coordinates are
// present. Absent coordinates are not an error; the result simply
// carries no distance.
func annotateDistance(result *models.SearchResult, q models.SearchQuery) {
	if !q.HasReferencePoint() || result.Latitude == nil || result.Longitude == nil {
		return
	}
	d := geo.HaversineKm(*q.Latitude, *q.Longitude, *result.Latitude, *result.Longitude)
	d = math.Round(d*100) / 100
	result.DistanceKm = &d
}

func outsideRadius(distance *float64, radius float64) bool {
	return distance == nil || *distance > radius
}

// sortResults orders by ascending distance when a reference point was
// given, with distance-less entries last; otherwise by recency. Ties
// fall back to recency either way.
func sortResults(results []models.SearchResult, byDistance bool) {
	sort.SliceStable(results, func(i, j int) bool {
		if byDistance {
			di := math.Inf(1)
			dj := math.Inf(1)
			if results[i].DistanceKm != nil {
				di = *results[i].DistanceKm
			}
			if results[j].DistanceKm != nil {
				dj = *results[j].DistanceKm
			}
			if di != dj {
				return di < dj
			}
		}
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
}

func pageCount(total, perPage int) int {
	if total == 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// paginate slices out one page, never out of bounds.
func paginate(results []models.SearchResult, page, perPage int) []models.SearchResult {
	start := (page - 1) * perPage
	if start >= len(results) {
		return []models.SearchResult{}
	}
	end := start + perPage
	if end > len(results) {
		end = len(results)
	}
	return results[start:end]
}
