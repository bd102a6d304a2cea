package handlers

import (
	"errors"
	"net/http"

	"swapcycle/internal/models"
	"swapcycle/internal/services"
)

type contextKey string

// ContextKeyUserID carries the authenticated user id set by the JWT
// middleware.
const ContextKeyUserID = contextKey("user_id")

type SearchHandler struct {
	SearchService   *services.SearchService
	CategoryService *services.CategoryService
}

// Search handles the combined product and service search.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	q, err := searchQueryFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.SearchService.Search(r.Context(), q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// SearchProducts restricts the combined search to products.
func (h *SearchHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	q, err := searchQueryFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	q.Type = models.SearchTypeProducts

	resp, err := h.SearchService.Search(r.Context(), q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// SearchServices restricts the combined search to physical services.
func (h *SearchHandler) SearchServices(w http.ResponseWriter, r *http.Request) {
	q, err := searchQueryFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	q.Type = models.SearchTypeServices

	resp, err := h.SearchService.Search(r.Context(), q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// SearchOnlineServices lists online services: no geography, recency
// order, repository-side pagination.
func (h *SearchHandler) SearchOnlineServices(w http.ResponseWriter, r *http.Request) {
	q, err := searchQueryFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if r.URL.Query().Get("per_page") == "" {
		q.PerPage = 12
	}

	resp, err := h.SearchService.SearchOnlineServices(r.Context(), q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// MapData returns capped markers for the map viewport. Bounds are
// mandatory here, unlike list search.
func (h *SearchHandler) MapData(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	bounds, err := parseBounds(values)
	if err != nil {
		// Partial bounds are as useless as none for a viewport.
		writeBoundsRequired(w)
		return
	}

	categoryID, err := parseOptionalInt(values, "category_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	q := models.MarkerQuery{
		Bounds:     bounds,
		Type:       values.Get("type"),
		Keyword:    values.Get("keyword"),
		CategoryID: categoryID,
	}

	resp, err := h.SearchService.MapMarkers(r.Context(), q)
	if err != nil {
		if errors.Is(err, models.ErrMapBoundsRequired) {
			writeBoundsRequired(w)
			return
		}
		writeError(w, http.StatusInternalServerError, "map data failed")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// SearchCategories returns the category trees with listing counts for
// the search sidebar.
func (h *SearchHandler) SearchCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.CategoryService.ListCategories(r.Context(), r.URL.Query().Get("type"), true)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "categories failed")
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}

func searchQueryFromRequest(r *http.Request) (models.SearchQuery, error) {
	values := r.URL.Query()

	categoryID, err := parseOptionalInt(values, "category_id")
	if err != nil {
		return models.SearchQuery{}, err
	}
	minPrice, err := parseOptionalFloat(values, "min_price")
	if err != nil {
		return models.SearchQuery{}, err
	}
	maxPrice, err := parseOptionalFloat(values, "max_price")
	if err != nil {
		return models.SearchQuery{}, err
	}
	lat, err := parseOptionalFloat(values, "lat")
	if err != nil {
		return models.SearchQuery{}, err
	}
	lng, err := parseOptionalFloat(values, "lng")
	if err != nil {
		return models.SearchQuery{}, err
	}
	radius, err := parseFloatDefault(values, "radius", 0)
	if err != nil {
		return models.SearchQuery{}, err
	}
	bounds, err := parseBounds(values)
	if err != nil {
		return models.SearchQuery{}, err
	}
	page, err := parseIntDefault(values, "page", 1)
	if err != nil {
		return models.SearchQuery{}, err
	}
	perPage, err := parseIntDefault(values, "per_page", 0)
	if err != nil {
		return models.SearchQuery{}, err
	}

	if (lat == nil) != (lng == nil) {
		return models.SearchQuery{}, errors.New("lat and lng must be supplied together")
	}

	return models.SearchQuery{
		Keyword:    values.Get("keyword"),
		Type:       values.Get("type"),
		CategoryID: categoryID,
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
		Latitude:   lat,
		Longitude:  lng,
		RadiusKm:   radius,
		Bounds:     bounds,
		Page:       page,
		PerPage:    perPage,
	}, nil
}
