package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"swapcycle/internal/models"
	"swapcycle/internal/services"
)

type stubProductSource struct {
	products   []models.Product
	lastFilter *models.ListingFilter
}

func (s *stubProductSource) FilterAvailable(_ context.Context, f models.ListingFilter) ([]models.Product, error) {
	s.lastFilter = &f
	return s.products, nil
}

func (s *stubProductSource) MarkersInBounds(_ context.Context, _ models.MarkerQuery, _ int) ([]models.Marker, error) {
	return nil, nil
}

type stubServiceSource struct{}

func (s *stubServiceSource) FilterAvailablePhysical(_ context.Context, _ models.ListingFilter) ([]models.Service, error) {
	return nil, nil
}

func (s *stubServiceSource) FilterOnline(_ context.Context, _ models.ListingFilter, _, _ int) ([]models.Service, int, error) {
	return nil, 0, nil
}

func (s *stubServiceSource) MarkersInBounds(_ context.Context, _ models.MarkerQuery, _ int) ([]models.Marker, error) {
	return nil, nil
}

func newSearchHandler(products []models.Product) (*SearchHandler, *stubProductSource) {
	ps := &stubProductSource{products: products}
	return &SearchHandler{
		SearchService: &services.SearchService{Products: ps, Services: &stubServiceSource{}},
	}, ps
}

func TestSearchReturnsResults(t *testing.T) {
	h, _ := newSearchHandler([]models.Product{{
		ID:                 1,
		Name:               "bike",
		AvailabilityStatus: models.StatusAvailable,
		CreatedAt:          time.Now(),
	}})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/search?keyword=bike", nil)
	h.Search(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp models.SearchResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 1 || resp.Results[0].Name != "bike" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestSearchRejectsMalformedNumbers(t *testing.T) {
	h, _ := newSearchHandler(nil)

	cases := []string{
		"/search?min_price=abc",
		"/search?max_price=abc",
		"/search?lat=abc&lng=1",
		"/search?category_id=x",
		"/search?page=x",
	}

	for _, target := range cases {
		rr := httptest.NewRecorder()
		h.Search(rr, httptest.NewRequest(http.MethodGet, target, nil))
		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, rr.Code)
		}
	}
}

func TestSearchRejectsHalfCoordinatePair(t *testing.T) {
	h, _ := newSearchHandler(nil)

	rr := httptest.NewRecorder()
	h.Search(rr, httptest.NewRequest(http.MethodGet, "/search?lat=40.0", nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for lat without lng, got %d", rr.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body["message"] == "" {
		t.Fatalf("expected a message field in the error body, got %v", body)
	}
}

func TestSearchReadsDocumentedLocationParams(t *testing.T) {
	lat1, lng1 := 40.018, -74.0 // ~2 km from center
	lat2, lng2 := 40.072, -74.0 // ~8 km from center
	h, ps := newSearchHandler([]models.Product{
		{ID: 1, Name: "bike near", AvailabilityStatus: models.StatusAvailable, Latitude: &lat1, Longitude: &lng1, CreatedAt: time.Now()},
		{ID: 2, Name: "bike far", AvailabilityStatus: models.StatusAvailable, Latitude: &lat2, Longitude: &lng2, CreatedAt: time.Now()},
	})

	rr := httptest.NewRecorder()
	h.Search(rr, httptest.NewRequest(http.MethodGet, "/search?keyword=bike&lat=40.0&lng=-74.0&radius=5", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	if ps.lastFilter == nil || ps.lastFilter.Keyword != "bike" {
		t.Fatalf("expected keyword to reach the repository filter, got %+v", ps.lastFilter)
	}
	if ps.lastFilter.Bounds == nil {
		t.Fatal("expected lat/lng/radius to produce a bounding-box prefilter")
	}

	var resp models.SearchResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.HasLocationData {
		t.Fatal("expected has_location_data with lat/lng supplied")
	}
	if resp.Total != 1 || resp.Results[0].ID != 1 {
		t.Fatalf("expected only the listing inside the radius, got %+v", resp)
	}
}

func TestSearchPassesZeroMinPriceThrough(t *testing.T) {
	h, ps := newSearchHandler(nil)

	rr := httptest.NewRecorder()
	h.Search(rr, httptest.NewRequest(http.MethodGet, "/search?min_price=0", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	if ps.lastFilter == nil || ps.lastFilter.MinPrice == nil {
		t.Fatal("expected min_price=0 to reach the repository as a present filter")
	}
	if *ps.lastFilter.MinPrice != 0 {
		t.Fatalf("expected min_price 0, got %f", *ps.lastFilter.MinPrice)
	}
}

func TestMapDataRequiresBounds(t *testing.T) {
	h, _ := newSearchHandler(nil)

	rr := httptest.NewRecorder()
	h.MapData(rr, httptest.NewRequest(http.MethodGet, "/search/map-data", nil))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body["error"] != "Map bounds required" {
		t.Fatalf("unexpected error message %q", body["error"])
	}
}

func TestMapDataRejectsPartialBounds(t *testing.T) {
	h, _ := newSearchHandler(nil)

	rr := httptest.NewRecorder()
	h.MapData(rr, httptest.NewRequest(http.MethodGet, "/search/map-data?north=41&south=40&east=-73", nil))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for incomplete bounds, got %d", rr.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body["error"] != "Map bounds required" {
		t.Fatalf("unexpected error message %q", body["error"])
	}
}

func TestMapDataReturnsMarkers(t *testing.T) {
	h, _ := newSearchHandler(nil)

	rr := httptest.NewRecorder()
	h.MapData(rr, httptest.NewRequest(http.MethodGet, "/search/map-data?north=41&south=40&east=-73&west=-74", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp models.MapDataResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 0 {
		t.Fatalf("expected empty marker set, got %d", resp.Total)
	}
}

func TestSearchProductsForcesType(t *testing.T) {
	h, _ := newSearchHandler([]models.Product{{
		ID:                 1,
		Name:               "lamp",
		AvailabilityStatus: models.StatusAvailable,
		CreatedAt:          time.Now(),
	}})

	rr := httptest.NewRecorder()
	h.SearchProducts(rr, httptest.NewRequest(http.MethodGet, "/search/products?type=services", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp models.SearchResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	for _, r := range resp.Results {
		if r.Type != models.CategoryTypeProduct {
			t.Fatalf("expected products only, got type %q", r.Type)
		}
	}
	if resp.Total != 1 {
		t.Fatalf("expected the product despite type=services in the query, got %d results", resp.Total)
	}
}
