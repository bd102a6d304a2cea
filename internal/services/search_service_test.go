package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"swapcycle/internal/models"
)

// fakeProductSource filters in memory with the same semantics the SQL
// pushdown applies: availability, keyword on name/description, category,
// inclusive price range, bounds window over present coordinates.
type fakeProductSource struct {
	products   []models.Product
	err        error
	lastFilter *models.ListingFilter
}

func (f *fakeProductSource) FilterAvailable(_ context.Context, filter models.ListingFilter) ([]models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastFilter = &filter

	var out []models.Product
	for _, p := range f.products {
		if p.AvailabilityStatus != models.StatusAvailable {
			continue
		}
		if !matchesFilter(filter, p.Name, p.Description, p.CategoryID, p.EstimatedValue, p.Latitude, p.Longitude) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductSource) MarkersInBounds(_ context.Context, q models.MarkerQuery, limit int) ([]models.Marker, error) {
	if f.err != nil {
		return nil, f.err
	}
	filter := models.ListingFilter{Keyword: q.Keyword, CategoryID: q.CategoryID, Bounds: q.Bounds}
	var out []models.Marker
	for _, p := range f.products {
		if len(out) >= limit {
			break
		}
		if p.AvailabilityStatus != models.StatusAvailable {
			continue
		}
		if !matchesFilter(filter, p.Name, p.Description, p.CategoryID, p.EstimatedValue, p.Latitude, p.Longitude) {
			continue
		}
		out = append(out, models.Marker{
			ID:           p.ID,
			Type:         models.CategoryTypeProduct,
			Title:        p.Name,
			Price:        p.EstimatedValue,
			Latitude:     *p.Latitude,
			Longitude:    *p.Longitude,
			CategoryName: p.CategoryName,
		})
	}
	return out, nil
}

type fakeServiceSource struct {
	services []models.Service
	err      error
}

func (f *fakeServiceSource) FilterAvailablePhysical(_ context.Context, filter models.ListingFilter) ([]models.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Service
	for _, s := range f.services {
		if s.AvailabilityStatus != models.StatusAvailable || s.IsOnline {
			continue
		}
		if !matchesFilter(filter, s.Name, s.Description, s.CategoryID, s.EstimatedValue, s.Latitude, s.Longitude) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeServiceSource) FilterOnline(_ context.Context, filter models.ListingFilter, limit, offset int) ([]models.Service, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	var matched []models.Service
	for _, s := range f.services {
		if s.AvailabilityStatus != models.StatusAvailable || !s.IsOnline {
			continue
		}
		if !matchesFilter(filter, s.Name, s.Description, s.CategoryID, s.EstimatedValue, s.Latitude, s.Longitude) {
			continue
		}
		matched = append(matched, s)
	}
	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (f *fakeServiceSource) MarkersInBounds(_ context.Context, q models.MarkerQuery, limit int) ([]models.Marker, error) {
	if f.err != nil {
		return nil, f.err
	}
	filter := models.ListingFilter{Keyword: q.Keyword, CategoryID: q.CategoryID, Bounds: q.Bounds}
	var out []models.Marker
	for _, s := range f.services {
		if len(out) >= limit {
			break
		}
		if s.AvailabilityStatus != models.StatusAvailable || s.IsOnline {
			continue
		}
		if !matchesFilter(filter, s.Name, s.Description, s.CategoryID, s.EstimatedValue, s.Latitude, s.Longitude) {
			continue
		}
		out = append(out, models.Marker{
			ID:           s.ID,
			Type:         models.CategoryTypeService,
			Title:        s.Name,
			Price:        s.EstimatedValue,
			Latitude:     *s.Latitude,
			Longitude:    *s.Longitude,
			CategoryName: s.CategoryName,
		})
	}
	return out, nil
}

func matchesFilter(f models.ListingFilter, name, description string, categoryID int, value float64, lat, lng *float64) bool {
	if f.Keyword != "" {
		kw := strings.ToLower(f.Keyword)
		if !strings.Contains(strings.ToLower(name), kw) && !strings.Contains(strings.ToLower(description), kw) {
			return false
		}
	}
	if f.CategoryID != nil && categoryID != *f.CategoryID {
		return false
	}
	if f.MinPrice != nil && value < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && value > *f.MaxPrice {
		return false
	}
	if f.Bounds != nil {
		if lat == nil || lng == nil {
			return false
		}
		if !f.Bounds.Contains(*lat, *lng) {
			return false
		}
	}
	return true
}

func ptrFloat(v float64) *float64 { return &v }
func ptrInt(v int) *int           { return &v }

func availableProduct(id int, name string, value float64, lat, lng *float64, createdAt time.Time) models.Product {
	return models.Product{
		ID:                 id,
		Name:               name,
		Description:        "",
		EstimatedValue:     value,
		Latitude:           lat,
		Longitude:          lng,
		AvailabilityStatus: models.StatusAvailable,
		CategoryID:         1,
		CreatedAt:          createdAt,
	}
}

func newSearchService(products []models.Product, services []models.Service) (*SearchService, *fakeProductSource, *fakeServiceSource) {
	ps := &fakeProductSource{products: products}
	ss := &fakeServiceSource{services: services}
	return &SearchService{Products: ps, Services: ss}, ps, ss
}

func TestSearchSortsByRecencyWithoutLocation(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc, _, _ := newSearchService([]models.Product{
		availableProduct(1, "mountain bike", 100, nil, nil, base),
		availableProduct(2, "road bike", 150, nil, nil, base.Add(time.Hour)),
		availableProduct(3, "bike trailer", 80, nil, nil, base.Add(2*time.Hour)),
	}, nil)

	resp, err := svc.Search(context.Background(), models.SearchQuery{Keyword: "bike"})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	if resp.Total != 3 {
		t.Fatalf("expected 3 results, got %d", resp.Total)
	}
	wantOrder := []int{3, 2, 1}
	for i, want := range wantOrder {
		if resp.Results[i].ID != want {
			t.Errorf("position %d: expected id %d, got %d", i, want, resp.Results[i].ID)
		}
	}
	if resp.HasLocationData {
		t.Errorf("expected has_location_data false without a reference point")
	}
}

func TestSearchRadiusAppliesExactPostFilter(t *testing.T) {
	// Center (40, -74); one product ~2km north, one ~8km north.
	near := availableProduct(1, "near bike", 100, ptrFloat(40.0+2.0/111.0), ptrFloat(-74.0), time.Now())
	far := availableProduct(2, "far bike", 100, ptrFloat(40.0+8.0/111.0), ptrFloat(-74.0), time.Now())
	svc, _, _ := newSearchService([]models.Product{near, far}, nil)

	resp, err := svc.Search(context.Background(), models.SearchQuery{
		Latitude:  ptrFloat(40.0),
		Longitude: ptrFloat(-74.0),
		RadiusKm:  5,
	})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	if resp.Total != 1 {
		t.Fatalf("expected only the 2km product inside a 5km radius, got %d results", resp.Total)
	}
	if resp.Results[0].ID != 1 {
		t.Fatalf("expected product 1, got %d", resp.Results[0].ID)
	}
	if resp.Results[0].DistanceKm == nil {
		t.Fatal("expected distance annotation")
	}
	if d := *resp.Results[0].DistanceKm; d < 1.5 || d > 2.5 {
		t.Errorf("expected roughly 2km distance, got %f", d)
	}
}

func TestSearchDistanceSortAscending(t *testing.T) {
	now := time.Now()
	svc, _, _ := newSearchService([]models.Product{
		availableProduct(1, "far", 10, ptrFloat(40.0+7.0/111.0), ptrFloat(-74.0), now),
		availableProduct(2, "near", 10, ptrFloat(40.0+1.0/111.0), ptrFloat(-74.0), now),
		availableProduct(3, "mid", 10, ptrFloat(40.0+4.0/111.0), ptrFloat(-74.0), now),
	}, nil)

	resp, err := svc.Search(context.Background(), models.SearchQuery{
		Latitude:  ptrFloat(40.0),
		Longitude: ptrFloat(-74.0),
		RadiusKm:  50,
	})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	if resp.Total != 3 {
		t.Fatalf("expected 3 results, got %d", resp.Total)
	}
	var last float64 = -1
	for _, r := range resp.Results {
		if r.DistanceKm == nil {
			t.Fatalf("result %d has no distance", r.ID)
		}
		if *r.DistanceKm < last {
			t.Fatalf("distances not ascending: %f after %f", *r.DistanceKm, last)
		}
		last = *r.DistanceKm
	}
	if resp.Results[0].ID != 2 || resp.Results[2].ID != 1 {
		t.Errorf("unexpected order: %d, %d, %d", resp.Results[0].ID, resp.Results[1].ID, resp.Results[2].ID)
	}
}

func TestSortResultsPlacesMissingDistanceLast(t *testing.T) {
	d1 := 3.0
	d2 := 1.0
	results := []models.SearchResult{
		{ID: 1, DistanceKm: &d1},
		{ID: 2},
		{ID: 3, DistanceKm: &d2},
	}

	sortResults(results, true)

	if results[0].ID != 3 || results[1].ID != 1 || results[2].ID != 2 {
		t.Fatalf("unexpected order: %d, %d, %d", results[0].ID, results[1].ID, results[2].ID)
	}
}

func TestSearchBoundsContainment(t *testing.T) {
	bounds := models.Bounds{North: 41, South: 40, East: -73, West: -74}
	inside := availableProduct(1, "inside", 10, ptrFloat(40.5), ptrFloat(-73.5), time.Now())
	outside := availableProduct(2, "outside", 10, ptrFloat(42.0), ptrFloat(-73.5), time.Now())
	noCoords := availableProduct(3, "nowhere", 10, nil, nil, time.Now())
	svc, _, _ := newSearchService([]models.Product{inside, outside, noCoords}, nil)

	resp, err := svc.Search(context.Background(), models.SearchQuery{Bounds: &bounds})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	if resp.Total != 1 || resp.Results[0].ID != 1 {
		t.Fatalf("expected only the listing inside the bounds, got %+v", resp.Results)
	}
}

func TestSearchBoundsWinOverRadius(t *testing.T) {
	// Product is inside the bounds window but ~20km from the reference
	// point. With bounds precedence the radius must not drop it, while
	// the reference point still annotates distance.
	bounds := models.Bounds{North: 41, South: 40, East: -73, West: -74}
	p := availableProduct(1, "corner shop", 10, ptrFloat(40.18), ptrFloat(-74.0+0.001), time.Now())
	svc, _, _ := newSearchService([]models.Product{p}, nil)

	resp, err := svc.Search(context.Background(), models.SearchQuery{
		Bounds:    &bounds,
		Latitude:  ptrFloat(40.0),
		Longitude: ptrFloat(-74.0),
		RadiusKm:  5,
	})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	if resp.Total != 1 {
		t.Fatalf("expected bounds mode to keep the listing, got %d results", resp.Total)
	}
	if resp.Results[0].DistanceKm == nil {
		t.Fatal("expected distance annotation from the reference point")
	}
	if !resp.HasLocationData {
		t.Error("expected has_location_data true")
	}
}

func TestSearchMergesProductsAndServices(t *testing.T) {
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	addr := "downtown"
	svc, _, _ := newSearchService(
		[]models.Product{availableProduct(1, "guitar", 200, nil, nil, base)},
		[]models.Service{{
			ID:                 7,
			Name:               "guitar lessons",
			EstimatedValue:     50,
			Address:            &addr,
			AvailabilityStatus: models.StatusAvailable,
			CategoryID:         2,
			CreatedAt:          base.Add(time.Hour),
		}},
	)

	resp, err := svc.Search(context.Background(), models.SearchQuery{Keyword: "guitar"})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	if resp.Total != 2 {
		t.Fatalf("expected both entity types, got %d results", resp.Total)
	}
	if resp.Results[0].Type != models.CategoryTypeService || resp.Results[1].Type != models.CategoryTypeProduct {
		t.Errorf("expected newest-first merge across types, got %s then %s",
			resp.Results[0].Type, resp.Results[1].Type)
	}
}

func TestSearchTypeFilters(t *testing.T) {
	products := []models.Product{availableProduct(1, "thing", 10, nil, nil, time.Now())}
	services := []models.Service{{
		ID: 2, Name: "thing service", AvailabilityStatus: models.StatusAvailable, CreatedAt: time.Now(),
	}}

	cases := []struct {
		name      string
		queryType string
		wantTypes []string
	}{
		{"products only", models.SearchTypeProducts, []string{models.CategoryTypeProduct}},
		{"services only", models.SearchTypeServices, []string{models.CategoryTypeService}},
		{"unknown type is all", "bogus", []string{models.CategoryTypeProduct, models.CategoryTypeService}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, _ := newSearchService(products, services)
			resp, err := svc.Search(context.Background(), models.SearchQuery{Type: tc.queryType})
			if err != nil {
				t.Fatalf("Search returned error: %v", err)
			}
			if len(resp.Results) != len(tc.wantTypes) {
				t.Fatalf("expected %d results, got %d", len(tc.wantTypes), len(resp.Results))
			}
			seen := map[string]bool{}
			for _, r := range resp.Results {
				seen[r.Type] = true
			}
			for _, want := range tc.wantTypes {
				if !seen[want] {
					t.Errorf("expected a %s result", want)
				}
			}
		})
	}
}

func TestSearchPaginationLaw(t *testing.T) {
	var products []models.Product
	base := time.Now()
	for i := 1; i <= 7; i++ {
		products = append(products, availableProduct(i, "item", 10, nil, nil, base.Add(time.Duration(i)*time.Minute)))
	}

	cases := []struct {
		page, perPage int
		wantLen       int
		wantPages     int
	}{
		{1, 3, 3, 3},
		{2, 3, 3, 3},
		{3, 3, 1, 3},
		{4, 3, 0, 3},
		{1, 10, 7, 1},
		{1, 7, 7, 1},
	}

	for _, tc := range cases {
		svc, _, _ := newSearchService(products, nil)
		resp, err := svc.Search(context.Background(), models.SearchQuery{Page: tc.page, PerPage: tc.perPage})
		if err != nil {
			t.Fatalf("Search returned error: %v", err)
		}
		if resp.Total != 7 {
			t.Fatalf("page %d/%d: expected total 7, got %d", tc.page, tc.perPage, resp.Total)
		}
		if len(resp.Results) != tc.wantLen {
			t.Errorf("page %d/%d: expected %d results, got %d", tc.page, tc.perPage, tc.wantLen, len(resp.Results))
		}
		if resp.Pages != tc.wantPages {
			t.Errorf("page %d/%d: expected %d pages, got %d", tc.page, tc.perPage, tc.wantPages, resp.Pages)
		}
	}
}

func TestSearchClampsPerPage(t *testing.T) {
	svc, _, _ := newSearchService(nil, nil)
	resp, err := svc.Search(context.Background(), models.SearchQuery{Page: 0, PerPage: 500})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if resp.Page != 1 {
		t.Errorf("expected page clamped to 1, got %d", resp.Page)
	}
	if resp.PerPage != 100 {
		t.Errorf("expected per_page clamped to 100, got %d", resp.PerPage)
	}
}

func TestSearchNoResultsIsNotAnError(t *testing.T) {
	svc, _, _ := newSearchService(nil, nil)
	resp, err := svc.Search(context.Background(), models.SearchQuery{Keyword: "nothing"})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if resp.Total != 0 || resp.Pages != 0 || len(resp.Results) != 0 {
		t.Fatalf("expected empty success, got %+v", resp)
	}
}

func TestSearchMinPriceZeroStillFilters(t *testing.T) {
	svc, ps, _ := newSearchService([]models.Product{
		availableProduct(1, "free thing", 0, nil, nil, time.Now()),
	}, nil)

	resp, err := svc.Search(context.Background(), models.SearchQuery{MinPrice: ptrFloat(0)})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	if ps.lastFilter == nil || ps.lastFilter.MinPrice == nil {
		t.Fatal("expected an explicit min_price=0 to be pushed down as a present filter")
	}
	if resp.Total != 1 {
		t.Fatalf("expected the zero-value listing to match min_price=0, got %d results", resp.Total)
	}
}

func TestSearchPriceBoundsInclusive(t *testing.T) {
	svc, _, _ := newSearchService([]models.Product{
		availableProduct(1, "cheap", 10, nil, nil, time.Now()),
		availableProduct(2, "mid", 50, nil, nil, time.Now()),
		availableProduct(3, "dear", 90, nil, nil, time.Now()),
	}, nil)

	resp, err := svc.Search(context.Background(), models.SearchQuery{
		MinPrice: ptrFloat(10),
		MaxPrice: ptrFloat(90),
	})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if resp.Total != 3 {
		t.Fatalf("expected inclusive price bounds to keep all 3, got %d", resp.Total)
	}
}

func TestSearchContradictoryPriceRangeYieldsEmpty(t *testing.T) {
	svc, ps, _ := newSearchService([]models.Product{
		availableProduct(1, "thing", 50, nil, nil, time.Now()),
	}, nil)

	resp, err := svc.Search(context.Background(), models.SearchQuery{
		MinPrice: ptrFloat(100),
		MaxPrice: ptrFloat(10),
	})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if resp.Total != 0 || resp.Pages != 0 {
		t.Fatalf("expected empty set for min > max, got %+v", resp)
	}
	if ps.lastFilter != nil {
		t.Error("expected no repository call for a contradictory range")
	}
}

func TestSearchOnlineServicesExcludedFromGeoSearch(t *testing.T) {
	addr := "studio"
	online := models.Service{
		ID: 1, Name: "remote tutoring", IsOnline: true,
		AvailabilityStatus: models.StatusAvailable, CreatedAt: time.Now(),
	}
	physical := models.Service{
		ID: 2, Name: "tutoring", Address: &addr,
		Latitude: ptrFloat(40.01), Longitude: ptrFloat(-74.0),
		AvailabilityStatus: models.StatusAvailable, CreatedAt: time.Now(),
	}
	svc, _, _ := newSearchService(nil, []models.Service{online, physical})

	resp, err := svc.Search(context.Background(), models.SearchQuery{
		Type:      models.SearchTypeServices,
		Latitude:  ptrFloat(40.0),
		Longitude: ptrFloat(-74.0),
		RadiusKm:  10,
	})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	for _, r := range resp.Results {
		if r.IsOnline != nil && *r.IsOnline {
			t.Fatalf("online service %d leaked into geo search", r.ID)
		}
	}
	if resp.Total != 1 || resp.Results[0].ID != 2 {
		t.Fatalf("expected only the physical service, got %+v", resp.Results)
	}
}

func TestSearchSubQueryFailureFailsWholeSearch(t *testing.T) {
	svc, _, ss := newSearchService([]models.Product{
		availableProduct(1, "thing", 10, nil, nil, time.Now()),
	}, nil)
	ss.err = errors.New("connection refused")

	_, err := svc.Search(context.Background(), models.SearchQuery{})
	if err == nil {
		t.Fatal("expected the whole search to fail when one sub-query fails")
	}
}

func TestSearchOnlineServices(t *testing.T) {
	var services []models.Service
	base := time.Now()
	for i := 1; i <= 15; i++ {
		services = append(services, models.Service{
			ID: i, Name: "online course", IsOnline: true,
			AvailabilityStatus: models.StatusAvailable,
			CreatedAt:          base.Add(time.Duration(i) * time.Minute),
		})
	}
	svc, _, _ := newSearchService(nil, services)

	resp, err := svc.SearchOnlineServices(context.Background(), models.SearchQuery{Page: 2, PerPage: 12})
	if err != nil {
		t.Fatalf("SearchOnlineServices returned error: %v", err)
	}

	if resp.Total != 15 {
		t.Fatalf("expected total 15, got %d", resp.Total)
	}
	if len(resp.Results) != 3 {
		t.Fatalf("expected 3 results on page 2, got %d", len(resp.Results))
	}
	if resp.Pages != 2 {
		t.Errorf("expected 2 pages, got %d", resp.Pages)
	}
	for _, r := range resp.Results {
		if r.IsOnline == nil || !*r.IsOnline {
			t.Errorf("expected only online services, got %+v", r)
		}
	}
}

func TestMapMarkersRequiresBounds(t *testing.T) {
	svc, _, _ := newSearchService(nil, nil)
	_, err := svc.MapMarkers(context.Background(), models.MarkerQuery{})
	if !errors.Is(err, models.ErrMapBoundsRequired) {
		t.Fatalf("expected ErrMapBoundsRequired, got %v", err)
	}
}

func TestMapMarkersCappedAndInRetrievalOrder(t *testing.T) {
	bounds := models.Bounds{North: 41, South: 40, East: -73, West: -74}
	var products []models.Product
	for i := 1; i <= 150; i++ {
		products = append(products, availableProduct(i, "stall", 10, ptrFloat(40.5), ptrFloat(-73.5), time.Now()))
	}
	svc, _, _ := newSearchService(products, nil)

	resp, err := svc.MapMarkers(context.Background(), models.MarkerQuery{Bounds: &bounds, Type: models.SearchTypeProducts})
	if err != nil {
		t.Fatalf("MapMarkers returned error: %v", err)
	}

	if len(resp.Markers) != 100 {
		t.Fatalf("expected marker cap of 100, got %d", len(resp.Markers))
	}
	for i, m := range resp.Markers {
		if m.ID != i+1 {
			t.Fatalf("expected retrieval order, got id %d at position %d", m.ID, i)
		}
	}
	if resp.Total != 100 {
		t.Errorf("expected total 100, got %d", resp.Total)
	}
}

func TestMapMarkersExcludeOnlineServices(t *testing.T) {
	bounds := models.Bounds{North: 41, South: 40, East: -73, West: -74}
	addr := "yard"
	svc, _, _ := newSearchService(nil, []models.Service{
		{
			ID: 1, Name: "remote help", IsOnline: true,
			AvailabilityStatus: models.StatusAvailable, CreatedAt: time.Now(),
		},
		{
			ID: 2, Name: "garden help", Address: &addr,
			Latitude: ptrFloat(40.5), Longitude: ptrFloat(-73.5),
			AvailabilityStatus: models.StatusAvailable, CreatedAt: time.Now(),
		},
	})

	resp, err := svc.MapMarkers(context.Background(), models.MarkerQuery{Bounds: &bounds})
	if err != nil {
		t.Fatalf("MapMarkers returned error: %v", err)
	}
	if len(resp.Markers) != 1 || resp.Markers[0].ID != 2 {
		t.Fatalf("expected only the physical service marker, got %+v", resp.Markers)
	}
}

func TestSearchZeroCoordinatesAreARealLocation(t *testing.T) {
	// A listing at (0,0) must geo-filter normally, not be treated as
	// missing coordinates.
	origin := availableProduct(1, "island stand", 10, ptrFloat(0), ptrFloat(0), time.Now())
	svc, _, _ := newSearchService([]models.Product{origin}, nil)

	resp, err := svc.Search(context.Background(), models.SearchQuery{
		Latitude:  ptrFloat(0.01),
		Longitude: ptrFloat(0),
		RadiusKm:  5,
	})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	if resp.Total != 1 {
		t.Fatalf("expected the (0,0) listing to match, got %d results", resp.Total)
	}
	if resp.Results[0].DistanceKm == nil {
		t.Fatal("expected distance annotation for a (0,0) listing")
	}
}
