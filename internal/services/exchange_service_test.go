package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestExchangeServiceConvert(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"result": "success",
			"base_code": "USD",
			"conversion_rates": {"USD": 1, "EUR": 0.9, "GBP": 0.8}
		}`))
	}))
	defer srv.Close()

	svc := NewExchangeService("test-key", nil)
	svc.BaseURL = srv.URL

	got, err := svc.Convert(context.Background(), 100, "USD", "EUR")
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if got != 90 {
		t.Fatalf("expected 90, got %f", got)
	}
}

func TestExchangeServiceSameCurrencySkipsFetch(t *testing.T) {
	svc := NewExchangeService("test-key", nil)
	svc.BaseURL = "http://127.0.0.1:0" // would fail if contacted

	got, err := svc.Convert(context.Background(), 42, "USD", "USD")
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if got != 42 {
		t.Fatalf("expected 42, got %f", got)
	}
}

func TestExchangeServiceUnsupportedCurrency(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result": "success", "base_code": "USD", "conversion_rates": {"USD": 1}}`))
	}))
	defer srv.Close()

	svc := NewExchangeService("test-key", nil)
	svc.BaseURL = srv.URL

	if _, err := svc.Convert(context.Background(), 10, "USD", "XXX"); err == nil {
		t.Fatal("expected error for unsupported currency")
	}
}

func TestExchangeServiceProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result": "error"}`))
	}))
	defer srv.Close()

	svc := NewExchangeService("test-key", nil)
	svc.BaseURL = srv.URL

	if _, err := svc.Rates(context.Background(), "USD"); err == nil {
		t.Fatal("expected error for provider failure")
	}
}

func TestGeocodingServiceGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("address") == "" && r.URL.Query().Get("latlng") == "" {
			t.Errorf("expected address or latlng parameter, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "OK",
			"results": [{
				"formatted_address": "Paris, France",
				"geometry": {"location": {"lat": 48.8566, "lng": 2.3522}}
			}]
		}`))
	}))
	defer srv.Close()

	svc := NewGeocodingService("test-key")
	svc.BaseURL = srv.URL

	loc, err := svc.Geocode(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("Geocode returned error: %v", err)
	}
	if loc.Address != "Paris, France" || loc.Latitude != 48.8566 {
		t.Fatalf("unexpected location: %+v", loc)
	}
}

func TestGeocodingServiceRejectsInvalidCoordinates(t *testing.T) {
	svc := NewGeocodingService("test-key")

	if _, err := svc.ReverseGeocode(context.Background(), 91, 0); err == nil {
		t.Fatal("expected error for latitude beyond 90")
	}
	if _, err := svc.ReverseGeocode(context.Background(), 0, 181); err == nil {
		t.Fatal("expected error for longitude beyond 180")
	}
}

func TestDistanceBetween(t *testing.T) {
	d, err := DistanceBetween(48.8566, 2.3522, 52.52, 13.405)
	if err != nil {
		t.Fatalf("DistanceBetween returned error: %v", err)
	}
	if d < 850 || d > 900 {
		t.Fatalf("Paris to Berlin should be roughly 878 km, got %f", d)
	}

	if _, err := DistanceBetween(100, 0, 0, 0); err == nil {
		t.Fatal("expected error for invalid coordinates")
	}
}
