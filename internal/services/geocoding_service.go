package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"swapcycle/internal/geo"
	"swapcycle/internal/models"
)

const (
	geocodeBaseURL     = "https://maps.googleapis.com/maps/api/geocode/json"
	geocodeHTTPTimeout = 10 * time.Second
)

// GeocodedLocation is a resolved address with coordinates.
type GeocodedLocation struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GeocodingService resolves addresses through the Google geocoding API.
type GeocodingService struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

func NewGeocodingService(apiKey string) *GeocodingService {
	return &GeocodingService{
		APIKey:  apiKey,
		BaseURL: geocodeBaseURL,
		Client:  &http.Client{Timeout: geocodeHTTPTimeout},
	}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves a free-form address to coordinates.
func (s *GeocodingService) Geocode(ctx context.Context, address string) (GeocodedLocation, error) {
	if address == "" {
		return GeocodedLocation{}, errors.New("geocode: empty address")
	}

	params := url.Values{}
	params.Set("address", address)
	params.Set("key", s.APIKey)

	return s.query(ctx, params)
}

// ReverseGeocode resolves coordinates to the nearest formatted address.
func (s *GeocodingService) ReverseGeocode(ctx context.Context, lat, lng float64) (GeocodedLocation, error) {
	if !geo.ValidCoordinates(lat, lng) {
		return GeocodedLocation{}, models.ErrInvalidCoordinates
	}

	params := url.Values{}
	params.Set("latlng", fmt.Sprintf("%f,%f", lat, lng))
	params.Set("key", s.APIKey)

	return s.query(ctx, params)
}

func (s *GeocodingService) query(ctx context.Context, params url.Values) (GeocodedLocation, error) {
	endpoint := s.BaseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return GeocodedLocation{}, fmt.Errorf("geocode: build request: %w", err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return GeocodedLocation{}, fmt.Errorf("geocode: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return GeocodedLocation{}, fmt.Errorf("geocode: http %s", resp.Status)
	}

	var payload geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return GeocodedLocation{}, fmt.Errorf("geocode: decode: %w", err)
	}
	if payload.Status != "OK" || len(payload.Results) == 0 {
		return GeocodedLocation{}, fmt.Errorf("geocode: provider status %q", payload.Status)
	}

	first := payload.Results[0]
	return GeocodedLocation{
		Address:   first.FormattedAddress,
		Latitude:  first.Geometry.Location.Lat,
		Longitude: first.Geometry.Location.Lng,
	}, nil
}

// DistanceBetween returns the great-circle distance between two points.
func DistanceBetween(lat1, lng1, lat2, lng2 float64) (float64, error) {
	if !geo.ValidCoordinates(lat1, lng1) || !geo.ValidCoordinates(lat2, lng2) {
		return 0, models.ErrInvalidCoordinates
	}
	return geo.HaversineKm(lat1, lng1, lat2, lng2), nil
}
