package geo

import (
	"math"
	"testing"
)

func TestHaversineKmSymmetry(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
	}{
		{"new york to london", 40.7128, -74.0060, 51.5074, -0.1278},
		{"equator crossing", -1.0, 10.0, 1.0, -10.0},
		{"antimeridian neighbors", 10.0, 179.5, 10.0, -179.5},
		{"zero coordinates", 0, 0, 12.34, 56.78},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ab := HaversineKm(tc.lat1, tc.lon1, tc.lat2, tc.lon2)
			ba := HaversineKm(tc.lat2, tc.lon2, tc.lat1, tc.lon1)
			if math.Abs(ab-ba) > 1e-9 {
				t.Fatalf("expected symmetric distances, got %f and %f", ab, ba)
			}
			if ab < 0 {
				t.Fatalf("expected non-negative distance, got %f", ab)
			}
		})
	}
}

func TestHaversineKmIdentity(t *testing.T) {
	if d := HaversineKm(40.0, -74.0, 40.0, -74.0); d != 0 {
		t.Fatalf("expected zero distance for identical points, got %f", d)
	}
}

func TestHaversineKmKnownDistance(t *testing.T) {
	// Paris to Berlin, roughly 878 km.
	d := HaversineKm(48.8566, 2.3522, 52.5200, 13.4050)
	if d < 850 || d > 900 {
		t.Fatalf("expected roughly 878 km, got %f", d)
	}
}

func TestBoundingBoxContainsRadius(t *testing.T) {
	center := struct{ lat, lng float64 }{40.0, -74.0}
	b := BoundingBox(center.lat, center.lng, 5)

	if b.North <= center.lat || b.South >= center.lat {
		t.Fatalf("latitude window does not bracket center: %+v", b)
	}
	if b.East <= center.lng || b.West >= center.lng {
		t.Fatalf("longitude window does not bracket center: %+v", b)
	}

	// A point 2 km due north must be inside the box.
	nearLat := center.lat + 2.0/111.0
	if !b.Contains(nearLat, center.lng) {
		t.Errorf("expected point 2km north inside box %+v", b)
	}

	// A point 20 km due east must be outside.
	farLng := center.lng + 20.0/(111.0*math.Cos(center.lat*math.Pi/180))
	if b.Contains(center.lat, farLng) {
		t.Errorf("expected point 20km east outside box %+v", b)
	}
}

func TestBoundingBoxNearPole(t *testing.T) {
	b := BoundingBox(90.0, 15.0, 10)
	if b.West != -180 || b.East != 180 {
		t.Fatalf("expected full longitude span near the pole, got %+v", b)
	}
	if b.North <= b.South {
		t.Fatalf("latitude window inverted: %+v", b)
	}
}

func TestValidCoordinates(t *testing.T) {
	cases := []struct {
		name     string
		lat, lng float64
		want     bool
	}{
		{"normal", 40.0, -74.0, true},
		{"zero pair", 0, 0, true},
		{"lat too big", 91, 0, false},
		{"lat too small", -91, 0, false},
		{"lng too big", 0, 181, false},
		{"lng too small", 0, -181, false},
		{"edges", -90, 180, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidCoordinates(tc.lat, tc.lng); got != tc.want {
				t.Errorf("ValidCoordinates(%f, %f) = %v, want %v", tc.lat, tc.lng, got, tc.want)
			}
		})
	}
}
