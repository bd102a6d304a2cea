package models

import (
	"testing"
)

func intPtr(v int) *int { return &v }

func TestTradeValidateItems(t *testing.T) {
	cases := []struct {
		name    string
		trade   Trade
		wantErr bool
	}{
		{
			name:  "product for product",
			trade: Trade{OfferedProductID: intPtr(1), RequestedProductID: intPtr(2)},
		},
		{
			name:  "product for service",
			trade: Trade{OfferedProductID: intPtr(1), RequestedServiceID: intPtr(2)},
		},
		{
			name:  "service for service",
			trade: Trade{OfferedServiceID: intPtr(1), RequestedServiceID: intPtr(2)},
		},
		{
			name:    "nothing offered",
			trade:   Trade{RequestedProductID: intPtr(2)},
			wantErr: true,
		},
		{
			name:    "nothing requested",
			trade:   Trade{OfferedProductID: intPtr(1)},
			wantErr: true,
		},
		{
			name: "both offered slots filled",
			trade: Trade{
				OfferedProductID:   intPtr(1),
				OfferedServiceID:   intPtr(2),
				RequestedProductID: intPtr(3),
			},
			wantErr: true,
		},
		{
			name:    "empty trade",
			trade:   Trade{},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.trade.ValidateItems()
			if tc.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestTradeStateGuards(t *testing.T) {
	for _, status := range []string{TradeStatusAccepted, TradeStatusDeclined, TradeStatusCancelled} {
		trade := Trade{Status: status}
		if trade.CanBeAnswered() {
			t.Errorf("%s trade should not be answerable", status)
		}
		if trade.CanBeCancelled() {
			t.Errorf("%s trade should not be cancellable", status)
		}
	}

	pending := Trade{Status: TradeStatusPending}
	if !pending.CanBeAnswered() || !pending.CanBeCancelled() {
		t.Error("pending trade must allow answer and cancel")
	}
}

func TestProductUpdateAvailability(t *testing.T) {
	p := Product{Quantity: 2}
	p.UpdateAvailability()
	if p.AvailabilityStatus != StatusAvailable {
		t.Fatalf("expected available, got %q", p.AvailabilityStatus)
	}

	p.Quantity = 0
	p.UpdateAvailability()
	if p.AvailabilityStatus != StatusUnavailable {
		t.Fatalf("expected unavailable at zero quantity, got %q", p.AvailabilityStatus)
	}
}

func TestServiceNormalizeLocation(t *testing.T) {
	addr := "main street"
	lat := 40.0
	lng := -74.0

	online := Service{IsOnline: true, Address: &addr, Latitude: &lat, Longitude: &lng}
	online.NormalizeLocation()
	if online.Address != nil || online.Latitude != nil || online.Longitude != nil {
		t.Error("online service must not keep location data")
	}

	physical := Service{Address: &addr, Latitude: &lat, Longitude: &lng}
	physical.NormalizeLocation()
	if physical.Address == nil || physical.Latitude == nil || physical.Longitude == nil {
		t.Error("physical service must keep location data")
	}
}

func TestBoundsContains(t *testing.T) {
	b := Bounds{North: 41, South: 40, East: -73, West: -74}

	cases := []struct {
		lat, lng float64
		want     bool
	}{
		{40.5, -73.5, true},
		{41, -73, true}, // edges are inclusive
		{40, -74, true},
		{41.01, -73.5, false},
		{40.5, -72.99, false},
	}

	for _, tc := range cases {
		if got := b.Contains(tc.lat, tc.lng); got != tc.want {
			t.Errorf("Contains(%f, %f) = %v, want %v", tc.lat, tc.lng, got, tc.want)
		}
	}
}
