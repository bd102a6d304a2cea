package handlers

import (
	"errors"
	"net/http"

	"swapcycle/internal/models"
	"swapcycle/internal/services"
)

// UtilsHandler serves the currency and geography helper endpoints.
type UtilsHandler struct {
	Exchange  *services.ExchangeService
	Geocoding *services.GeocodingService
}

func (h *UtilsHandler) Currencies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"currencies": services.SupportedCurrencies})
}

func (h *UtilsHandler) Convert(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	amount, err := parseFloatDefault(values, "amount", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	from := values.Get("from")
	to := values.Get("to")
	if from == "" || to == "" {
		writeError(w, http.StatusBadRequest, "from and to currencies are required")
		return
	}

	converted, err := h.Exchange.Convert(r.Context(), amount, from, to)
	if err != nil {
		writeError(w, http.StatusBadGateway, "currency conversion unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"amount":    amount,
		"from":      from,
		"to":        to,
		"converted": converted,
	})
}

func (h *UtilsHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	if address == "" {
		writeError(w, http.StatusBadRequest, "address is required")
		return
	}

	location, err := h.Geocoding.Geocode(r.Context(), address)
	if err != nil {
		writeError(w, http.StatusBadGateway, "geocoding unavailable")
		return
	}

	writeJSON(w, http.StatusOK, location)
}

func (h *UtilsHandler) ReverseGeocode(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	lat, err := parseOptionalFloat(values, "latitude")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	lng, err := parseOptionalFloat(values, "longitude")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if lat == nil || lng == nil {
		writeError(w, http.StatusBadRequest, "latitude and longitude are required")
		return
	}

	location, err := h.Geocoding.ReverseGeocode(r.Context(), *lat, *lng)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCoordinates) {
			writeError(w, http.StatusBadRequest, "invalid coordinates")
			return
		}
		writeError(w, http.StatusBadGateway, "geocoding unavailable")
		return
	}

	writeJSON(w, http.StatusOK, location)
}

// Distance returns the great-circle distance between two points.
func (h *UtilsHandler) Distance(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	var coords [4]float64
	for i, name := range []string{"lat1", "lng1", "lat2", "lng2"} {
		v, err := parseOptionalFloat(values, name)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if v == nil {
			writeError(w, http.StatusBadRequest, "lat1, lng1, lat2 and lng2 are required")
			return
		}
		coords[i] = *v
	}

	distance, err := services.DistanceBetween(coords[0], coords[1], coords[2], coords[3])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid coordinates")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"distance_km": distance})
}
