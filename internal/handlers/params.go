package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"swapcycle/internal/models"
)

// writeError emits the JSON error body clients expect alongside the
// status code.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// writeBoundsRequired is the map-data 400. Map clients key off the
// error field, unlike the message field everywhere else.
func writeBoundsRequired(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]string{"error": "Map bounds required"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// parseOptionalFloat returns nil for an absent parameter so the caller
// can tell "not supplied" apart from an explicit zero.
func parseOptionalFloat(values url.Values, name string) (*float64, error) {
	raw := values.Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s", name)
	}
	return &v, nil
}

func parseOptionalInt(values url.Values, name string) (*int, error) {
	raw := values.Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s", name)
	}
	return &v, nil
}

func parseIntDefault(values url.Values, name string, fallback int) (int, error) {
	raw := values.Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return v, nil
}

func parseFloatDefault(values url.Values, name string, fallback float64) (float64, error) {
	raw := values.Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return v, nil
}

// parseBounds reads the four bounds parameters as a unit. All four must
// be present for a bounds window to exist.
func parseBounds(values url.Values) (*models.Bounds, error) {
	north, err := parseOptionalFloat(values, "north")
	if err != nil {
		return nil, err
	}
	south, err := parseOptionalFloat(values, "south")
	if err != nil {
		return nil, err
	}
	east, err := parseOptionalFloat(values, "east")
	if err != nil {
		return nil, err
	}
	west, err := parseOptionalFloat(values, "west")
	if err != nil {
		return nil, err
	}

	if north == nil && south == nil && east == nil && west == nil {
		return nil, nil
	}
	if north == nil || south == nil || east == nil || west == nil {
		return nil, fmt.Errorf("incomplete map bounds")
	}
	return &models.Bounds{North: *north, South: *south, East: *east, West: *west}, nil
}

func pathID(r *http.Request) (int, error) {
	idStr := r.URL.Query().Get(":id")
	if idStr == "" {
		return 0, fmt.Errorf("missing id")
	}
	return strconv.Atoi(idStr)
}

// authUserID reads the user id placed on the request context by the
// JWT middleware.
func authUserID(r *http.Request) (int, bool) {
	id, ok := r.Context().Value(ContextKeyUserID).(int)
	return id, ok
}
