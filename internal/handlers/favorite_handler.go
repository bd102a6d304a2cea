package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"swapcycle/internal/models"
	"swapcycle/internal/services"
)

type FavoriteHandler struct {
	Service *services.FavoriteService
}

func (h *FavoriteHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var favorite models.Favorite
	if err := json.NewDecoder(r.Body).Decode(&favorite); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	favorite.UserID = userID

	created, err := h.Service.AddFavorite(r.Context(), favorite)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidFavorite):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, models.ErrProductNotFound), errors.Is(err, models.ErrServiceNotFound):
			writeError(w, http.StatusNotFound, "listing not found")
		case errors.Is(err, models.ErrDuplicateFavorite):
			writeError(w, http.StatusConflict, "already in favorites")
		default:
			writeError(w, http.StatusInternalServerError, "failed to add favorite")
		}
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *FavoriteHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid favorite id")
		return
	}

	if err := h.Service.RemoveFavorite(r.Context(), userID, id); err != nil {
		if errors.Is(err, models.ErrFavoriteNotFound) {
			writeError(w, http.StatusNotFound, "favorite not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to remove favorite")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CheckFavorite reports whether the caller already saved the listing
// named by product_id or service_id.
func (h *FavoriteHandler) CheckFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	productID, err := parseOptionalInt(r.URL.Query(), "product_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	serviceID, err := parseOptionalInt(r.URL.Query(), "service_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	favorited, err := h.Service.IsFavorite(r.Context(), userID, productID, serviceID)
	if err != nil {
		if errors.Is(err, services.ErrInvalidFavorite) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to check favorite")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"favorited": favorited})
}

func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	favorites, err := h.Service.ListFavorites(r.Context(), userID, r.URL.Query().Get("type"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list favorites")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"favorites": favorites})
}
