package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"swapcycle/internal/models"
	"swapcycle/internal/repositories"
	"swapcycle/internal/services"
	"swapcycle/utils"
)

type ServiceHandler struct {
	Service *services.ServiceService
	Images  *utils.ImageStore
}

func (h *ServiceHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	err := r.ParseMultipartForm(32 << 20) // 32MB
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	var service models.Service
	service.UserID = userID
	service.Name = r.FormValue("name")
	service.Description = r.FormValue("description")
	service.EstimatedValue, err = strconv.ParseFloat(r.FormValue("estimated_value"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid estimated_value")
		return
	}
	service.CategoryID, err = strconv.Atoi(r.FormValue("category_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category_id")
		return
	}
	service.IsOnline = r.FormValue("is_online") == "true"
	service.CreatedAt = time.Now()

	if v := r.FormValue("subcategory_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid subcategory_id")
			return
		}
		service.SubcategoryID = &id
	}
	if v := r.FormValue("address"); v != "" {
		service.Address = &v
	}
	if v := r.FormValue("latitude"); v != "" {
		lat, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid latitude")
			return
		}
		service.Latitude = &lat
	}
	if v := r.FormValue("longitude"); v != "" {
		lng, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid longitude")
			return
		}
		service.Longitude = &lng
	}

	images, err := h.saveImages(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save images")
		return
	}
	service.Images = images

	created, err := h.Service.CreateService(r.Context(), service)
	if err != nil {
		if errors.Is(err, models.ErrCategoryNotFound) || errors.Is(err, models.ErrAddressRequired) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create service")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *ServiceHandler) GetServiceByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid service id")
		return
	}

	service, err := h.Service.GetServiceByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrServiceNotFound) {
			writeError(w, http.StatusNotFound, "service not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load service")
		return
	}

	writeJSON(w, http.StatusOK, service)
}

func (h *ServiceHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid service id")
		return
	}

	var service models.Service
	if err := json.NewDecoder(r.Body).Decode(&service); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	service.ID = id

	updated, err := h.Service.UpdateService(r.Context(), userID, service)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrServiceNotFound):
			writeError(w, http.StatusNotFound, "service not found")
		case errors.Is(err, models.ErrNotOwner):
			writeError(w, http.StatusForbidden, "service belongs to another user")
		case errors.Is(err, models.ErrAddressRequired):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to update service")
		}
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *ServiceHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid service id")
		return
	}

	err = h.Service.DeleteService(r.Context(), userID, id)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrServiceNotFound):
			writeError(w, http.StatusNotFound, "service not found")
		case errors.Is(err, models.ErrNotOwner):
			writeError(w, http.StatusForbidden, "service belongs to another user")
		default:
			writeError(w, http.StatusInternalServerError, "failed to delete service")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ServiceHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	categoryID, err := parseOptionalInt(values, "category_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	subcategoryID, err := parseOptionalInt(values, "subcategory_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	userID, err := parseOptionalInt(values, "user_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	page, err := parseIntDefault(values, "page", 1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	perPage, err := parseIntDefault(values, "per_page", 10)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	filter := repositories.ServiceListFilter{
		CategoryID:    categoryID,
		SubcategoryID: subcategoryID,
		UserID:        userID,
	}
	if v := values.Get("is_online"); v != "" {
		online := v == "true"
		filter.IsOnline = &online
	}

	resp, err := h.Service.ListServices(r.Context(), filter, page, perPage)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list services")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *ServiceHandler) saveImages(r *http.Request) ([]string, error) {
	var paths []string
	for _, fileHeader := range r.MultipartForm.File["images"] {
		file, err := fileHeader.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, err
		}

		path, err := h.Images.Save(data, utils.NewImageName(fileHeader.Filename), "services")
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
