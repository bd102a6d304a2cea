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

type ProductHandler struct {
	Service *services.ProductService
	Images  *utils.ImageStore
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
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

	var product models.Product
	product.UserID = userID
	product.Name = r.FormValue("name")
	product.Description = r.FormValue("description")
	product.Condition = r.FormValue("condition")
	product.Address = r.FormValue("address")
	product.EstimatedValue, err = strconv.ParseFloat(r.FormValue("estimated_value"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid estimated_value")
		return
	}
	if v := r.FormValue("quantity"); v != "" {
		product.Quantity, err = strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid quantity")
			return
		}
	}
	product.CategoryID, err = strconv.Atoi(r.FormValue("category_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category_id")
		return
	}
	product.CreatedAt = time.Now()

	if v := r.FormValue("subcategory_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid subcategory_id")
			return
		}
		product.SubcategoryID = &id
	}
	if v := r.FormValue("latitude"); v != "" {
		lat, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid latitude")
			return
		}
		product.Latitude = &lat
	}
	if v := r.FormValue("longitude"); v != "" {
		lng, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid longitude")
			return
		}
		product.Longitude = &lng
	}

	images, err := h.saveImages(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save images")
		return
	}
	product.Images = images

	created, err := h.Service.CreateProduct(r.Context(), product)
	if err != nil {
		if errors.Is(err, models.ErrCategoryNotFound) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *ProductHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.Service.GetProductByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load product")
		return
	}

	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	product.ID = id

	updated, err := h.Service.UpdateProduct(r.Context(), userID, product)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrProductNotFound):
			writeError(w, http.StatusNotFound, "product not found")
		case errors.Is(err, models.ErrNotOwner):
			writeError(w, http.StatusForbidden, "product belongs to another user")
		default:
			writeError(w, http.StatusInternalServerError, "failed to update product")
		}
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	err = h.Service.DeleteProduct(r.Context(), userID, id)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrProductNotFound):
			writeError(w, http.StatusNotFound, "product not found")
		case errors.Is(err, models.ErrNotOwner):
			writeError(w, http.StatusForbidden, "product belongs to another user")
		default:
			writeError(w, http.StatusInternalServerError, "failed to delete product")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
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

	filter := repositories.ProductListFilter{
		CategoryID:    categoryID,
		SubcategoryID: subcategoryID,
		UserID:        userID,
	}

	resp, err := h.Service.ListProducts(r.Context(), filter, page, perPage)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *ProductHandler) saveImages(r *http.Request) ([]string, error) {
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

		path, err := h.Images.Save(data, utils.NewImageName(fileHeader.Filename), "products")
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
