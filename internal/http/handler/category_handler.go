package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/catalogkit/product-catalog-service/internal/http/response"
	"github.com/catalogkit/product-catalog-service/internal/service"
)

type CategoryHandler struct {
	categories *service.CategoryService
	debug      bool
}

func NewCategoryHandler(categories *service.CategoryService, debug bool) *CategoryHandler {
	return &CategoryHandler{categories: categories, debug: debug}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.debug)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]any{"items": categories})
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.CategoryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	c, err := h.categories.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err, h.debug)
		return
	}
	response.JSON(w, r, http.StatusCreated, c)
}

// Delete removes a category together with all of its products.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid category id", nil)
		return
	}
	if err := h.categories.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, h.debug)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
