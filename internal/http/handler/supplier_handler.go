package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/catalogkit/product-catalog-service/internal/http/response"
	"github.com/catalogkit/product-catalog-service/internal/service"
)

type SupplierHandler struct {
	suppliers *service.SupplierService
	writes    *service.CatalogWriteService
	debug     bool
}

func NewSupplierHandler(suppliers *service.SupplierService, writes *service.CatalogWriteService, debug bool) *SupplierHandler {
	return &SupplierHandler{suppliers: suppliers, writes: writes, debug: debug}
}

func (h *SupplierHandler) List(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.suppliers.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.debug)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]any{"items": suppliers})
}

func (h *SupplierHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid supplier id", nil)
		return
	}
	sup, err := h.suppliers.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, h.debug)
		return
	}
	response.JSON(w, r, http.StatusOK, sup)
}

func (h *SupplierHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.SupplierInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	sup, err := h.suppliers.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err, h.debug)
		return
	}
	response.JSON(w, r, http.StatusCreated, sup)
}

func (h *SupplierHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid supplier id", nil)
		return
	}
	var in service.SupplierInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	sup, err := h.suppliers.Update(r.Context(), id, in)
	if err != nil {
		writeServiceError(w, r, err, h.debug)
		return
	}
	response.JSON(w, r, http.StatusOK, sup)
}

func (h *SupplierHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid supplier id", nil)
		return
	}
	if err := h.suppliers.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, h.debug)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateAtomic creates a supplier and a product in one transaction.
func (h *SupplierHandler) CreateAtomic(w http.ResponseWriter, r *http.Request) {
	var in service.AtomicSupplierProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	sup, p, err := h.writes.CreateSupplierWithProduct(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err, h.debug)
		return
	}
	response.JSON(w, r, http.StatusCreated, map[string]any{"supplier": sup, "product": p})
}
