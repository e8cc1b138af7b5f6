package handler

import (
	"encoding/base64"
	"encoding/json"
	"encoding/xml"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/catalogkit/product-catalog-service/internal/domain"
	"github.com/catalogkit/product-catalog-service/internal/http/response"
	"github.com/catalogkit/product-catalog-service/internal/service"
)

type ProductHandler struct {
	reads  *service.CatalogReadService
	writes *service.CatalogWriteService
	debug  bool
}

func NewProductHandler(reads *service.CatalogReadService, writes *service.CatalogWriteService, debug bool) *ProductHandler {
	return &ProductHandler{reads: reads, writes: writes, debug: debug}
}

// productList is the XML root for collection responses; JSON responses use
// the standard envelope instead.
type productList struct {
	XMLName  xml.Name            `xml:"products"`
	Products []domain.ProductDTO `xml:"product"`
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	dtos, err := h.reads.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.debug)
		return
	}
	switch format(r) {
	case "xml":
		response.XML(w, r, http.StatusOK, productList{Products: dtos})
	case "", "json":
		response.JSON(w, r, http.StatusOK, map[string]any{"items": dtos})
	default:
		response.Error(w, r, http.StatusNotAcceptable, "NOT_ACCEPTABLE",
			"unsupported format, use 'json' or 'xml'", nil)
	}
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid product id", nil)
		return
	}
	dto, err := h.reads.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, h.debug)
		return
	}
	switch format(r) {
	case "xml":
		response.XML(w, r, http.StatusOK, dto)
	case "", "json":
		response.JSON(w, r, http.StatusOK, dto)
	default:
		response.Error(w, r, http.StatusNotAcceptable, "NOT_ACCEPTABLE",
			"unsupported format, use 'json' or 'xml'", nil)
	}
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.CreateProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	p, err := h.writes.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err, h.debug)
		return
	}
	response.JSON(w, r, http.StatusCreated, p)
}

type updateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	CategoryID  *uint    `json:"category_id"`
	// RowVersion is the base64-encoded version token read with the record;
	// when present the update only applies if the stored token still
	// matches.
	RowVersion string `json:"row_version"`
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid product id", nil)
		return
	}
	var body updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	in := service.UpdateProductInput{
		Name:        body.Name,
		Description: body.Description,
		Price:       body.Price,
		CategoryID:  body.CategoryID,
	}
	if body.RowVersion != "" {
		token, err := base64.StdEncoding.DecodeString(body.RowVersion)
		if err != nil {
			response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "row_version is not valid base64", nil)
			return
		}
		in.ExpectedVersion = token
	}
	p, err := h.writes.Update(r.Context(), id, in)
	if err != nil {
		writeServiceError(w, r, err, h.debug)
		return
	}
	response.JSON(w, r, http.StatusOK, p)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid product id", nil)
		return
	}
	if err := h.writes.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, h.debug)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func format(r *http.Request) string {
	return strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
}
