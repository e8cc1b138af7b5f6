package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/catalogkit/product-catalog-service/internal/apperr"
	"github.com/catalogkit/product-catalog-service/internal/http/response"
)

func parsePathID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

// writeServiceError maps the service error taxonomy onto status codes.
// Internal causes stay hidden unless debug mode is on.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, debug bool) {
	e := apperr.From(err)
	if e == nil {
		writeInternal(w, r, err, debug)
		return
	}
	switch e.Kind {
	case apperr.KindValidation:
		response.Error(w, r, http.StatusBadRequest, "VALIDATION_ERROR", e.Error(), e.Fields)
	case apperr.KindNotFound:
		response.Error(w, r, http.StatusNotFound, "NOT_FOUND", e.Error(), nil)
	case apperr.KindConflict:
		response.Error(w, r, http.StatusConflict, "CONFLICT", e.Error(), nil)
	default:
		writeInternal(w, r, err, debug)
	}
}

func writeInternal(w http.ResponseWriter, r *http.Request, err error, debug bool) {
	var details interface{}
	if debug {
		details = err.Error()
	}
	response.Error(w, r, http.StatusInternalServerError, "INTERNAL",
		"an error occurred while processing your request", details)
}
