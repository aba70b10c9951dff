// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/maplegrovecc/communityhub/internal/model"
	"github.com/maplegrovecc/communityhub/internal/repository"
)

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Message: msg})
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeDomainError maps the error taxonomy to status codes and the standard
// envelope. notFoundMsg is used for the 404 case so listing handlers can say
// "Event not found" and registration handlers "Registration not found".
func writeDomainError(w http.ResponseWriter, err error, notFoundMsg string) {
	var validation *model.ValidationError
	if errors.As(err, &validation) {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{
			Message: "validation failed",
			Errors:  validation.Errors,
		})
		return
	}

	var full *model.CapacityExceededError
	var missing *model.ReferenceNotFoundError
	var closed *model.ListingClosedError
	if errors.As(err, &full) || errors.As(err, &missing) || errors.As(err, &closed) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, notFoundMsg)
		return
	}

	writeError(w, http.StatusInternalServerError, "internal server error")
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
