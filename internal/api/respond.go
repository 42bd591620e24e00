// ABOUTME: JSON response helpers and the mapping from errors to HTTP statuses.
// ABOUTME: Every error body has a "detail" key, a string or a list of field errors.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/harperreed/smartfit/internal/models"
	"github.com/harperreed/smartfit/internal/recommend"
	"github.com/harperreed/smartfit/internal/storage"
)

const (
	msgProfileExists   = "User profile already exists. Use PUT to update."
	msgProfileNotFound = "User profile not found"
	msgWorkoutNotFound = "Workout not found"
	msgNoEngine        = "Recommendation engine is not available"
	msgInternal        = "Internal server error"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeValidation(w http.ResponseWriter, verr *models.ValidationError) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string][]models.FieldError{"detail": verr.Fields})
}

// writeError maps err onto a status. notFound is the detail used for storage.ErrNotFound.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		writeValidation(w, verr)
	case errors.Is(err, storage.ErrNotFound):
		writeDetail(w, http.StatusNotFound, notFound)
	case errors.Is(err, storage.ErrConflict):
		writeDetail(w, http.StatusBadRequest, msgProfileExists)
	case errors.Is(err, recommend.ErrUnavailable):
		writeDetail(w, http.StatusNotImplemented, msgNoEngine)
	default:
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "request_id", requestID(r.Context()), "err", err)
		writeDetail(w, http.StatusInternalServerError, msgInternal)
	}
}
