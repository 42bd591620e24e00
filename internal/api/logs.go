// ABOUTME: Handlers for /event-logs and /user-metrics.
// ABOUTME: Both are append-only; listing is per user, newest first.
package api

import (
	"net/http"

	"github.com/harperreed/smartfit/internal/models"
	"github.com/julienschmidt/httprouter"
)

const defaultListLimit = 100

func (s *Server) createEventLog(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in models.EventLogCreate
	if err := decodeBody(w, r, &in); err != nil {
		s.writeError(w, r, err, msgWorkoutNotFound)
		return
	}

	e := in.ToEventLog()
	if err := s.repo.CreateEventLog(r.Context(), e); err != nil {
		s.writeError(w, r, err, msgWorkoutNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) listEventLogs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, limit, err := userAndLimit(r)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}

	logs, err := s.repo.ListEventLogs(r.Context(), userID, limit)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func (s *Server) createUserMetric(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in models.UserMetricCreate
	if err := decodeBody(w, r, &in); err != nil {
		s.writeError(w, r, err, "")
		return
	}

	m := in.ToUserMetric()
	if err := s.repo.CreateUserMetric(r.Context(), m); err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) listUserMetrics(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, limit, err := userAndLimit(r)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}

	metrics, err := s.repo.ListUserMetrics(r.Context(), userID, limit)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}

func userAndLimit(r *http.Request) (int64, int, error) {
	userID, err := queryInt(r, "user_id", 0, true)
	if err != nil {
		return 0, 0, err
	}
	limit, err := queryInt(r, "limit", defaultListLimit, false)
	if err != nil {
		return 0, 0, err
	}
	return userID, int(limit), nil
}
