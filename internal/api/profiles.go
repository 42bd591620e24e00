// ABOUTME: Handlers for /user-profiles.
// ABOUTME: One profile per user_id; PUT applies only the fields present in the body.
package api

import (
	"net/http"

	"github.com/harperreed/smartfit/internal/models"
	"github.com/julienschmidt/httprouter"
)

func (s *Server) createProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in models.UserProfileCreate
	if err := decodeBody(w, r, &in); err != nil {
		s.writeError(w, r, err, msgProfileNotFound)
		return
	}

	p, err := s.repo.CreateProfile(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err, msgProfileNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, err := pathInt("user_id", ps.ByName("user_id"))
	if err != nil {
		s.writeError(w, r, err, msgProfileNotFound)
		return
	}

	p, err := s.repo.GetProfile(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err, msgProfileNotFound)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, err := pathInt("user_id", ps.ByName("user_id"))
	if err != nil {
		s.writeError(w, r, err, msgProfileNotFound)
		return
	}

	var patch models.UserProfileUpdate
	if err := decodeBody(w, r, &patch); err != nil {
		s.writeError(w, r, err, msgProfileNotFound)
		return
	}

	p, err := s.repo.UpdateProfile(r.Context(), userID, patch)
	if err != nil {
		s.writeError(w, r, err, msgProfileNotFound)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
