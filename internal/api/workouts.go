// ABOUTME: Handlers for /workouts.
// ABOUTME: Workouts are created with their steps in one call and deleted with them.
package api

import (
	"net/http"

	"github.com/harperreed/smartfit/internal/models"
	"github.com/julienschmidt/httprouter"
)

func (s *Server) createWorkout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in models.WorkoutCreate
	if err := decodeBody(w, r, &in); err != nil {
		s.writeError(w, r, err, msgWorkoutNotFound)
		return
	}

	wo := in.ToWorkout()
	if err := s.repo.CreateWorkout(r.Context(), wo); err != nil {
		s.writeError(w, r, err, msgWorkoutNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, wo)
}

func (s *Server) listWorkouts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, err := queryInt(r, "limit", defaultListLimit, false)
	if err != nil {
		s.writeError(w, r, err, msgWorkoutNotFound)
		return
	}

	workouts, err := s.repo.ListWorkouts(r.Context(), int(limit))
	if err != nil {
		s.writeError(w, r, err, msgWorkoutNotFound)
		return
	}
	writeJSON(w, http.StatusOK, workouts)
}

func (s *Server) getWorkout(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := pathInt("id", ps.ByName("id"))
	if err != nil {
		s.writeError(w, r, err, msgWorkoutNotFound)
		return
	}

	wo, err := s.repo.GetWorkout(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, msgWorkoutNotFound)
		return
	}
	writeJSON(w, http.StatusOK, wo)
}

func (s *Server) deleteWorkout(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := pathInt("id", ps.ByName("id"))
	if err != nil {
		s.writeError(w, r, err, msgWorkoutNotFound)
		return
	}

	if err := s.repo.DeleteWorkout(r.Context(), id); err != nil {
		s.writeError(w, r, err, msgWorkoutNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
