// ABOUTME: Handlers for /exercises, /recommendations, and the recommendation schema.
// ABOUTME: The catalog is static; recommendations go to the configured engine.
package api

import (
	"net/http"

	"github.com/harperreed/smartfit/internal/exercises"
	"github.com/harperreed/smartfit/internal/models"
	"github.com/harperreed/smartfit/internal/recommend"
	"github.com/julienschmidt/httprouter"
)

type bodyPartExercises struct {
	BodyPart    models.BodyPart `json:"body_part"`
	Exercises   []string        `json:"exercises"`
	AllowCustom bool            `json:"allow_custom"`
}

type allExercises struct {
	ExercisesByBodyPart map[string][]string `json:"exercises_by_body_part"`
	AllowCustom         bool                `json:"allow_custom"`
}

func (s *Server) listExercises(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	raw := r.URL.Query().Get("body_part")
	if raw == "" {
		writeJSON(w, http.StatusOK, allExercises{ExercisesByBodyPart: exercises.All(), AllowCustom: true})
		return
	}

	b := models.BodyPart(raw)
	if !b.Valid() {
		s.writeError(w, r, models.NewValidationError(
			[]string{"query", "body_part"},
			"Input should be "+models.QuoteJoin(b.Options()),
			"enum",
		), "")
		return
	}
	writeJSON(w, http.StatusOK, bodyPartExercises{BodyPart: b, Exercises: exercises.For(b), AllowCustom: true})
}

func (s *Server) recommend(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req models.RecommendationRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err, "")
		return
	}

	resp, err := s.engine.Recommend(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) recommendationSchema(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, recommend.Schemas())
}
