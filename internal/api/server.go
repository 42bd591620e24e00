// ABOUTME: HTTP router for the SmartFit API built on httprouter.
// ABOUTME: Wires handlers, CORS, request logging, and panic recovery.
package api

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/harperreed/smartfit/internal/recommend"
	"github.com/harperreed/smartfit/internal/storage"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// Options configures the HTTP handler.
type Options struct {
	// CORSOrigins lists browser origins allowed to call the API with credentials.
	CORSOrigins []string
	// Engine answers POST /recommendations. Nil means recommend.Unavailable.
	Engine recommend.Engine
	// Logger receives one line per request. Nil means log.Default().
	Logger *log.Logger
}

// Server holds the dependencies shared by all handlers.
type Server struct {
	repo   storage.Repository
	engine recommend.Engine
	logger *log.Logger
}

// NewHandler builds the complete HTTP handler for the API.
func NewHandler(repo storage.Repository, opts Options) http.Handler {
	s := &Server{
		repo:   repo,
		engine: opts.Engine,
		logger: opts.Logger,
	}
	if s.engine == nil {
		s.engine = recommend.Unavailable{}
	}
	if s.logger == nil {
		s.logger = log.Default()
	}

	r := httprouter.New()

	r.GET("/health", s.health)
	r.GET("/exercises", s.listExercises)

	r.POST("/user-profiles", s.createProfile)
	r.GET("/user-profiles/:user_id", s.getProfile)
	r.PUT("/user-profiles/:user_id", s.updateProfile)

	r.POST("/event-logs", s.createEventLog)
	r.GET("/event-logs", s.listEventLogs)

	r.POST("/user-metrics", s.createUserMetric)
	r.GET("/user-metrics", s.listUserMetrics)

	r.POST("/workouts", s.createWorkout)
	r.GET("/workouts", s.listWorkouts)
	r.GET("/workouts/:id", s.getWorkout)
	r.DELETE("/workouts/:id", s.deleteWorkout)

	r.POST("/recommendations", s.recommend)
	r.GET("/recommendations/schema", s.recommendationSchema)

	r.NotFound = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})
	r.PanicHandler = s.recoverPanic

	c := cors.New(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowCredentials: true,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions, http.MethodHead,
		},
		AllowedHeaders: []string{"*"},
	})

	return s.withRequestLog(c.Handler(r))
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "SmartFit Flow API is running",
	})
}
