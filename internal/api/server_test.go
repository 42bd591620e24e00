// ABOUTME: HTTP tests for the API handlers against a temp SQLite database.
// ABOUTME: Covers status codes, error bodies, CORS, and the profile lifecycle.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/harperreed/smartfit/internal/models"
	"github.com/harperreed/smartfit/internal/recommend"
	"github.com/harperreed/smartfit/internal/storage"
)

func setupHandler(t *testing.T, opts Options) http.Handler {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "smartfit.db")
	db, err := storage.Open(context.Background(), "sqlite://"+dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return NewHandler(db, opts)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func detail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, rec)["detail"]
}

type validationBody struct {
	Detail []models.FieldError `json:"detail"`
}

const profileBody = `{"user_id":1,"height":180,"weight":80,"sex":"male","age":25,
	"experience_level":"beginner","primary_goal":"bulk","weekly_frequency":4}`

func TestHealth(t *testing.T) {
	h := setupHandler(t, Options{})

	rec := do(t, h, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decode[map[string]string](t, rec)
	if body["status"] != "ok" || body["message"] != "SmartFit Flow API is running" {
		t.Errorf("unexpected body: %v", body)
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("expected a request id header")
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	h := setupHandler(t, Options{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q, want abc-123", got)
	}
}

func TestProfileLifecycle(t *testing.T) {
	h := setupHandler(t, Options{})

	rec := do(t, h, http.MethodPost, "/user-profiles", profileBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body)
	}
	created := decode[models.UserProfile](t, rec)
	if created.ID == 0 || created.UnitSystem != models.UnitMetric {
		t.Errorf("unexpected profile: %+v", created)
	}

	rec = do(t, h, http.MethodPost, "/user-profiles", profileBody)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate status = %d, want 400", rec.Code)
	}
	if got := detail(t, rec); got != "User profile already exists. Use PUT to update." {
		t.Errorf("detail = %q", got)
	}

	rec = do(t, h, http.MethodGet, "/user-profiles/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	if got := decode[models.UserProfile](t, rec); got != created {
		t.Errorf("get returned %+v, want %+v", got, created)
	}

	rec = do(t, h, http.MethodPut, "/user-profiles/1", `{"weight":82}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d: %s", rec.Code, rec.Body)
	}
	updated := decode[models.UserProfile](t, rec)
	if updated.Weight != 82 {
		t.Errorf("weight = %v, want 82", updated.Weight)
	}
	if updated.Height != 180 || updated.Sex != models.SexMale || updated.Age != 25 ||
		updated.ExperienceLevel != models.ExperienceBeginner || updated.PrimaryGoal != models.GoalBulk ||
		updated.WeeklyFrequency != 4 || updated.CreatedAt != created.CreatedAt {
		t.Errorf("unpatched fields changed: %+v", updated)
	}
}

func TestProfileNotFound(t *testing.T) {
	h := setupHandler(t, Options{})

	for _, id := range []string{"99", "0", "-3"} {
		for _, method := range []string{http.MethodGet, http.MethodPut} {
			body := ""
			if method == http.MethodPut {
				body = `{"age":30}`
			}
			rec := do(t, h, method, "/user-profiles/"+id, body)
			if rec.Code != http.StatusNotFound {
				t.Errorf("%s /user-profiles/%s status = %d, want 404", method, id, rec.Code)
				continue
			}
			if got := detail(t, rec); got != "User profile not found" {
				t.Errorf("%s /user-profiles/%s detail = %q", method, id, got)
			}
		}
	}

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		if rec := do(t, h, method, "/workouts/0", ""); rec.Code != http.StatusNotFound {
			t.Errorf("%s /workouts/0 status = %d, want 404", method, rec.Code)
		}
	}
}

func TestProfileValidation(t *testing.T) {
	h := setupHandler(t, Options{})

	tests := []struct {
		name string
		body string
		loc  []string
	}{
		{"height too low", strings.Replace(profileBody, `"height":180`, `"height":50`, 1), []string{"body", "height"}},
		{"bad sex", strings.Replace(profileBody, `"sex":"male"`, `"sex":"robot"`, 1), []string{"body", "sex"}},
		{"wrong type", strings.Replace(profileBody, `"age":25`, `"age":"old"`, 1), []string{"body", "age"}},
		{"malformed", `{"user_id":`, []string{"body"}},
		{"empty body", "", []string{"body"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/user-profiles", tt.body)
			if rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d, want 422: %s", rec.Code, rec.Body)
			}
			body := decode[validationBody](t, rec)
			if len(body.Detail) == 0 {
				t.Fatal("expected field errors")
			}
			if strings.Join(body.Detail[0].Loc, ".") != strings.Join(tt.loc, ".") {
				t.Errorf("loc = %v, want %v", body.Detail[0].Loc, tt.loc)
			}
		})
	}

	rec := do(t, h, http.MethodGet, "/user-profiles/abc", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("non-integer user_id status = %d, want 422", rec.Code)
	}
}

func TestBodyMustBeSingleObject(t *testing.T) {
	h := setupHandler(t, Options{})

	tests := []struct {
		name string
		path string
		body string
	}{
		{"null profile", "/user-profiles", "null"},
		{"array profile", "/user-profiles", "[" + profileBody + "]"},
		{"scalar profile", "/user-profiles", "42"},
		{"trailing object", "/user-profiles", profileBody + " {}"},
		{"trailing garbage", "/user-profiles", profileBody + " x"},
		{"null update", "/user-profiles/1", "null"},
		{"null workout", "/workouts", "null"},
		{"trailing brace", "/event-logs", `{"user_id":1,"exercise_name":"Squat","set_number":1,"reps":5,"weight":100} }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := http.MethodPost
			if tt.path == "/user-profiles/1" {
				method = http.MethodPut
			}
			rec := do(t, h, method, tt.path, tt.body)
			if rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d, want 422: %s", rec.Code, rec.Body)
			}
			body := decode[validationBody](t, rec)
			if len(body.Detail) != 1 || body.Detail[0].Type != "json_invalid" {
				t.Errorf("unexpected detail: %+v", body.Detail)
			}
		})
	}

	rec := do(t, h, http.MethodGet, "/user-profiles/1", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("rejected bodies created a profile: status %d", rec.Code)
	}
}

func TestLooseSetAndStepFields(t *testing.T) {
	h := setupHandler(t, Options{})

	rec := do(t, h, http.MethodPost, "/event-logs", `{"user_id":1,"exercise_name":"","set_number":0,"reps":5,"weight":100}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("log status = %d: %s", rec.Code, rec.Body)
	}
	if e := decode[models.EventLog](t, rec); e.ExerciseName != "" || e.SetNumber != 0 {
		t.Errorf("unexpected log: %+v", e)
	}

	rec = do(t, h, http.MethodPost, "/workouts", `{"name":"Core","steps":[{"exercise_name":"Plank","target_sets":3,"target_reps":0,"order":1}]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("workout status = %d: %s", rec.Code, rec.Body)
	}

	rec = do(t, h, http.MethodPost, "/event-logs", `{"user_id":1,"set_number":1,"reps":5,"weight":100}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("missing exercise_name status = %d, want 422", rec.Code)
	}
	if body := decode[validationBody](t, rec); strings.Join(body.Detail[0].Loc, ".") != "body.exercise_name" {
		t.Errorf("loc = %v", body.Detail[0].Loc)
	}
}

func TestExercises(t *testing.T) {
	h := setupHandler(t, Options{})

	rec := do(t, h, http.MethodGet, "/exercises", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	all := decode[allExercises](t, rec)
	if len(all.ExercisesByBodyPart) != 6 || !all.AllowCustom {
		t.Errorf("unexpected catalog: %+v", all)
	}

	rec = do(t, h, http.MethodGet, "/exercises?body_part=back", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	back := decode[bodyPartExercises](t, rec)
	if back.BodyPart != models.BodyPartBack || len(back.Exercises) != 8 || back.Exercises[0] != "Lat Pulldown" {
		t.Errorf("unexpected back list: %+v", back)
	}

	rec = do(t, h, http.MethodGet, "/exercises?body_part=abs", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad body part status = %d, want 422", rec.Code)
	}
	body := decode[validationBody](t, rec)
	if body.Detail[0].Type != "enum" || body.Detail[0].Loc[0] != "query" {
		t.Errorf("unexpected error: %+v", body.Detail[0])
	}
}

func TestWorkoutLifecycle(t *testing.T) {
	h := setupHandler(t, Options{})

	rec := do(t, h, http.MethodPost, "/workouts", `{"name":"Push Day","steps":[
		{"exercise_name":"Bench Press","target_sets":3,"target_reps":8,"order":1},
		{"exercise_name":"Dips","target_sets":3,"order":2}]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body)
	}
	created := decode[models.Workout](t, rec)
	if created.ID == 0 || len(created.Steps) != 2 {
		t.Fatalf("unexpected workout: %+v", created)
	}
	path := "/workouts/" + strconv.FormatInt(created.ID, 10)

	rec = do(t, h, http.MethodGet, path, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	got := decode[models.Workout](t, rec)
	if got.Steps[0].ExerciseName != "Bench Press" || got.Steps[1].ExerciseName != "Dips" {
		t.Errorf("steps out of order: %+v", got.Steps)
	}
	if !got.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("created_at differs between POST and GET: %v vs %v", created.CreatedAt, got.CreatedAt)
	}

	rec = do(t, h, http.MethodGet, "/workouts", "")
	if list := decode[[]models.Workout](t, rec); len(list) != 1 {
		t.Errorf("expected 1 workout in list, got %d", len(list))
	}

	rec = do(t, h, http.MethodDelete, path, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}

	rec = do(t, h, http.MethodGet, path, "")
	if rec.Code != http.StatusNotFound || detail(t, rec) != "Workout not found" {
		t.Errorf("get after delete: %d %s", rec.Code, rec.Body)
	}

	rec = do(t, h, http.MethodDelete, path, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}

func TestWorkoutValidation(t *testing.T) {
	h := setupHandler(t, Options{})

	rec := do(t, h, http.MethodPost, "/workouts", `{"name":"Bad","steps":[{"exercise_name":"Squat","target_sets":0,"order":1}]}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	body := decode[validationBody](t, rec)
	if strings.Join(body.Detail[0].Loc, ".") != "body.steps.0.target_sets" {
		t.Errorf("loc = %v", body.Detail[0].Loc)
	}
}

func TestEventLogs(t *testing.T) {
	h := setupHandler(t, Options{})

	rec := do(t, h, http.MethodPost, "/event-logs", `{"user_id":1,"exercise_name":"Squat","set_number":1,"reps":5,"weight":100}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body)
	}
	e := decode[models.EventLog](t, rec)
	if !e.Completed || e.LoggedAt.IsZero() || e.WorkoutID != nil {
		t.Errorf("unexpected log: %+v", e)
	}

	rec = do(t, h, http.MethodPost, "/event-logs", `{"user_id":1,"workout_id":42,"exercise_name":"Squat","set_number":2,"reps":5,"weight":100}`)
	if rec.Code != http.StatusNotFound || detail(t, rec) != "Workout not found" {
		t.Errorf("unknown workout: %d %s", rec.Code, rec.Body)
	}

	rec = do(t, h, http.MethodPost, "/event-logs", `{"user_id":1,"exercise_name":"Squat","set_number":1,"reps":5,"weight":100,"rpe":11}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("rpe 11 status = %d, want 422", rec.Code)
	}

	rec = do(t, h, http.MethodGet, "/event-logs?user_id=1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	if logs := decode[[]models.EventLog](t, rec); len(logs) != 1 {
		t.Errorf("expected 1 log, got %d", len(logs))
	}

	rec = do(t, h, http.MethodGet, "/event-logs", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("missing user_id status = %d, want 422", rec.Code)
	}
}

func TestUserMetrics(t *testing.T) {
	h := setupHandler(t, Options{})

	rec := do(t, h, http.MethodPost, "/user-metrics", `{"user_id":2,"date":"2025-03-01","energy_level":7,"target_workout":["legs","legs","back"]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body)
	}
	m := decode[models.UserMetric](t, rec)
	if len(m.TargetWorkout) != 2 {
		t.Errorf("target_workout = %v, want de-duplicated", m.TargetWorkout)
	}

	rec = do(t, h, http.MethodPost, "/user-metrics", `{"user_id":2,"date":"2025-03-01","energy_level":0}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("energy 0 status = %d, want 422", rec.Code)
	}

	rec = do(t, h, http.MethodGet, "/user-metrics?user_id=2&limit=5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	if list := decode[[]models.UserMetric](t, rec); len(list) != 1 {
		t.Errorf("expected 1 metric, got %d", len(list))
	}
}

func TestRecommendationsUnavailable(t *testing.T) {
	h := setupHandler(t, Options{})

	rec := do(t, h, http.MethodPost, "/recommendations", `{"user_id":1,"date":"2025-03-01"}`)
	if rec.Code != http.StatusNotImplemented {
		t.Fatalf("status = %d, want 501", rec.Code)
	}

	rec = do(t, h, http.MethodPost, "/recommendations", `{"date":"2025-03-01"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("missing user_id status = %d, want 422", rec.Code)
	}
}

func TestRecommendationsWithEngine(t *testing.T) {
	engine := recommend.EngineFunc(func(_ context.Context, req models.RecommendationRequest) (*models.RecommendationResponse, error) {
		rate := 0.9
		return &models.RecommendationResponse{PredictedSuccessRate: &rate, Warnings: []string{}}, nil
	})
	h := setupHandler(t, Options{Engine: engine})

	rec := do(t, h, http.MethodPost, "/recommendations", `{"user_id":1,"date":"2025-03-01"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	resp := decode[models.RecommendationResponse](t, rec)
	if resp.PredictedSuccessRate == nil || *resp.PredictedSuccessRate != 0.9 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestRecommendationSchema(t *testing.T) {
	h := setupHandler(t, Options{})

	rec := do(t, h, http.MethodGet, "/recommendations/schema", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"available_time"`) || !strings.Contains(rec.Body.String(), `"response"`) {
		t.Errorf("schema missing fields: %s", rec.Body)
	}
}

func TestCORSPreflight(t *testing.T) {
	h := setupHandler(t, Options{CORSOrigins: []string{"http://localhost:5173"}})

	req := httptest.NewRequest(http.MethodOptions, "/user-profiles", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Allow-Origin = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("Allow-Credentials = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unexpected Allow-Origin for unknown origin: %q", got)
	}
}

func TestNotFoundRoute(t *testing.T) {
	h := setupHandler(t, Options{})

	rec := do(t, h, http.MethodGet, "/nope", "")
	if rec.Code != http.StatusNotFound || detail(t, rec) != "Not Found" {
		t.Errorf("unexpected: %d %s", rec.Code, rec.Body)
	}
}

// brokenRepo fails or panics on the calls the tests make.
type brokenRepo struct {
	storage.Repository
	panics bool
}

func (b brokenRepo) GetWorkout(context.Context, int64) (*models.Workout, error) {
	if b.panics {
		panic("boom")
	}
	return nil, errors.New("disk on fire")
}

func TestInternalErrorsAreHidden(t *testing.T) {
	var logs bytes.Buffer
	h := NewHandler(brokenRepo{}, Options{Logger: log.New(&logs)})

	rec := do(t, h, http.MethodGet, "/workouts/1", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if got := detail(t, rec); got != "Internal server error" {
		t.Errorf("detail = %q", got)
	}
	if !strings.Contains(logs.String(), "disk on fire") {
		t.Error("expected the cause to be logged")
	}
}

func TestPanicRecovery(t *testing.T) {
	h := NewHandler(brokenRepo{panics: true}, Options{Logger: log.New(io.Discard)})

	rec := do(t, h, http.MethodGet, "/workouts/1", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}
