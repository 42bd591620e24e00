// ABOUTME: MCP tool implementations for SmartFit.
// ABOUTME: Exposes profile, set logging, daily metric, workout, and catalog operations.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/harperreed/smartfit/internal/exercises"
	"github.com/harperreed/smartfit/internal/models"
	"github.com/harperreed/smartfit/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// profiles
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_user_profile",
		Description: "Get the training profile for a user",
	}, s.handleGetProfile)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "create_user_profile",
		Description: "Create a training profile (height, weight, sex, age, experience, goal, weekly frequency)",
	}, s.handleCreateProfile)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_user_profile",
		Description: "Change selected fields of an existing training profile",
	}, s.handleUpdateProfile)

	// event logs
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_set",
		Description: "Record one performed set (exercise, set number, reps, weight, optional RPE)",
	}, s.handleLogSet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_event_logs",
		Description: "List a user's logged sets, newest first",
	}, s.handleListEventLogs)

	// daily metrics
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_daily_metric",
		Description: "Record a user's condition for a day (sleep, energy, available time, target body parts)",
	}, s.handleAddDailyMetric)

	// workouts
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "create_workout",
		Description: "Create a workout routine with ordered steps",
	}, s.handleCreateWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_workout",
		Description: "Get a workout routine with its steps",
	}, s.handleGetWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List workout routines, newest first",
	}, s.handleListWorkouts)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_workout",
		Description: "Delete a workout routine and its steps",
	}, s.handleDeleteWorkout)

	// catalog
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_exercises",
		Description: "List suggested exercises, optionally for one body part",
	}, s.handleListExercises)
}

// Tool input/output types

type userInput struct {
	UserID int64 `json:"user_id" jsonschema:"External user id"`
}

type createProfileInput struct {
	UserID          int64   `json:"user_id" jsonschema:"External user id"`
	Height          float64 `json:"height" jsonschema:"Height in cm (100-250)"`
	Weight          float64 `json:"weight" jsonschema:"Weight in kg (30-250)"`
	Sex             string  `json:"sex" jsonschema:"male, female or prefer_not_to_say"`
	Age             int     `json:"age" jsonschema:"Age in years (10-100)"`
	UnitSystem      string  `json:"unit_system,omitempty" jsonschema:"metric or imperial, defaults to metric"`
	ExperienceLevel string  `json:"experience_level" jsonschema:"beginner, intermediate or advanced"`
	PrimaryGoal     string  `json:"primary_goal" jsonschema:"bulk, cut, lean_mass or weight_loss"`
	WeeklyFrequency int     `json:"weekly_frequency" jsonschema:"Training days per week (1-7)"`
}

type updateProfileInput struct {
	UserID          int64    `json:"user_id" jsonschema:"External user id"`
	Height          *float64 `json:"height,omitempty" jsonschema:"Height in cm (100-250)"`
	Weight          *float64 `json:"weight,omitempty" jsonschema:"Weight in kg (30-250)"`
	Sex             *string  `json:"sex,omitempty" jsonschema:"male, female or prefer_not_to_say"`
	Age             *int     `json:"age,omitempty" jsonschema:"Age in years (10-100)"`
	UnitSystem      *string  `json:"unit_system,omitempty" jsonschema:"metric or imperial"`
	ExperienceLevel *string  `json:"experience_level,omitempty" jsonschema:"beginner, intermediate or advanced"`
	PrimaryGoal     *string  `json:"primary_goal,omitempty" jsonschema:"bulk, cut, lean_mass or weight_loss"`
	WeeklyFrequency *int     `json:"weekly_frequency,omitempty" jsonschema:"Training days per week (1-7)"`
}

type logSetInput struct {
	UserID       int64    `json:"user_id" jsonschema:"External user id"`
	WorkoutID    *int64   `json:"workout_id,omitempty" jsonschema:"Workout routine the set belongs to"`
	ExerciseName string   `json:"exercise_name" jsonschema:"Exercise performed"`
	SetNumber    int      `json:"set_number" jsonschema:"Set number within the exercise"`
	Reps         int      `json:"reps" jsonschema:"Repetitions performed"`
	Weight       float64  `json:"weight" jsonschema:"Load in kg"`
	RPE          *float64 `json:"rpe,omitempty" jsonschema:"Rate of perceived exertion (1-10)"`
	Completed    *bool    `json:"completed,omitempty" jsonschema:"Whether the set was completed, defaults to true"`
}

type listInput struct {
	UserID int64 `json:"user_id" jsonschema:"External user id"`
	Limit  int   `json:"limit,omitempty" jsonschema:"Maximum entries to return (default 20)"`
}

type dailyMetricInput struct {
	UserID        int64    `json:"user_id" jsonschema:"External user id"`
	Date          string   `json:"date" jsonschema:"Day of the snapshot (YYYY-MM-DD or ISO 8601)"`
	SleepHours    *float64 `json:"sleep_hours,omitempty" jsonschema:"Hours slept (0-24)"`
	EnergyLevel   *int     `json:"energy_level,omitempty" jsonschema:"Self-reported energy (1-10)"`
	AvailableTime *int     `json:"available_time,omitempty" jsonschema:"Minutes available for training"`
	TargetWorkout []string `json:"target_workout,omitempty" jsonschema:"Body parts to train: back, chest, legs, shoulders, biceps, triceps"`
	Notes         string   `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type stepInput struct {
	ExerciseName string   `json:"exercise_name" jsonschema:"Exercise name"`
	TargetSets   int      `json:"target_sets" jsonschema:"Number of sets"`
	TargetReps   *int     `json:"target_reps,omitempty" jsonschema:"Reps per set"`
	TargetWeight *float64 `json:"target_weight,omitempty" jsonschema:"Load in kg"`
	Order        int      `json:"order" jsonschema:"Position of the step in the routine"`
}

type createWorkoutInput struct {
	Name        string      `json:"name" jsonschema:"Routine name"`
	Description string      `json:"description,omitempty" jsonschema:"Optional description"`
	Steps       []stepInput `json:"steps" jsonschema:"Ordered steps"`
}

type workoutIDInput struct {
	ID int64 `json:"id" jsonschema:"Workout id"`
}

type listWorkoutsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum routines to return (default 20)"`
}

type listExercisesInput struct {
	BodyPart string `json:"body_part,omitempty" jsonschema:"back, chest, legs, shoulders, biceps or triceps"`
}

type createdOutput struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

const defaultToolLimit = 20

// Tool handlers

func (s *Server) handleGetProfile(ctx context.Context, req *mcp.CallToolRequest, input userInput) (*mcp.CallToolResult, any, error) {
	p, err := s.repo.GetProfile(ctx, input.UserID)
	if err != nil {
		return nil, nil, toolError(err, fmt.Sprintf("no profile for user %d", input.UserID))
	}
	return nil, p, nil
}

func (s *Server) handleCreateProfile(ctx context.Context, req *mcp.CallToolRequest, input createProfileInput) (*mcp.CallToolResult, createdOutput, error) {
	in := models.UserProfileCreate{
		UserID:          input.UserID,
		Height:          input.Height,
		Weight:          input.Weight,
		Sex:             models.Sex(input.Sex),
		Age:             input.Age,
		UnitSystem:      models.UnitSystem(input.UnitSystem),
		ExperienceLevel: models.ExperienceLevel(input.ExperienceLevel),
		PrimaryGoal:     models.PrimaryGoal(input.PrimaryGoal),
		WeeklyFrequency: input.WeeklyFrequency,
	}
	if err := models.Validate(in); err != nil {
		return nil, createdOutput{}, err
	}

	p, err := s.repo.CreateProfile(ctx, in)
	if err != nil {
		return nil, createdOutput{}, toolError(err, "")
	}

	return nil, createdOutput{
		ID:      p.ID,
		Message: fmt.Sprintf("Created profile for user %d", p.UserID),
	}, nil
}

func (s *Server) handleUpdateProfile(ctx context.Context, req *mcp.CallToolRequest, input updateProfileInput) (*mcp.CallToolResult, any, error) {
	patch := models.UserProfileUpdate{
		Height:          input.Height,
		Weight:          input.Weight,
		Age:             input.Age,
		WeeklyFrequency: input.WeeklyFrequency,
		Sex:             enumPtr[models.Sex](input.Sex),
		UnitSystem:      enumPtr[models.UnitSystem](input.UnitSystem),
		ExperienceLevel: enumPtr[models.ExperienceLevel](input.ExperienceLevel),
		PrimaryGoal:     enumPtr[models.PrimaryGoal](input.PrimaryGoal),
	}
	if err := models.Validate(patch); err != nil {
		return nil, nil, err
	}

	p, err := s.repo.UpdateProfile(ctx, input.UserID, patch)
	if err != nil {
		return nil, nil, toolError(err, fmt.Sprintf("no profile for user %d", input.UserID))
	}
	return nil, p, nil
}

func (s *Server) handleLogSet(ctx context.Context, req *mcp.CallToolRequest, input logSetInput) (*mcp.CallToolResult, createdOutput, error) {
	in := models.EventLogCreate{
		UserID:       input.UserID,
		WorkoutID:    input.WorkoutID,
		ExerciseName: &input.ExerciseName,
		SetNumber:    &input.SetNumber,
		Reps:         &input.Reps,
		Weight:       &input.Weight,
		RPE:          input.RPE,
		Completed:    input.Completed,
	}
	if err := models.Validate(in); err != nil {
		return nil, createdOutput{}, err
	}

	e := in.ToEventLog()
	if err := s.repo.CreateEventLog(ctx, e); err != nil {
		return nil, createdOutput{}, toolError(err, "workout not found")
	}

	return nil, createdOutput{
		ID:      e.ID,
		Message: fmt.Sprintf("Logged %s set %d: %d x %.1f", e.ExerciseName, e.SetNumber, e.Reps, e.Weight),
	}, nil
}

func (s *Server) handleListEventLogs(ctx context.Context, req *mcp.CallToolRequest, input listInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = defaultToolLimit
	}

	logs, err := s.repo.ListEventLogs(ctx, input.UserID, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list event logs: %w", err)
	}

	if len(logs) == 0 {
		return nil, map[string]any{"message": "No sets logged."}, nil
	}
	return nil, map[string]any{"event_logs": logs}, nil
}

func (s *Server) handleAddDailyMetric(ctx context.Context, req *mcp.CallToolRequest, input dailyMetricInput) (*mcp.CallToolResult, createdOutput, error) {
	in := models.UserMetricCreate{
		UserID:        input.UserID,
		Date:          input.Date,
		SleepHours:    input.SleepHours,
		EnergyLevel:   input.EnergyLevel,
		AvailableTime: input.AvailableTime,
	}
	for _, b := range input.TargetWorkout {
		in.TargetWorkout = append(in.TargetWorkout, models.BodyPart(b))
	}
	if input.Notes != "" {
		in.Notes = &input.Notes
	}
	if err := models.Validate(in); err != nil {
		return nil, createdOutput{}, err
	}

	m := in.ToUserMetric()
	if err := s.repo.CreateUserMetric(ctx, m); err != nil {
		return nil, createdOutput{}, fmt.Errorf("failed to add daily metric: %w", err)
	}

	return nil, createdOutput{
		ID:      m.ID,
		Message: fmt.Sprintf("Recorded metrics for user %d on %s", m.UserID, m.Date.Format("2006-01-02")),
	}, nil
}

func (s *Server) handleCreateWorkout(ctx context.Context, req *mcp.CallToolRequest, input createWorkoutInput) (*mcp.CallToolResult, createdOutput, error) {
	in := models.WorkoutCreate{
		Name:  input.Name,
		Steps: make([]models.WorkoutStepCreate, 0, len(input.Steps)),
	}
	if input.Description != "" {
		in.Description = &input.Description
	}
	for _, st := range input.Steps {
		name, order := st.ExerciseName, st.Order
		in.Steps = append(in.Steps, models.WorkoutStepCreate{
			ExerciseName: &name,
			TargetSets:   st.TargetSets,
			TargetReps:   st.TargetReps,
			TargetWeight: st.TargetWeight,
			Order:        &order,
		})
	}
	if err := models.Validate(in); err != nil {
		return nil, createdOutput{}, err
	}

	w := in.ToWorkout()
	if err := s.repo.CreateWorkout(ctx, w); err != nil {
		return nil, createdOutput{}, fmt.Errorf("failed to create workout: %w", err)
	}

	return nil, createdOutput{
		ID:      w.ID,
		Message: fmt.Sprintf("Created workout %q with %d steps (ID: %d)", w.Name, len(w.Steps), w.ID),
	}, nil
}

func (s *Server) handleGetWorkout(ctx context.Context, req *mcp.CallToolRequest, input workoutIDInput) (*mcp.CallToolResult, any, error) {
	w, err := s.repo.GetWorkout(ctx, input.ID)
	if err != nil {
		return nil, nil, toolError(err, fmt.Sprintf("workout not found: %d", input.ID))
	}
	return nil, w, nil
}

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input listWorkoutsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = defaultToolLimit
	}

	workouts, err := s.repo.ListWorkouts(ctx, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list workouts: %w", err)
	}

	if len(workouts) == 0 {
		return nil, map[string]any{"message": "No workouts found."}, nil
	}
	return nil, map[string]any{"workouts": workouts}, nil
}

func (s *Server) handleDeleteWorkout(ctx context.Context, req *mcp.CallToolRequest, input workoutIDInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.repo.DeleteWorkout(ctx, input.ID); err != nil {
		return nil, simpleOutput{}, toolError(err, fmt.Sprintf("workout not found: %d", input.ID))
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted workout: %d", input.ID),
	}, nil
}

func (s *Server) handleListExercises(ctx context.Context, req *mcp.CallToolRequest, input listExercisesInput) (*mcp.CallToolResult, any, error) {
	if input.BodyPart == "" {
		return nil, map[string]any{"exercises": exercises.All()}, nil
	}

	b, err := models.ParseBodyPart(input.BodyPart)
	if err != nil {
		return nil, nil, fmt.Errorf("body_part should be %s", models.QuoteJoin(b.Options()))
	}
	return nil, map[string]any{
		"body_part": b,
		"exercises": exercises.For(b),
	}, nil
}

// toolError turns storage sentinels into short messages for the model.
// An empty notFound keeps the wrapped error text.
func toolError(err error, notFound string) error {
	switch {
	case errors.Is(err, storage.ErrNotFound) && notFound != "":
		return errors.New(notFound)
	case errors.Is(err, storage.ErrConflict):
		return errors.New("profile already exists")
	default:
		return err
	}
}

func enumPtr[T ~string](s *string) *T {
	if s == nil {
		return nil
	}
	v := T(*s)
	return &v
}
