// ABOUTME: EventLog model for set-level workout logging.
// ABOUTME: Entries are append-only; LoggedAt is assigned by the server at insert.
package models

import "time"

// EventLog records one performed set.
type EventLog struct {
	ID           int64     `json:"id" yaml:"id"`
	UserID       int64     `json:"user_id" yaml:"user_id"`
	WorkoutID    *int64    `json:"workout_id" yaml:"workout_id,omitempty"`
	ExerciseName string    `json:"exercise_name" yaml:"exercise_name"`
	SetNumber    int       `json:"set_number" yaml:"set_number"`
	Reps         int       `json:"reps" yaml:"reps"`
	Weight       float64   `json:"weight" yaml:"weight"`
	RPE          *float64  `json:"rpe" yaml:"rpe,omitempty"`
	Completed    bool      `json:"completed" yaml:"completed"`
	LoggedAt     time.Time `json:"logged_at" yaml:"logged_at"`
}

// EventLogCreate is the body of POST /event-logs. Any exercise name is accepted,
// including an empty one; the field only has to be present.
type EventLogCreate struct {
	UserID       int64    `json:"user_id" validate:"required,gt=0"`
	WorkoutID    *int64   `json:"workout_id,omitempty" validate:"omitempty,gt=0"`
	ExerciseName *string  `json:"exercise_name" validate:"required"`
	SetNumber    *int     `json:"set_number" validate:"required"`
	Reps         *int     `json:"reps" validate:"required,gte=0"`
	Weight       *float64 `json:"weight" validate:"required,gte=0"`
	RPE          *float64 `json:"rpe,omitempty" validate:"omitempty,gte=1,lte=10"`
	Completed    *bool    `json:"completed,omitempty"`
}

// ToEventLog converts a validated request into an unsaved EventLog.
// Completed defaults to true when omitted.
func (in EventLogCreate) ToEventLog() *EventLog {
	e := &EventLog{
		UserID:    in.UserID,
		WorkoutID: in.WorkoutID,
		RPE:       in.RPE,
		Completed: true,
	}
	if in.ExerciseName != nil {
		e.ExerciseName = *in.ExerciseName
	}
	if in.SetNumber != nil {
		e.SetNumber = *in.SetNumber
	}
	if in.Reps != nil {
		e.Reps = *in.Reps
	}
	if in.Weight != nil {
		e.Weight = *in.Weight
	}
	if in.Completed != nil {
		e.Completed = *in.Completed
	}
	return e
}
