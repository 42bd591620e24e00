// ABOUTME: Workout routine and WorkoutStep models plus their create schemas.
// ABOUTME: Steps keep the order the caller submitted; Order is caller-owned data.
package models

import "time"

// Workout is a reusable routine definition.
type Workout struct {
	ID          int64         `json:"id" yaml:"id"`
	Name        string        `json:"name" yaml:"name"`
	Description *string       `json:"description" yaml:"description,omitempty"`
	CreatedAt   time.Time     `json:"created_at" yaml:"created_at"`
	Steps       []WorkoutStep `json:"steps" yaml:"steps"`
}

// WorkoutStep is one exercise inside a routine (e.g. 3 sets of bench press).
type WorkoutStep struct {
	ID           int64    `json:"id" yaml:"id"`
	WorkoutID    int64    `json:"workout_id" yaml:"workout_id"`
	ExerciseName string   `json:"exercise_name" yaml:"exercise_name"`
	TargetSets   int      `json:"target_sets" yaml:"target_sets"`
	TargetReps   *int     `json:"target_reps" yaml:"target_reps,omitempty"`
	TargetWeight *float64 `json:"target_weight" yaml:"target_weight,omitempty"`
	Order        int      `json:"order" yaml:"order"`
}

// WorkoutStepCreate is one step in a WorkoutCreate body.
type WorkoutStepCreate struct {
	ExerciseName *string  `json:"exercise_name" validate:"required"`
	TargetSets   int      `json:"target_sets" validate:"required,gte=1"`
	TargetReps   *int     `json:"target_reps,omitempty"`
	TargetWeight *float64 `json:"target_weight,omitempty" validate:"omitempty,gte=0"`
	Order        *int     `json:"order" validate:"required"`
}

// WorkoutCreate is the body of POST /workouts.
type WorkoutCreate struct {
	Name        string              `json:"name" validate:"required"`
	Description *string             `json:"description,omitempty"`
	Steps       []WorkoutStepCreate `json:"steps" validate:"required,dive"`
}

// NewWorkout creates a Workout with the current timestamp and no steps.
func NewWorkout(name string) *Workout {
	return &Workout{
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Steps:     []WorkoutStep{},
	}
}

// WithDescription sets the description.
func (w *Workout) WithDescription(desc string) *Workout {
	w.Description = &desc
	return w
}

// AddStep appends a step, keeping submission order.
func (w *Workout) AddStep(s WorkoutStep) *Workout {
	w.Steps = append(w.Steps, s)
	return w
}

// ToWorkout converts a validated create request into an unsaved Workout.
func (in WorkoutCreate) ToWorkout() *Workout {
	w := NewWorkout(in.Name)
	w.Description = in.Description
	for _, s := range in.Steps {
		order := 0
		if s.Order != nil {
			order = *s.Order
		}
		name := ""
		if s.ExerciseName != nil {
			name = *s.ExerciseName
		}
		w.AddStep(WorkoutStep{
			ExerciseName: name,
			TargetSets:   s.TargetSets,
			TargetReps:   s.TargetReps,
			TargetWeight: s.TargetWeight,
			Order:        order,
		})
	}
	return w
}
