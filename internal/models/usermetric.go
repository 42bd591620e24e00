// ABOUTME: UserMetric model for daily condition snapshots (sleep, energy, time).
// ABOUTME: Every signal is optional; target body parts form a de-duplicated set.
package models

import "time"

// UserMetric is one user's condition on one day.
type UserMetric struct {
	ID            int64      `json:"id" yaml:"id"`
	UserID        int64      `json:"user_id" yaml:"user_id"`
	Date          time.Time  `json:"date" yaml:"date"`
	SleepHours    *float64   `json:"sleep_hours" yaml:"sleep_hours,omitempty"`
	EnergyLevel   *int       `json:"energy_level" yaml:"energy_level,omitempty"`
	AvailableTime *int       `json:"available_time" yaml:"available_time,omitempty"`
	TargetWorkout []BodyPart `json:"target_workout" yaml:"target_workout,omitempty"`
	Notes         *string    `json:"notes" yaml:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at" yaml:"created_at"`
}

// UserMetricCreate is the body of POST /user-metrics.
type UserMetricCreate struct {
	UserID        int64      `json:"user_id" validate:"required,gt=0"`
	Date          string     `json:"date" validate:"required,timestamp"`
	SleepHours    *float64   `json:"sleep_hours,omitempty" validate:"omitempty,gte=0,lte=24"`
	EnergyLevel   *int       `json:"energy_level,omitempty" validate:"omitempty,gte=1,lte=10"`
	AvailableTime *int       `json:"available_time,omitempty" validate:"omitempty,gte=0"`
	TargetWorkout []BodyPart `json:"target_workout,omitempty" validate:"omitempty,dive,enum"`
	Notes         *string    `json:"notes,omitempty"`
}

// ToUserMetric converts a validated request into an unsaved UserMetric.
func (in UserMetricCreate) ToUserMetric() *UserMetric {
	date, _ := ParseTime(in.Date)
	return &UserMetric{
		UserID:        in.UserID,
		Date:          date.UTC(),
		SleepHours:    in.SleepHours,
		EnergyLevel:   in.EnergyLevel,
		AvailableTime: in.AvailableTime,
		TargetWorkout: uniqueBodyParts(in.TargetWorkout),
		Notes:         in.Notes,
		CreatedAt:     time.Now().UTC(),
	}
}

// uniqueBodyParts drops repeats while keeping first-seen order. Nil stays nil.
func uniqueBodyParts(in []BodyPart) []BodyPart {
	if in == nil {
		return nil
	}
	seen := make(map[BodyPart]bool, len(in))
	out := make([]BodyPart, 0, len(in))
	for _, b := range in {
		if seen[b] {
			continue
		}
		seen[b] = true
		out = append(out, b)
	}
	return out
}
