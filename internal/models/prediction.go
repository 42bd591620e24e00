// ABOUTME: FatiguePrediction result record and the recommendation contract types.
// ABOUTME: Nothing in this module computes these; an external engine fills them.
package models

import "time"

// FatiguePrediction stores one externally computed fatigue estimate.
type FatiguePrediction struct {
	ID                   int64         `json:"id" yaml:"id"`
	UserID               int64         `json:"user_id" yaml:"user_id"`
	Date                 time.Time     `json:"date" yaml:"date"`
	PredictedFatigue     float64       `json:"predicted_fatigue" yaml:"predicted_fatigue"`
	PredictedSuccessRate *float64      `json:"predicted_success_rate" yaml:"predicted_success_rate,omitempty"`
	ACWR                 *float64      `json:"acwr" yaml:"acwr,omitempty"`
	WarningLevel         *WarningLevel `json:"warning_level" yaml:"warning_level,omitempty"`
	CreatedAt            time.Time     `json:"created_at" yaml:"created_at"`
}

// RecommendationRequest asks for a workout suggestion given today's signals.
type RecommendationRequest struct {
	UserID        int64      `json:"user_id" validate:"required,gt=0" jsonschema_description:"External user id"`
	Date          string     `json:"date" validate:"required,timestamp" jsonschema:"format=date-time" jsonschema_description:"Day the recommendation is for"`
	SleepHours    *float64   `json:"sleep_hours,omitempty" validate:"omitempty,gte=0,lte=24" jsonschema_description:"Hours slept last night"`
	EnergyLevel   *int       `json:"energy_level,omitempty" validate:"omitempty,gte=1,lte=10" jsonschema:"minimum=1,maximum=10" jsonschema_description:"Self-reported energy"`
	AvailableTime *int       `json:"available_time,omitempty" validate:"omitempty,gte=0" jsonschema_description:"Minutes available for training"`
}

// RecommendationResponse is what a recommendation engine returns.
type RecommendationResponse struct {
	RecommendedWorkout   *Workout `json:"recommended_workout"`
	PredictedSuccessRate *float64 `json:"predicted_success_rate"`
	PredictedFatigue     *float64 `json:"predicted_fatigue"`
	Warnings             []string `json:"warnings"`
}
