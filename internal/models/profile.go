// ABOUTME: UserProfile record, its create/update request schemas, and the merge function.
// ABOUTME: Updates are applied as existing-overridden-by-non-nil-patch-fields.
package models

import "time"

// ProfileTimeLayout formats created_at/updated_at on profiles.
const ProfileTimeLayout = time.RFC3339Nano

// UserProfile is the training profile for one external user.
type UserProfile struct {
	ID              int64           `json:"id" db:"id" yaml:"id"`
	UserID          int64           `json:"user_id" db:"user_id" yaml:"user_id"`
	Height          float64         `json:"height" db:"height" yaml:"height"`
	Weight          float64         `json:"weight" db:"weight" yaml:"weight"`
	Sex             Sex             `json:"sex" db:"sex" yaml:"sex"`
	Age             int             `json:"age" db:"age" yaml:"age"`
	UnitSystem      UnitSystem      `json:"unit_system" db:"unit_system" yaml:"unit_system"`
	ExperienceLevel ExperienceLevel `json:"experience_level" db:"experience_level" yaml:"experience_level"`
	PrimaryGoal     PrimaryGoal     `json:"primary_goal" db:"primary_goal" yaml:"primary_goal"`
	WeeklyFrequency int             `json:"weekly_frequency" db:"weekly_frequency" yaml:"weekly_frequency"`
	CreatedAt       string          `json:"created_at" db:"created_at" yaml:"created_at"`
	UpdatedAt       string          `json:"updated_at" db:"updated_at" yaml:"updated_at"`
}

// UserProfileCreate is the body of POST /user-profiles.
type UserProfileCreate struct {
	UserID          int64           `json:"user_id" validate:"required,gt=0"`
	Height          float64         `json:"height" validate:"required,gte=100,lte=250"`
	Weight          float64         `json:"weight" validate:"required,gte=30,lte=250"`
	Sex             Sex             `json:"sex" validate:"required,enum"`
	Age             int             `json:"age" validate:"required,gte=10,lte=100"`
	UnitSystem      UnitSystem      `json:"unit_system,omitempty" validate:"omitempty,enum"`
	ExperienceLevel ExperienceLevel `json:"experience_level" validate:"required,enum"`
	PrimaryGoal     PrimaryGoal     `json:"primary_goal" validate:"required,enum"`
	WeeklyFrequency int             `json:"weekly_frequency" validate:"required,gte=1,lte=7"`
}

// UserProfileUpdate is the body of PUT /user-profiles/{user_id}. Nil fields are left untouched.
type UserProfileUpdate struct {
	Height          *float64         `json:"height,omitempty" validate:"omitempty,gte=100,lte=250"`
	Weight          *float64         `json:"weight,omitempty" validate:"omitempty,gte=30,lte=250"`
	Sex             *Sex             `json:"sex,omitempty" validate:"omitempty,enum"`
	Age             *int             `json:"age,omitempty" validate:"omitempty,gte=10,lte=100"`
	UnitSystem      *UnitSystem      `json:"unit_system,omitempty" validate:"omitempty,enum"`
	ExperienceLevel *ExperienceLevel `json:"experience_level,omitempty" validate:"omitempty,enum"`
	PrimaryGoal     *PrimaryGoal     `json:"primary_goal,omitempty" validate:"omitempty,enum"`
	WeeklyFrequency *int             `json:"weekly_frequency,omitempty" validate:"omitempty,gte=1,lte=7"`
}

// NewUserProfile builds a profile from a validated create request.
func NewUserProfile(in UserProfileCreate, now time.Time) *UserProfile {
	unit := in.UnitSystem
	if unit == "" {
		unit = UnitMetric
	}
	ts := now.UTC().Format(ProfileTimeLayout)
	return &UserProfile{
		UserID:          in.UserID,
		Height:          in.Height,
		Weight:          in.Weight,
		Sex:             in.Sex,
		Age:             in.Age,
		UnitSystem:      unit,
		ExperienceLevel: in.ExperienceLevel,
		PrimaryGoal:     in.PrimaryGoal,
		WeeklyFrequency: in.WeeklyFrequency,
		CreatedAt:       ts,
		UpdatedAt:       ts,
	}
}

// Apply returns a copy of p with every non-nil patch field overriding p's value
// and UpdatedAt set to now. p itself is not modified.
func (p UserProfile) Apply(patch UserProfileUpdate, now time.Time) UserProfile {
	merged := p
	if patch.Height != nil {
		merged.Height = *patch.Height
	}
	if patch.Weight != nil {
		merged.Weight = *patch.Weight
	}
	if patch.Sex != nil {
		merged.Sex = *patch.Sex
	}
	if patch.Age != nil {
		merged.Age = *patch.Age
	}
	if patch.UnitSystem != nil {
		merged.UnitSystem = *patch.UnitSystem
	}
	if patch.ExperienceLevel != nil {
		merged.ExperienceLevel = *patch.ExperienceLevel
	}
	if patch.PrimaryGoal != nil {
		merged.PrimaryGoal = *patch.PrimaryGoal
	}
	if patch.WeeklyFrequency != nil {
		merged.WeeklyFrequency = *patch.WeeklyFrequency
	}
	merged.UpdatedAt = now.UTC().Format(ProfileTimeLayout)
	return merged
}
