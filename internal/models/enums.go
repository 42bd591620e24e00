// ABOUTME: Closed enumerations for body parts, profile attributes, and warnings.
// ABOUTME: Values are stored as their string code and parsed through a code table.
package models

import (
	"fmt"
	"slices"
)

// BodyPart is a target muscle group used to tag exercises and daily metrics.
type BodyPart string

const (
	BodyPartBack      BodyPart = "back"
	BodyPartChest     BodyPart = "chest"
	BodyPartLegs      BodyPart = "legs"
	BodyPartShoulders BodyPart = "shoulders"
	BodyPartBiceps    BodyPart = "biceps"
	BodyPartTriceps   BodyPart = "triceps"
)

// AllBodyParts lists every body part in catalog order.
var AllBodyParts = []BodyPart{
	BodyPartBack, BodyPartChest, BodyPartLegs,
	BodyPartShoulders, BodyPartBiceps, BodyPartTriceps,
}

// Sex as recorded on a user profile.
type Sex string

const (
	SexMale           Sex = "male"
	SexFemale         Sex = "female"
	SexPreferNotToSay Sex = "prefer_not_to_say"
)

var AllSexes = []Sex{SexMale, SexFemale, SexPreferNotToSay}

// ExperienceLevel is the user's training background.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
)

var AllExperienceLevels = []ExperienceLevel{ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced}

// PrimaryGoal is what the user is training for.
type PrimaryGoal string

const (
	GoalBulk       PrimaryGoal = "bulk"
	GoalCut        PrimaryGoal = "cut"
	GoalLeanMass   PrimaryGoal = "lean_mass"
	GoalWeightLoss PrimaryGoal = "weight_loss"
)

var AllPrimaryGoals = []PrimaryGoal{GoalBulk, GoalCut, GoalLeanMass, GoalWeightLoss}

// UnitSystem selects display units. Height and weight are always stored in cm and kg.
type UnitSystem string

const (
	UnitMetric   UnitSystem = "metric"
	UnitImperial UnitSystem = "imperial"
)

var AllUnitSystems = []UnitSystem{UnitMetric, UnitImperial}

// WarningLevel grades a fatigue prediction.
type WarningLevel string

const (
	WarningLow    WarningLevel = "low"
	WarningMedium WarningLevel = "medium"
	WarningHigh   WarningLevel = "high"
)

var AllWarningLevels = []WarningLevel{WarningLow, WarningMedium, WarningHigh}

func (b BodyPart) Valid() bool        { return slices.Contains(AllBodyParts, b) }
func (s Sex) Valid() bool             { return slices.Contains(AllSexes, s) }
func (e ExperienceLevel) Valid() bool { return slices.Contains(AllExperienceLevels, e) }
func (g PrimaryGoal) Valid() bool     { return slices.Contains(AllPrimaryGoals, g) }
func (u UnitSystem) Valid() bool      { return slices.Contains(AllUnitSystems, u) }
func (w WarningLevel) Valid() bool    { return slices.Contains(AllWarningLevels, w) }

// Options returns the accepted codes, used in validation messages.
func (BodyPart) Options() []string        { return codes(AllBodyParts) }
func (Sex) Options() []string             { return codes(AllSexes) }
func (ExperienceLevel) Options() []string { return codes(AllExperienceLevels) }
func (PrimaryGoal) Options() []string     { return codes(AllPrimaryGoals) }
func (UnitSystem) Options() []string      { return codes(AllUnitSystems) }
func (WarningLevel) Options() []string    { return codes(AllWarningLevels) }

// ParseBodyPart converts a stored or user-supplied code into a BodyPart.
func ParseBodyPart(s string) (BodyPart, error) { return parseEnum("body part", s, AllBodyParts) }

// IsValidBodyPart checks if a string is a valid body part code.
func IsValidBodyPart(s string) bool { return BodyPart(s).Valid() }

func ParseSex(s string) (Sex, error) { return parseEnum("sex", s, AllSexes) }

func ParseExperienceLevel(s string) (ExperienceLevel, error) {
	return parseEnum("experience level", s, AllExperienceLevels)
}

func ParsePrimaryGoal(s string) (PrimaryGoal, error) {
	return parseEnum("primary goal", s, AllPrimaryGoals)
}

func ParseUnitSystem(s string) (UnitSystem, error) {
	return parseEnum("unit system", s, AllUnitSystems)
}

func ParseWarningLevel(s string) (WarningLevel, error) {
	return parseEnum("warning level", s, AllWarningLevels)
}

func parseEnum[T ~string](kind, s string, all []T) (T, error) {
	for _, v := range all {
		if string(v) == s {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("unknown %s: %q", kind, s)
}

func codes[T ~string](all []T) []string {
	out := make([]string, len(all))
	for i, v := range all {
		out[i] = string(v)
	}
	return out
}
