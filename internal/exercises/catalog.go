// ABOUTME: Static exercise catalog keyed by body part.
// ABOUTME: Suggestions only; exercise names elsewhere are never checked against it.
package exercises

import (
	"slices"

	"github.com/harperreed/smartfit/internal/models"
)

var catalog = map[models.BodyPart][]string{
	models.BodyPartBack: {
		"Lat Pulldown",
		"Barbell Row",
		"Dumbbell Row",
		"Cable Row",
		"Pull-up",
		"T-Bar Row",
		"One-Arm Dumbbell Row",
		"Seated Cable Row",
	},
	models.BodyPartChest: {
		"Bench Press",
		"Incline Bench Press",
		"Dumbbell Press",
		"Incline Dumbbell Press",
		"Dips",
		"Push-up",
		"Cable Fly",
		"Dumbbell Fly",
		"Pec Deck Fly",
		"Chest Press Machine",
	},
	models.BodyPartLegs: {
		"Squat",
		"Leg Press",
		"Leg Extension",
		"Leg Curl",
		"Lunge",
		"Calf Raise",
	},
	models.BodyPartShoulders: {
		"Overhead Press",
		"Dumbbell Shoulder Press",
		"Side Lateral Raise",
		"Front Raise",
		"Rear Delt Fly",
		"Face Pull",
		"Upright Row",
	},
	models.BodyPartBiceps: {
		"Barbell Curl",
		"Dumbbell Curl",
		"Hammer Curl",
		"Cable Curl",
	},
	models.BodyPartTriceps: {
		"Triceps Extension",
		"Overhead Triceps Extension",
		"Dips",
		"Close Grip Bench Press",
	},
}

// For returns the exercises for one body part in catalog order.
// Unknown body parts yield an empty, non-nil slice.
func For(b models.BodyPart) []string {
	list, ok := catalog[b]
	if !ok {
		return []string{}
	}
	return slices.Clone(list)
}

// All returns every body part's exercises keyed by body part code.
func All() map[string][]string {
	out := make(map[string][]string, len(catalog))
	for _, b := range models.AllBodyParts {
		out[string(b)] = For(b)
	}
	return out
}

// Count is the number of distinct exercise names across all body parts.
func Count() int {
	seen := map[string]bool{}
	for _, list := range catalog {
		for _, name := range list {
			seen[name] = true
		}
	}
	return len(seen)
}
