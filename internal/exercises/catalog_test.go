// ABOUTME: Tests for the exercise catalog lookups.
// ABOUTME: Verifies ordering, copy semantics, and unknown body part handling.
package exercises

import (
	"testing"

	"github.com/harperreed/smartfit/internal/models"
)

func TestForKnownBodyPart(t *testing.T) {
	got := For(models.BodyPartBack)
	if len(got) != 8 {
		t.Fatalf("expected 8 back exercises, got %d", len(got))
	}
	if got[0] != "Lat Pulldown" || got[7] != "Seated Cable Row" {
		t.Errorf("unexpected order: %v", got)
	}
}

func TestForUnknownBodyPart(t *testing.T) {
	got := For(models.BodyPart("abs"))
	if got == nil {
		t.Fatal("expected non-nil empty slice")
	}
	if len(got) != 0 {
		t.Errorf("expected empty slice, got %v", got)
	}
}

func TestForReturnsCopy(t *testing.T) {
	got := For(models.BodyPartChest)
	got[0] = "Mutated"

	if For(models.BodyPartChest)[0] != "Bench Press" {
		t.Error("catalog was mutated through returned slice")
	}
}

func TestAllCoversEveryBodyPart(t *testing.T) {
	all := All()
	if len(all) != len(models.AllBodyParts) {
		t.Fatalf("expected %d body parts, got %d", len(models.AllBodyParts), len(all))
	}
	for _, b := range models.AllBodyParts {
		if len(all[string(b)]) == 0 {
			t.Errorf("no exercises for %s", b)
		}
	}

	all["legs"][0] = "Mutated"
	if For(models.BodyPartLegs)[0] != "Squat" {
		t.Error("catalog was mutated through All()")
	}
}

func TestDipsListedTwice(t *testing.T) {
	// Dips appear under chest and triceps; Count de-duplicates.
	total := 0
	for _, list := range All() {
		total += len(list)
	}
	if Count() != total-1 {
		t.Errorf("Count() = %d, want %d", Count(), total-1)
	}
}
