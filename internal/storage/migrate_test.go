// ABOUTME: Tests for MigrateData and IsEmpty.
// ABOUTME: Copies between two SQLite databases and checks nothing is lost.

package storage

import (
	"context"
	"errors"
	"testing"
)

func TestMigrateData(t *testing.T) {
	ctx := context.Background()
	src := setupTestDB(t)
	seedDB(t, src)
	dst := setupTestDB(t)

	empty, err := dst.IsEmpty(ctx)
	if err != nil {
		t.Fatalf("IsEmpty failed: %v", err)
	}
	if !empty {
		t.Fatal("new database should be empty")
	}

	summary, err := MigrateData(ctx, src, dst)
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if summary.Profiles != 1 || summary.Workouts != 1 || summary.EventLogs != 1 {
		t.Errorf("unexpected summary: %+v", summary)
	}

	empty, err = dst.IsEmpty(ctx)
	if err != nil {
		t.Fatalf("IsEmpty failed: %v", err)
	}
	if empty {
		t.Error("destination should not be empty after migrate")
	}

	srcProfile, _ := src.GetProfile(ctx, 1)
	dstProfile, err := dst.GetProfile(ctx, 1)
	if err != nil {
		t.Fatalf("GetProfile on destination failed: %v", err)
	}
	if srcProfile.CreatedAt != dstProfile.CreatedAt || srcProfile.Weight != dstProfile.Weight {
		t.Errorf("profile changed in transit: %+v vs %+v", srcProfile, dstProfile)
	}
}

func TestMigrateDataEmptySource(t *testing.T) {
	ctx := context.Background()
	src := setupTestDB(t)
	dst := setupTestDB(t)

	summary, err := MigrateData(ctx, src, dst)
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if *summary != (ImportSummary{}) {
		t.Errorf("expected zero summary, got %+v", summary)
	}
}

func TestMigrateDataTwiceConflicts(t *testing.T) {
	ctx := context.Background()
	src := setupTestDB(t)
	seedDB(t, src)
	dst := setupTestDB(t)

	if _, err := MigrateData(ctx, src, dst); err != nil {
		t.Fatalf("first MigrateData failed: %v", err)
	}
	if _, err := MigrateData(ctx, src, dst); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on second run, got %v", err)
	}
}
