// ABOUTME: UserProfile CRUD operations.
// ABOUTME: Create and update run inside a transaction; one profile per user_id.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/harperreed/smartfit/internal/models"
	"github.com/jmoiron/sqlx"
)

const profileColumns = `id, user_id, height, weight, sex, age, unit_system,
	experience_level, primary_goal, weekly_frequency, created_at, updated_at`

// CreateProfile stores a new profile. It fails with ErrConflict if the user already has one.
func (d *DB) CreateProfile(ctx context.Context, in models.UserProfileCreate) (*models.UserProfile, error) {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var count int
	err = tx.GetContext(ctx, &count, tx.Rebind(`SELECT COUNT(*) FROM user_profiles WHERE user_id = ?`), in.UserID)
	if err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("create profile for user %d: %w", in.UserID, ErrConflict)
	}

	p := models.NewUserProfile(in, d.now())
	if err := insertProfile(ctx, tx, p); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("create profile for user %d: %w", in.UserID, ErrConflict)
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return p, nil
}

func insertProfile(ctx context.Context, tx *sqlx.Tx, p *models.UserProfile) error {
	query := `
		INSERT INTO user_profiles (user_id, height, weight, sex, age, unit_system,
			experience_level, primary_goal, weekly_frequency, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`
	err := tx.QueryRowxContext(ctx, tx.Rebind(query),
		p.UserID,
		p.Height,
		p.Weight,
		string(p.Sex),
		p.Age,
		string(p.UnitSystem),
		string(p.ExperienceLevel),
		string(p.PrimaryGoal),
		p.WeeklyFrequency,
		p.CreatedAt,
		p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create profile for user %d: %w", p.UserID, ErrConflict)
		}
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

// GetProfile retrieves the profile for a user.
func (d *DB) GetProfile(ctx context.Context, userID int64) (*models.UserProfile, error) {
	var p models.UserProfile
	query := `SELECT ` + profileColumns + ` FROM user_profiles WHERE user_id = ?`
	if err := d.db.GetContext(ctx, &p, d.db.Rebind(query), userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get profile for user %d: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

// UpdateProfile merges patch into the stored profile and refreshes updated_at.
// Fields left nil in patch keep their stored values.
func (d *DB) UpdateProfile(ctx context.Context, userID int64, patch models.UserProfileUpdate) (*models.UserProfile, error) {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var existing models.UserProfile
	query := `SELECT ` + profileColumns + ` FROM user_profiles WHERE user_id = ?`
	if err := tx.GetContext(ctx, &existing, tx.Rebind(query), userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("update profile for user %d: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	merged := existing.Apply(patch, d.now())
	update := `
		UPDATE user_profiles
		SET height = ?, weight = ?, sex = ?, age = ?, unit_system = ?,
			experience_level = ?, primary_goal = ?, weekly_frequency = ?, updated_at = ?
		WHERE id = ?
	`
	_, err = tx.ExecContext(ctx, tx.Rebind(update),
		merged.Height,
		merged.Weight,
		string(merged.Sex),
		merged.Age,
		string(merged.UnitSystem),
		string(merged.ExperienceLevel),
		string(merged.PrimaryGoal),
		merged.WeeklyFrequency,
		merged.UpdatedAt,
		merged.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &merged, nil
}

// listProfiles returns every profile ordered by id.
func (d *DB) listProfiles(ctx context.Context) ([]*models.UserProfile, error) {
	var out []*models.UserProfile
	query := `SELECT ` + profileColumns + ` FROM user_profiles ORDER BY id`
	if err := d.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return out, nil
}
