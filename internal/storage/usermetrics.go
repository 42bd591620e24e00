// ABOUTME: UserMetric storage operations.
// ABOUTME: target_workout is kept as a JSON array in a text column.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/harperreed/smartfit/internal/models"
	"github.com/jmoiron/sqlx"
)

type userMetricRow struct {
	ID            int64           `db:"id"`
	UserID        int64           `db:"user_id"`
	Date          string          `db:"date"`
	SleepHours    sql.NullFloat64 `db:"sleep_hours"`
	EnergyLevel   sql.NullInt64   `db:"energy_level"`
	AvailableTime sql.NullInt64   `db:"available_time"`
	TargetWorkout sql.NullString  `db:"target_workout"`
	Notes         sql.NullString  `db:"notes"`
	CreatedAt     string          `db:"created_at"`
}

func (r userMetricRow) toModel() (*models.UserMetric, error) {
	m := &models.UserMetric{
		ID:        r.ID,
		UserID:    r.UserID,
		Date:      parseTime(r.Date),
		CreatedAt: parseTime(r.CreatedAt),
	}
	if r.SleepHours.Valid {
		m.SleepHours = &r.SleepHours.Float64
	}
	if r.EnergyLevel.Valid {
		v := int(r.EnergyLevel.Int64)
		m.EnergyLevel = &v
	}
	if r.AvailableTime.Valid {
		v := int(r.AvailableTime.Int64)
		m.AvailableTime = &v
	}
	if r.TargetWorkout.Valid {
		if err := json.Unmarshal([]byte(r.TargetWorkout.String), &m.TargetWorkout); err != nil {
			return nil, fmt.Errorf("decode target_workout for metric %d: %w", r.ID, err)
		}
	}
	if r.Notes.Valid {
		m.Notes = &r.Notes.String
	}
	return m, nil
}

// CreateUserMetric stores one daily condition snapshot.
func (d *DB) CreateUserMetric(ctx context.Context, m *models.UserMetric) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("create user metric: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if m.CreatedAt.IsZero() {
		m.CreatedAt = d.now().UTC()
	}
	if err := insertUserMetric(ctx, tx, m); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("create user metric: %w", err)
	}
	return nil
}

func insertUserMetric(ctx context.Context, tx *sqlx.Tx, m *models.UserMetric) error {
	m.Date = storedTime(m.Date)
	m.CreatedAt = storedTime(m.CreatedAt)

	var target *string
	if m.TargetWorkout != nil {
		b, err := json.Marshal(m.TargetWorkout)
		if err != nil {
			return fmt.Errorf("encode target_workout: %w", err)
		}
		s := string(b)
		target = &s
	}

	query := `
		INSERT INTO user_metrics (user_id, date, sleep_hours, energy_level, available_time, target_workout, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`
	err := tx.QueryRowxContext(ctx, tx.Rebind(query),
		m.UserID,
		formatTime(m.Date),
		m.SleepHours,
		m.EnergyLevel,
		m.AvailableTime,
		target,
		m.Notes,
		formatTime(m.CreatedAt),
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("create user metric: %w", err)
	}
	return nil
}

// ListUserMetrics returns a user's metrics, most recent date first.
// A limit of zero or less means no limit.
func (d *DB) ListUserMetrics(ctx context.Context, userID int64, limit int) ([]*models.UserMetric, error) {
	query := `
		SELECT id, user_id, date, sleep_hours, energy_level, available_time, target_workout, notes, created_at
		FROM user_metrics
		WHERE user_id = ?
		ORDER BY date DESC, id DESC
	`
	args := []interface{}{userID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return d.selectUserMetrics(ctx, query, args...)
}

func (d *DB) selectUserMetrics(ctx context.Context, query string, args ...interface{}) ([]*models.UserMetric, error) {
	var rows []userMetricRow
	if err := d.db.SelectContext(ctx, &rows, d.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list user metrics: %w", err)
	}
	out := make([]*models.UserMetric, 0, len(rows))
	for _, r := range rows {
		m, err := r.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
