// ABOUTME: EventLog storage operations.
// ABOUTME: Logs are append-only; a referenced workout must exist at insert time.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/harperreed/smartfit/internal/models"
	"github.com/jmoiron/sqlx"
)

type eventLogRow struct {
	ID           int64           `db:"id"`
	UserID       int64           `db:"user_id"`
	WorkoutID    sql.NullInt64   `db:"workout_id"`
	ExerciseName string          `db:"exercise_name"`
	SetNumber    int             `db:"set_number"`
	Reps         int             `db:"reps"`
	Weight       float64         `db:"weight"`
	RPE          sql.NullFloat64 `db:"rpe"`
	Completed    bool            `db:"completed"`
	LoggedAt     string          `db:"logged_at"`
}

func (r eventLogRow) toModel() *models.EventLog {
	e := &models.EventLog{
		ID:           r.ID,
		UserID:       r.UserID,
		ExerciseName: r.ExerciseName,
		SetNumber:    r.SetNumber,
		Reps:         r.Reps,
		Weight:       r.Weight,
		Completed:    r.Completed,
		LoggedAt:     parseTime(r.LoggedAt),
	}
	if r.WorkoutID.Valid {
		e.WorkoutID = &r.WorkoutID.Int64
	}
	if r.RPE.Valid {
		e.RPE = &r.RPE.Float64
	}
	return e
}

// CreateEventLog stores one performed set and assigns its id and logged_at.
// It fails with ErrNotFound if WorkoutID names a workout that does not exist.
func (d *DB) CreateEventLog(ctx context.Context, e *models.EventLog) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("create event log: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if e.LoggedAt.IsZero() {
		e.LoggedAt = d.now().UTC()
	}
	if err := insertEventLog(ctx, tx, e); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("create event log: %w", err)
	}
	return nil
}

func insertEventLog(ctx context.Context, tx *sqlx.Tx, e *models.EventLog) error {
	e.LoggedAt = storedTime(e.LoggedAt)
	if e.WorkoutID != nil {
		ok, err := workoutExists(ctx, tx, *e.WorkoutID)
		if err != nil {
			return fmt.Errorf("create event log: %w", err)
		}
		if !ok {
			return fmt.Errorf("create event log: workout %d: %w", *e.WorkoutID, ErrNotFound)
		}
	}

	query := `
		INSERT INTO event_logs (user_id, workout_id, exercise_name, set_number, reps, weight, rpe, completed, logged_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`
	err := tx.QueryRowxContext(ctx, tx.Rebind(query),
		e.UserID,
		e.WorkoutID,
		e.ExerciseName,
		e.SetNumber,
		e.Reps,
		e.Weight,
		e.RPE,
		e.Completed,
		formatTime(e.LoggedAt),
	).Scan(&e.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("create event log: workout %d: %w", *e.WorkoutID, ErrNotFound)
		}
		return fmt.Errorf("create event log: %w", err)
	}
	return nil
}

// ListEventLogs returns a user's logs, newest first. A limit of zero or less means no limit.
func (d *DB) ListEventLogs(ctx context.Context, userID int64, limit int) ([]*models.EventLog, error) {
	query := `
		SELECT id, user_id, workout_id, exercise_name, set_number, reps, weight, rpe, completed, logged_at
		FROM event_logs
		WHERE user_id = ?
		ORDER BY logged_at DESC, id DESC
	`
	args := []interface{}{userID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return d.selectEventLogs(ctx, query, args...)
}

func (d *DB) selectEventLogs(ctx context.Context, query string, args ...interface{}) ([]*models.EventLog, error) {
	var rows []eventLogRow
	if err := d.db.SelectContext(ctx, &rows, d.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list event logs: %w", err)
	}
	out := make([]*models.EventLog, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}
