// ABOUTME: Workout and WorkoutStep CRUD operations.
// ABOUTME: A workout and its steps are written in one transaction; delete cascades to steps.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/harperreed/smartfit/internal/models"
	"github.com/jmoiron/sqlx"
)

type workoutRow struct {
	ID          int64          `db:"id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	CreatedAt   string         `db:"created_at"`
}

func (r workoutRow) toModel() *models.Workout {
	w := &models.Workout{
		ID:        r.ID,
		Name:      r.Name,
		CreatedAt: parseTime(r.CreatedAt),
		Steps:     []models.WorkoutStep{},
	}
	if r.Description.Valid {
		w.Description = &r.Description.String
	}
	return w
}

type stepRow struct {
	ID           int64           `db:"id"`
	WorkoutID    int64           `db:"workout_id"`
	ExerciseName string          `db:"exercise_name"`
	TargetSets   int             `db:"target_sets"`
	TargetReps   sql.NullInt64   `db:"target_reps"`
	TargetWeight sql.NullFloat64 `db:"target_weight"`
	Order        int             `db:"step_order"`
}

func (r stepRow) toModel() models.WorkoutStep {
	s := models.WorkoutStep{
		ID:           r.ID,
		WorkoutID:    r.WorkoutID,
		ExerciseName: r.ExerciseName,
		TargetSets:   r.TargetSets,
		Order:        r.Order,
	}
	if r.TargetReps.Valid {
		reps := int(r.TargetReps.Int64)
		s.TargetReps = &reps
	}
	if r.TargetWeight.Valid {
		s.TargetWeight = &r.TargetWeight.Float64
	}
	return s
}

// CreateWorkout stores a workout and all of its steps atomically.
// On success w and its steps carry their assigned ids.
func (d *DB) CreateWorkout(ctx context.Context, w *models.Workout) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("create workout: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := d.insertWorkout(ctx, tx, w); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("create workout: %w", err)
	}
	return nil
}

func (d *DB) insertWorkout(ctx context.Context, tx *sqlx.Tx, w *models.Workout) error {
	if w.CreatedAt.IsZero() {
		w.CreatedAt = d.now()
	}
	w.CreatedAt = storedTime(w.CreatedAt)

	query := `INSERT INTO workouts (name, description, created_at) VALUES (?, ?, ?) RETURNING id`
	err := tx.QueryRowxContext(ctx, tx.Rebind(query),
		w.Name,
		w.Description,
		formatTime(w.CreatedAt),
	).Scan(&w.ID)
	if err != nil {
		return fmt.Errorf("create workout: %w", err)
	}

	stepQuery := tx.Rebind(`
		INSERT INTO workout_steps (workout_id, exercise_name, target_sets, target_reps, target_weight, step_order)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`)
	for i := range w.Steps {
		s := &w.Steps[i]
		s.WorkoutID = w.ID
		err := tx.QueryRowxContext(ctx, stepQuery,
			s.WorkoutID,
			s.ExerciseName,
			s.TargetSets,
			s.TargetReps,
			s.TargetWeight,
			s.Order,
		).Scan(&s.ID)
		if err != nil {
			return fmt.Errorf("create workout step %d: %w", i, err)
		}
	}
	return nil
}

// GetWorkout retrieves a workout with its steps in insertion order.
func (d *DB) GetWorkout(ctx context.Context, id int64) (*models.Workout, error) {
	var row workoutRow
	query := `SELECT id, name, description, created_at FROM workouts WHERE id = ?`
	if err := d.db.GetContext(ctx, &row, d.db.Rebind(query), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get workout %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get workout: %w", err)
	}

	w := row.toModel()
	steps, err := d.listSteps(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	w.Steps = append(w.Steps, steps[id]...)
	return w, nil
}

// ListWorkouts retrieves workouts with their steps, newest first.
// A limit of zero or less returns every workout.
func (d *DB) ListWorkouts(ctx context.Context, limit int) ([]*models.Workout, error) {
	query := `SELECT id, name, description, created_at FROM workouts ORDER BY created_at DESC, id DESC`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	var rows []workoutRow
	if err := d.db.SelectContext(ctx, &rows, d.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}

	workouts := make([]*models.Workout, 0, len(rows))
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		workouts = append(workouts, r.toModel())
		ids = append(ids, r.ID)
	}

	steps, err := d.listSteps(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, w := range workouts {
		w.Steps = append(w.Steps, steps[w.ID]...)
	}
	return workouts, nil
}

// listSteps loads the steps of the given workouts, grouped by workout id.
func (d *DB) listSteps(ctx context.Context, workoutIDs []int64) (map[int64][]models.WorkoutStep, error) {
	out := make(map[int64][]models.WorkoutStep, len(workoutIDs))
	if len(workoutIDs) == 0 {
		return out, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, workout_id, exercise_name, target_sets, target_reps, target_weight, step_order
		FROM workout_steps
		WHERE workout_id IN (?)
		ORDER BY workout_id, id
	`, workoutIDs)
	if err != nil {
		return nil, fmt.Errorf("list workout steps: %w", err)
	}

	var rows []stepRow
	if err := d.db.SelectContext(ctx, &rows, d.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list workout steps: %w", err)
	}
	for _, r := range rows {
		out[r.WorkoutID] = append(out[r.WorkoutID], r.toModel())
	}
	return out, nil
}

// DeleteWorkout removes a workout. Its steps are removed by cascade and
// event logs that referenced it keep their rows with workout_id cleared.
func (d *DB) DeleteWorkout(ctx context.Context, id int64) error {
	result, err := d.db.ExecContext(ctx, d.db.Rebind(`DELETE FROM workouts WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete workout %d: %w", id, ErrNotFound)
	}
	return nil
}

func workoutExists(ctx context.Context, tx *sqlx.Tx, id int64) (bool, error) {
	var count int
	err := tx.GetContext(ctx, &count, tx.Rebind(`SELECT COUNT(*) FROM workouts WHERE id = ?`), id)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
