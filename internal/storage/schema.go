// ABOUTME: Table definitions shared by the SQLite and PostgreSQL dialects.
// ABOUTME: Placeholders like {{pk}} are swapped for dialect types before execution.
package storage

import (
	"context"
	"fmt"
	"strings"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS user_profiles (
		id {{pk}},
		user_id {{bigint}} NOT NULL UNIQUE,
		height {{float}} NOT NULL,
		weight {{float}} NOT NULL,
		sex TEXT NOT NULL,
		age INTEGER NOT NULL,
		unit_system TEXT NOT NULL DEFAULT 'metric',
		experience_level TEXT NOT NULL,
		primary_goal TEXT NOT NULL,
		weekly_frequency INTEGER NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS workouts (
		id {{pk}},
		name TEXT NOT NULL,
		description TEXT,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS workout_steps (
		id {{pk}},
		workout_id {{bigint}} NOT NULL REFERENCES workouts(id) ON DELETE CASCADE,
		exercise_name TEXT NOT NULL,
		target_sets INTEGER NOT NULL,
		target_reps INTEGER,
		target_weight {{float}},
		step_order INTEGER NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS event_logs (
		id {{pk}},
		user_id {{bigint}} NOT NULL,
		workout_id {{bigint}} REFERENCES workouts(id) ON DELETE SET NULL,
		exercise_name TEXT NOT NULL,
		set_number INTEGER NOT NULL,
		reps INTEGER NOT NULL,
		weight {{float}} NOT NULL,
		rpe {{float}},
		completed BOOLEAN NOT NULL DEFAULT TRUE,
		logged_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS user_metrics (
		id {{pk}},
		user_id {{bigint}} NOT NULL,
		date TEXT NOT NULL,
		sleep_hours {{float}},
		energy_level INTEGER,
		available_time INTEGER,
		target_workout TEXT,
		notes TEXT,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS fatigue_predictions (
		id {{pk}},
		user_id {{bigint}} NOT NULL,
		date TEXT NOT NULL,
		predicted_fatigue {{float}} NOT NULL,
		predicted_success_rate {{float}},
		acwr {{float}},
		warning_level TEXT,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_workout_steps_workout ON workout_steps(workout_id)`,
	`CREATE INDEX IF NOT EXISTS idx_event_logs_user ON event_logs(user_id, logged_at)`,
	`CREATE INDEX IF NOT EXISTS idx_event_logs_workout ON event_logs(workout_id)`,
	`CREATE INDEX IF NOT EXISTS idx_user_metrics_user ON user_metrics(user_id, date)`,
	`CREATE INDEX IF NOT EXISTS idx_fatigue_predictions_user ON fatigue_predictions(user_id, date)`,
}

var dialectTypes = map[Dialect]*strings.Replacer{
	DialectSQLite: strings.NewReplacer(
		"{{pk}}", "INTEGER PRIMARY KEY AUTOINCREMENT",
		"{{bigint}}", "INTEGER",
		"{{float}}", "REAL",
	),
	DialectPostgres: strings.NewReplacer(
		"{{pk}}", "BIGSERIAL PRIMARY KEY",
		"{{bigint}}", "BIGINT",
		"{{float}}", "DOUBLE PRECISION",
	),
}

// initSchema creates any missing tables and indexes. Existing tables are left alone.
func (d *DB) initSchema(ctx context.Context) error {
	r := dialectTypes[d.dialect]
	for _, stmt := range schemaStatements {
		if _, err := d.db.ExecContext(ctx, r.Replace(stmt)); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
