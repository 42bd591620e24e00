// ABOUTME: Data migration between storage backends, e.g. SQLite to PostgreSQL.
// ABOUTME: Copies every record from source to destination in one destination transaction.

package storage

import (
	"context"
	"fmt"
)

// MigrateData copies all data from src to dst.
// The destination should be empty; an existing profile for the same user aborts the copy.
func MigrateData(ctx context.Context, src, dst Repository) (*ImportSummary, error) {
	data, err := src.GetAllData(ctx)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	summary, err := dst.ImportData(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("write destination: %w", err)
	}
	return summary, nil
}

// IsEmpty reports whether the database holds no records of any kind.
func (d *DB) IsEmpty(ctx context.Context) (bool, error) {
	for _, table := range []string{"user_profiles", "workouts", "event_logs", "user_metrics", "fatigue_predictions"} {
		var count int
		if err := d.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM "+table); err != nil {
			return false, fmt.Errorf("count %s: %w", table, err)
		}
		if count > 0 {
			return false, nil
		}
	}
	return true, nil
}
