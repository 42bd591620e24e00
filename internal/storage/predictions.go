// ABOUTME: FatiguePrediction storage, a write-only result store for an external engine.
// ABOUTME: No route populates it; export/import and the MCP server read it.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/harperreed/smartfit/internal/models"
	"github.com/jmoiron/sqlx"
)

type predictionRow struct {
	ID                   int64           `db:"id"`
	UserID               int64           `db:"user_id"`
	Date                 string          `db:"date"`
	PredictedFatigue     float64         `db:"predicted_fatigue"`
	PredictedSuccessRate sql.NullFloat64 `db:"predicted_success_rate"`
	ACWR                 sql.NullFloat64 `db:"acwr"`
	WarningLevel         sql.NullString  `db:"warning_level"`
	CreatedAt            string          `db:"created_at"`
}

func (r predictionRow) toModel() *models.FatiguePrediction {
	p := &models.FatiguePrediction{
		ID:               r.ID,
		UserID:           r.UserID,
		Date:             parseTime(r.Date),
		PredictedFatigue: r.PredictedFatigue,
		CreatedAt:        parseTime(r.CreatedAt),
	}
	if r.PredictedSuccessRate.Valid {
		p.PredictedSuccessRate = &r.PredictedSuccessRate.Float64
	}
	if r.ACWR.Valid {
		p.ACWR = &r.ACWR.Float64
	}
	if r.WarningLevel.Valid {
		w := models.WarningLevel(r.WarningLevel.String)
		p.WarningLevel = &w
	}
	return p
}

// CreateFatiguePrediction stores one prediction result.
func (d *DB) CreateFatiguePrediction(ctx context.Context, p *models.FatiguePrediction) error {
	if p.WarningLevel != nil && !p.WarningLevel.Valid() {
		return fmt.Errorf("create fatigue prediction: unknown warning level %q", *p.WarningLevel)
	}

	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("create fatigue prediction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if p.CreatedAt.IsZero() {
		p.CreatedAt = d.now().UTC()
	}
	if err := insertPrediction(ctx, tx, p); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("create fatigue prediction: %w", err)
	}
	return nil
}

func insertPrediction(ctx context.Context, tx *sqlx.Tx, p *models.FatiguePrediction) error {
	p.Date = storedTime(p.Date)
	p.CreatedAt = storedTime(p.CreatedAt)

	var warning *string
	if p.WarningLevel != nil {
		w := string(*p.WarningLevel)
		warning = &w
	}

	query := `
		INSERT INTO fatigue_predictions (user_id, date, predicted_fatigue, predicted_success_rate, acwr, warning_level, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`
	err := tx.QueryRowxContext(ctx, tx.Rebind(query),
		p.UserID,
		formatTime(p.Date),
		p.PredictedFatigue,
		p.PredictedSuccessRate,
		p.ACWR,
		warning,
		formatTime(p.CreatedAt),
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("create fatigue prediction: %w", err)
	}
	return nil
}

// ListFatiguePredictions returns a user's predictions, most recent date first.
func (d *DB) ListFatiguePredictions(ctx context.Context, userID int64) ([]*models.FatiguePrediction, error) {
	query := `
		SELECT id, user_id, date, predicted_fatigue, predicted_success_rate, acwr, warning_level, created_at
		FROM fatigue_predictions
		WHERE user_id = ?
		ORDER BY date DESC, id DESC
	`
	return d.selectPredictions(ctx, query, userID)
}

func (d *DB) selectPredictions(ctx context.Context, query string, args ...interface{}) ([]*models.FatiguePrediction, error) {
	var rows []predictionRow
	if err := d.db.SelectContext(ctx, &rows, d.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list fatigue predictions: %w", err)
	}
	out := make([]*models.FatiguePrediction, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}
