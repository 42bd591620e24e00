// ABOUTME: Repository interface for SmartFit storage.
// ABOUTME: Defines the contract for profiles, logs, metrics, workouts, and predictions.
package storage

import (
	"context"

	"github.com/harperreed/smartfit/internal/models"
)

// Repository defines the storage interface for SmartFit data.
// Implementations return ErrNotFound and ErrConflict (wrapped) for the matching cases.
type Repository interface {
	// Profile operations
	CreateProfile(ctx context.Context, in models.UserProfileCreate) (*models.UserProfile, error)
	GetProfile(ctx context.Context, userID int64) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, userID int64, patch models.UserProfileUpdate) (*models.UserProfile, error)

	// Event log operations
	CreateEventLog(ctx context.Context, e *models.EventLog) error
	ListEventLogs(ctx context.Context, userID int64, limit int) ([]*models.EventLog, error)

	// User metric operations
	CreateUserMetric(ctx context.Context, m *models.UserMetric) error
	ListUserMetrics(ctx context.Context, userID int64, limit int) ([]*models.UserMetric, error)

	// Workout operations
	CreateWorkout(ctx context.Context, w *models.Workout) error
	GetWorkout(ctx context.Context, id int64) (*models.Workout, error)
	ListWorkouts(ctx context.Context, limit int) ([]*models.Workout, error)
	DeleteWorkout(ctx context.Context, id int64) error

	// Fatigue prediction operations
	CreateFatiguePrediction(ctx context.Context, p *models.FatiguePrediction) error
	ListFatiguePredictions(ctx context.Context, userID int64) ([]*models.FatiguePrediction, error)

	// Export/Import
	GetAllData(ctx context.Context) (*ExportData, error)
	ImportData(ctx context.Context, data *ExportData) (*ImportSummary, error)

	// Lifecycle
	Ping(ctx context.Context) error
	Close() error
}

var _ Repository = (*DB)(nil)
