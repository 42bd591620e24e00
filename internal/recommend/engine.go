// ABOUTME: Boundary for an external workout recommendation engine.
// ABOUTME: Nothing here computes recommendations; the default engine reports it is unavailable.
package recommend

import (
	"context"
	"errors"

	"github.com/harperreed/smartfit/internal/models"
)

// ErrUnavailable is returned when no recommendation engine is configured.
var ErrUnavailable = errors.New("recommendation engine not configured")

// Engine produces a workout recommendation from today's signals.
type Engine interface {
	Recommend(ctx context.Context, req models.RecommendationRequest) (*models.RecommendationResponse, error)
}

// Unavailable is the engine used when none is wired in.
type Unavailable struct{}

// Recommend always fails with ErrUnavailable.
func (Unavailable) Recommend(context.Context, models.RecommendationRequest) (*models.RecommendationResponse, error) {
	return nil, ErrUnavailable
}

// EngineFunc adapts a function to the Engine interface.
type EngineFunc func(ctx context.Context, req models.RecommendationRequest) (*models.RecommendationResponse, error)

// Recommend calls f.
func (f EngineFunc) Recommend(ctx context.Context, req models.RecommendationRequest) (*models.RecommendationResponse, error) {
	return f(ctx, req)
}
