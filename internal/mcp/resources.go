// ABOUTME: MCP resource implementations for SmartFit.
// ABOUTME: Provides smartfit://exercises and smartfit://workouts resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/smartfit/internal/exercises"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	exercisesURI = "smartfit://exercises"
	workoutsURI  = "smartfit://workouts"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         exercisesURI,
		Name:        "Exercise Catalog",
		Description: "Suggested exercises grouped by body part",
		MIMEType:    "application/json",
	}, s.handleExercisesResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         workoutsURI,
		Name:        "Workout Routines",
		Description: "The 20 most recent workout routines with their steps",
		MIMEType:    "application/json",
	}, s.handleWorkoutsResource)
}

func (s *Server) handleExercisesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return jsonResource(exercisesURI, map[string]any{
		"body_parts": exercises.All(),
		"total":      exercises.Count(),
	})
}

func (s *Server) handleWorkoutsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	workouts, err := s.repo.ListWorkouts(ctx, defaultToolLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}

	return jsonResource(workoutsURI, map[string]any{
		"generated_at": time.Now().UTC().Format(time.RFC3339),
		"workouts":     workouts,
		"count":        len(workouts),
	})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
