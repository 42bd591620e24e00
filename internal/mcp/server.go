// ABOUTME: MCP front end for SmartFit: the HTTP resource set exposed as agent tools.
// ABOUTME: Profiles, set logs, daily metrics, workouts and the catalog share one Repository with the API.
package mcp

import (
	"context"

	"github.com/harperreed/smartfit/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `SmartFit stores training data keyed by an external user_id.
Create a profile before logging sets or daily metrics for a user.
Exercise names are free text; list_exercises returns the suggested catalog.`

// Server exposes the same operations as the HTTP API over MCP. Every tool
// validates its input with the request schemas the HTTP handlers use, so an
// agent and a browser client see identical rules and error locations.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
}

// NewServer registers the SmartFit tools and resources against repo.
func NewServer(repo storage.Repository) (*Server, error) {
	s := &Server{
		mcpServer: mcp.NewServer(
			&mcp.Implementation{Name: "smartfit", Version: "1.0.0"},
			&mcp.ServerOptions{Instructions: serverInstructions},
		),
		repo: repo,
	}

	s.registerTools()
	s.registerResources()
	return s, nil
}

// Serve speaks MCP over stdin/stdout until ctx is cancelled or the client hangs up.
func (s *Server) Serve(ctx context.Context) error {
	return s.run(ctx, &mcp.StdioTransport{})
}

func (s *Server) run(ctx context.Context, t mcp.Transport) error {
	return s.mcpServer.Run(ctx, t)
}
