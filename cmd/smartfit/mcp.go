// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio-based MCP server over the configured database.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/smartfit/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout and reads and writes the same
database as the HTTP API.

AVAILABLE TOOLS:

  get_user_profile      Get a user's training profile
  create_user_profile   Create a training profile
  update_user_profile   Change selected profile fields
  log_set               Record one performed set
  list_event_logs       List a user's logged sets
  add_daily_metric      Record sleep, energy, time and target body parts
  create_workout        Create a routine with ordered steps
  get_workout           Get a routine with its steps
  list_workouts         List routines
  delete_workout        Delete a routine
  list_exercises        Suggested exercises by body part

AVAILABLE RESOURCES:

  smartfit://exercises  Exercise catalog
  smartfit://workouts   Recent workout routines`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(store)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)
		go func() {
			select {
			case <-sigChan:
				cancel()
			case <-ctx.Done():
			}
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
