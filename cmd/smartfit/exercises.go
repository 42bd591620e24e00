// ABOUTME: CLI command for printing the exercise catalog.
// ABOUTME: Works without a database.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/smartfit/internal/exercises"
	"github.com/harperreed/smartfit/internal/models"
	"github.com/spf13/cobra"
)

var exercisesCmd = &cobra.Command{
	Use:   "exercises [body_part]",
	Short: "List suggested exercises",
	Long: `List suggested exercises, grouped by body part.

BODY PARTS:

  back, chest, legs, shoulders, biceps, triceps

EXAMPLES:

  smartfit exercises          # Whole catalog
  smartfit exercises legs     # Leg exercises only`,
	Args:        cobra.MaximumNArgs(1),
	ValidArgs:   models.BodyPartBack.Options(),
	Annotations: map[string]string{skipStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		parts := models.AllBodyParts
		if len(args) == 1 {
			b, err := models.ParseBodyPart(args[0])
			if err != nil {
				return fmt.Errorf("body part should be %s", models.QuoteJoin(b.Options()))
			}
			parts = []models.BodyPart{b}
		}

		out := cmd.OutOrStdout()
		heading := color.New(color.FgCyan, color.Bold)
		for i, b := range parts {
			if i > 0 {
				fmt.Fprintln(out)
			}
			heading.Fprintln(out, string(b))
			for _, name := range exercises.For(b) {
				fmt.Fprintf(out, "  %s\n", name)
			}
		}
		if len(parts) > 1 {
			fmt.Fprintln(out)
			color.New(color.Faint).Fprintf(out, "%d distinct exercises\n", exercises.Count())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exercisesCmd)
}
