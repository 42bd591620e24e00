// ABOUTME: CLI commands for exporting and importing SmartFit data.
// ABOUTME: Supports JSON, YAML, and XLSX export plus JSON restore.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export SmartFit data",
	Long: `Export every record in various formats.

FORMATS:

  json   Full JSON export (suitable for backup/restore)
  yaml   YAML export grouped per user (human-readable)
  xlsx   Excel workbook, one sheet per record type (needs --output)

OPTIONS:

  --output, -o   Write to file instead of stdout

EXAMPLES:

  smartfit export json                  # Export all data as JSON
  smartfit export json -o backup.json   # Save to file
  smartfit export yaml                  # Export as YAML
  smartfit export xlsx -o smartfit.xlsx # Spreadsheet`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "xlsx"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]
		ctx := cmd.Context()

		var data []byte
		var err error

		switch format {
		case "json":
			data, err = store.ExportJSON(ctx)
		case "yaml":
			data, err = store.ExportYAML(ctx)
		case "xlsx":
			if exportOutput == "" {
				return fmt.Errorf("xlsx export needs --output")
			}
			data, err = store.ExportXLSX(ctx)
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or xlsx)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Exported to %s\n", exportOutput)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
		}

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import SmartFit data from JSON",
	Long: `Import records from a JSON file written by 'smartfit export json'.

The import runs in one transaction: a profile for a user that already has
one aborts it and nothing is written. Workout ids are reassigned and the
imported event logs follow them.

EXAMPLES:

  smartfit import backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		summary, err := store.ImportJSON(cmd.Context(), data)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Imported from %s\n", filename)
		printSummary(out, summary)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
