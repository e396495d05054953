package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sadopc/focusflow/internal/export"
)

func newExportCommand(e *env) *cobra.Command {
	var (
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every study session as CSV or JSON",
		Long: `Export every recorded study session with its subject name, start time,
date and duration.

Examples:
  focusflow export
  focusflow export --format json
  focusflow export --format csv --out ~/sessions.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			if out == "" {
				out = export.FileName(f, time.Now())
			}

			sessions := e.state.Sessions()
			if err := export.Write(f, sessions, e.state.Subjects(), out); err != nil {
				return fmt.Errorf("export sessions: %w", err)
			}
			cmd.Printf("Exported %d sessions to %s\n", len(sessions), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "F", string(export.FormatCSV), "output format: csv, json")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default focusflow-export-<date>.<format>)")
	return cmd
}
