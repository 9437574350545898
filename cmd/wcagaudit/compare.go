package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/wcagaudit/internal/config"
	"github.com/nao1215/wcagaudit/internal/model"
	"github.com/nao1215/wcagaudit/internal/report"
	"github.com/nao1215/wcagaudit/internal/validate"
)

// NewCompareCmd creates the compare command.
// This command compares two JSON reports of the same site.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <previous.json> <current.json>",
		Short: "Compare two audit reports",
		Long: `Compare displays differences between two JSON audit reports.

Both files are validated like a fresh service response and their scores are
recomputed from the criteria. The comparison shows:
- The pass rate per WCAG edition and level, with the change in percentage points
- Criteria whose result changed
- Criteria that were added or removed

Use 'wcagaudit generate --json -o report.json' to write JSON reports.

Examples:
  # Compare two audits
  wcagaudit compare rapport-2025.json rapport-2026.json

  # Output comparison in Markdown format
  wcagaudit compare --markdown old.json new.json`,
		Args: cobra.ExactArgs(2),
		RunE: runCompareCmd,
	}

	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output comparison result in Markdown format")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownOutput, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	if jsonOutput && markdownOutput {
		return config.ErrConflictingReportFormats
	}

	previous, err := readReport(args[0])
	if err != nil {
		return err
	}
	current, err := readReport(args[1])
	if err != nil {
		return err
	}

	result, err := report.Compare(previous, current)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case jsonOutput:
		return report.WriteComparisonJSON(out, result)
	case markdownOutput:
		return report.WriteComparisonMarkdown(out, result)
	default:
		return report.WriteComparisonText(out, result)
	}
}

// readReport loads and validates a JSON report file.
func readReport(path string) (*model.Report, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided report path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	r, err := validate.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid report %s: %w", path, err)
	}
	return r, nil
}
