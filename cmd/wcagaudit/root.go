package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for wcagaudit.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wcagaudit",
		Short: "Generate Dutch WCAG 2.2 AA audit reports",
		Long: `wcagaudit generates Dutch WCAG 2.2 AA audit reports for up to 10 web addresses.

The report is drafted by Gemini and validated before it is shown: malformed
responses are rejected and the summary scores are recomputed from the
individual success criteria. Lists of addresses can be saved as named sets.

Set GEMINI_API_KEY to use the Gemini API.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .wcagaudit in current or home directory)")
	cmd.PersistentFlags().String("store", "",
		"Saved-set backend: sqlite, file or postgres (default: sqlite)")
	cmd.PersistentFlags().String("data-dir", "",
		"Directory for saved sets (default: XDG data directory)")

	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewSetsCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
