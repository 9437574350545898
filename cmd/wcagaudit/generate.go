package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/wcagaudit/internal/config"
	"github.com/nao1215/wcagaudit/internal/model"
	"github.com/nao1215/wcagaudit/internal/pipeline"
	"github.com/nao1215/wcagaudit/internal/report"
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [url...]",
		Short: "Generate a WCAG 2.2 AA audit report",
		Long: `Generate drafts a Dutch WCAG 2.2 AA audit report for up to 10 URLs.

The draft is requested from Gemini, checked against the report schema and
its summary scores are recomputed from the individual success criteria.
Corrected scores are listed in the report.

Examples:
  # Audit a single site
  wcagaudit generate https://example.nl

  # Audit a saved set plus one extra page
  wcagaudit generate --set "Gemeente site" https://example.nl/contact

  # Pages behind a login
  wcagaudit generate --auth https://example.nl/account=demo:geheim https://example.nl/account

  # Write a Markdown report and print a summary
  wcagaudit generate --markdown -o rapport.md https://example.nl

  # Validate a saved Gemini response without calling the API
  wcagaudit generate --response-file response.json https://example.nl

Configuration file (.wcagaudit) example:
  defaults:
    inspector: "Jan Jansen"
    client: "Gemeente Voorbeeld"
  sites:
    example.nl:
      username: demo
      password: geheim`,
		Args: cobra.ArbitraryArgs,
		RunE: runGenerateCmd,
	}

	// Target flags
	cmd.Flags().StringP("set", "s", "",
		"Start from a saved URL set (id or name)")
	cmd.Flags().StringArrayP("auth", "a", nil,
		"Login credentials for a URL as url=user:pass (repeatable)")

	// Title page flags
	cmd.Flags().StringP("inspector", "i", "",
		"Inspector name on the title page (default: WCAG AI Auditor)")
	cmd.Flags().String("client", "",
		"Client organisation on the title page")
	cmd.Flags().String("report-version", "",
		"Report version on the title page")

	// Generation flags
	cmd.Flags().String("model", config.DefaultModel,
		"Gemini model used to draft the report")
	cmd.Flags().Int("rpm", config.DefaultRequestsPerMinute,
		"Maximum Gemini requests per minute (0 disables the quota)")
	cmd.Flags().StringP("response-file", "r", "",
		"Validate a saved Gemini response instead of calling the API")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runGenerateCmd executes the generate command.
func runGenerateCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildGenerateConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	setName, err := cmd.Flags().GetString("set")
	if err != nil {
		return err
	}
	auth, err := cmd.Flags().GetStringArray("auth")
	if err != nil {
		return err
	}

	return runGenerate(ctx, cmd.OutOrStdout(), cfg, logger, generateInput{
		setName: setName,
		urls:    args,
		auth:    auth,
	})
}

// generateInput holds the target sources of one generate call.
type generateInput struct {
	setName string
	urls    []string
	auth    []string
}

// buildGenerateConfig creates a Config from the generate flags.
// Flags that were not changed leave the config file defaults in place.
func buildGenerateConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("inspector") {
		if cfg.Inspector, err = flags.GetString("inspector"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("client") {
		if cfg.Client, err = flags.GetString("client"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("model") {
		if cfg.Model, err = flags.GetString("model"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("rpm") {
		if cfg.RequestsPerMinute, err = flags.GetInt("rpm"); err != nil {
			return nil, err
		}
	}
	if cfg.Version, err = flags.GetString("report-version"); err != nil {
		return nil, err
	}
	if cfg.ResponseFile, err = flags.GetString("response-file"); err != nil {
		return nil, err
	}
	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = flags.GetString("output"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// runGenerate produces one report and writes it.
func runGenerate(ctx context.Context, out io.Writer, cfg *config.Config, logger *slog.Logger, in generateInput) error {
	var base []model.Target
	if in.setName != "" {
		store, slots, err := openStore(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer slots.Close()

		set, err := store.Find(in.setName)
		if err != nil {
			return fmt.Errorf("saved set %q: %w", in.setName, err)
		}
		if base, err = store.LoadSet(set.ID); err != nil {
			return err
		}
	}

	list, err := buildTargets(base, in.urls, in.auth, cfg.File)
	if err != nil {
		return userError(err)
	}
	submission, err := list.Submission()
	if err != nil {
		return userError(err)
	}

	gen, err := newGenerator(ctx, cfg, logger)
	if err != nil {
		return err
	}

	logger.Info("generating report", "targets", len(submission), "model", cfg.Model)
	start := time.Now()

	runner := pipeline.NewRunner(gen, logger)
	rep, job, err := runner.Generate(ctx, submission, cfg.Inspector, requestOptions(cfg)...)
	if err != nil {
		if pipeline.IsInputError(err) || errors.Is(err, pipeline.ErrGenerationInProgress) {
			return userError(err)
		}
		logger.Error("report generation failed", "error", err, "steps", job.PerformedSteps)
		return errors.New(pipeline.GenericFailureMessage)
	}
	logger.Info("report generated", "elapsed", time.Since(start).Round(time.Millisecond))

	doc := &report.Document{
		Report:        rep,
		Discrepancies: job.Consistency.Discrepancies,
		Warnings:      job.Warnings(),
	}
	return outputReport(out, cfg, doc)
}

// userError maps input errors to their Dutch message.
func userError(err error) error {
	if msg := pipeline.UserMessage(err); msg != pipeline.GenericFailureMessage {
		return fmt.Errorf("%s (%w)", msg, err)
	}
	return err
}

// outputReport writes the report in the requested format. When a report
// file is set, the terminal gets a text summary in addition to the file.
func outputReport(out io.Writer, cfg *config.Config, doc *report.Document) error {
	if cfg.ReportFile == "" {
		_, err := reportWriter(out, cfg).Write(doc)
		return err
	}

	dir := filepath.Dir(cfg.ReportFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Reports may name pages behind a login; keep them private to the owner.
	f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	w := report.NewMultiWriter(
		reportWriter(f, cfg),
		report.NewTextWriter(out, report.WithSummaryOnly(true)),
	)
	if _, err := w.Write(doc); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nReport written to %s\n", cfg.ReportFile)
	return nil
}

// reportWriter selects the writer for the configured format.
func reportWriter(out io.Writer, cfg *config.Config) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(out, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(out)
	default:
		return report.NewTextWriter(out)
	}
}
