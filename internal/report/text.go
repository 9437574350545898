package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/wcagaudit/internal/model"
)

// TextWriter outputs Dutch plain text reports for terminal display.
type TextWriter struct {
	baseWriter

	// summaryOnly limits output to the header and the score overview.
	summaryOnly bool
}

// TextWriterOption configures a TextWriter.
type TextWriterOption func(*TextWriter)

// WithSummaryOnly limits output to the header and the score overview.
func WithSummaryOnly(summaryOnly bool) TextWriterOption {
	return func(w *TextWriter) {
		w.summaryOnly = summaryOnly
	}
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer, opts ...TextWriterOption) *TextWriter {
	w := &TextWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in human-readable format.
func (w *TextWriter) Write(doc *Document) (int, error) {
	if doc == nil || doc.Report == nil {
		return 0, ErrNilReport
	}

	var sb strings.Builder

	w.writeHeader(&sb, doc.Report)
	w.writeScores(&sb, doc)

	if !w.summaryOnly {
		w.writeExecutiveSummary(&sb, doc.Report)
		w.writePrinciples(&sb, doc.Report)
	}

	w.writeFooter(&sb)

	return io.WriteString(w.output, sb.String())
}

// writeHeader writes the report title and meta data.
func (w *TextWriter) writeHeader(sb *strings.Builder, r *model.Report) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                   WCAG 2.2 AA AUDITRAPPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Opdrachtgever: %s\n", orDash(r.Meta.Client))
	fmt.Fprintf(sb, "Website:       %s\n", orDash(r.Meta.Website))
	fmt.Fprintf(sb, "Datum:         %s\n", orDash(r.Meta.Date))
	fmt.Fprintf(sb, "Versie:        %s\n", orDash(r.Meta.Version))
	fmt.Fprintf(sb, "Inspecteur:    %s\n", orDash(r.Meta.Inspector))
	sb.WriteString("\n")
}

// writeScores writes the summary scores and any corrections.
func (w *TextWriter) writeScores(sb *strings.Builder, doc *Document) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("SCORES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")

	for _, row := range editionRows(doc.Report.Summary) {
		fmt.Fprintf(sb, "  %-20s %10s  %7s\n", row.label+":", fraction(row.score), percent(row.score))
	}
	sb.WriteString("\n")

	r := doc.Report
	fmt.Fprintf(sb, "  %s: %d   %s: %d   %s: %d\n",
		model.ResultPass, r.CountByResult(model.ResultPass),
		model.ResultFail, r.CountByResult(model.ResultFail),
		model.ResultNotApplicable, r.CountByResult(model.ResultNotApplicable))
	sb.WriteString("\n")

	if len(doc.Discrepancies) > 0 {
		sb.WriteString("  LET OP: de scores in de samenvatting zijn herberekend op basis van de criteria.\n")
		for _, d := range doc.Discrepancies {
			fmt.Fprintf(sb, "    %s: gerapporteerd %s, berekend %s\n", d.Path, fraction(d.Reported), fraction(d.Computed))
		}
		sb.WriteString("\n")
	}
	for _, warning := range doc.Warnings {
		fmt.Fprintf(sb, "  LET OP: %s\n", warning)
	}
	if len(doc.Warnings) > 0 {
		sb.WriteString("\n")
	}
}

// writeExecutiveSummary writes the management summary.
func (w *TextWriter) writeExecutiveSummary(sb *strings.Builder, r *model.Report) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("MANAGEMENTSAMENVATTING\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(r.ExecutiveSummary)
	sb.WriteString("\n\n")
}

// writePrinciples writes every criterion, grouped by principle.
func (w *TextWriter) writePrinciples(sb *strings.Builder, r *model.Report) {
	for _, p := range r.Principles {
		sb.WriteString(strings.Repeat("-", 70))
		sb.WriteString("\n")
		fmt.Fprintf(sb, "PRINCIPE %s: %s\n", p.ID, strings.ToUpper(p.Name))
		sb.WriteString(strings.Repeat("-", 70))
		sb.WriteString("\n")
		if p.Description != "" {
			sb.WriteString(p.Description)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")

		for _, c := range p.Criteria {
			fmt.Fprintf(sb, "  %s %s (%s) - %s\n", c.ID, c.Name, c.Level, resultLabel(c))
			for i, f := range c.Findings {
				fmt.Fprintf(sb, "      Bevinding %d: %s\n", i+1, f.Description)
				if f.Location != "" {
					fmt.Fprintf(sb, "        Locatie:           %s\n", f.Location)
				}
				if f.TechnicalDetails != "" {
					fmt.Fprintf(sb, "        Technische details: %s\n", f.TechnicalDetails)
				}
				if f.Solution != "" {
					fmt.Fprintf(sb, "        Oplossing:         %s\n", f.Solution)
				}
			}
		}
		sb.WriteString("\n")
	}
}

// writeFooter writes the report footer.
func (w *TextWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
