package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/wcagaudit/internal/model"
)

// MarkdownWriter outputs Dutch reports in Markdown format.
// This format is designed for documentation and sharing.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(doc *Document) (int, error) {
	if doc == nil || doc.Report == nil {
		return 0, ErrNilReport
	}
	r := doc.Report

	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, r)
	w.writeExecutiveSummary(md, r)
	w.writeScores(md, doc)
	w.writePrinciples(md, r)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the title and the meta data table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, r *model.Report) {
	md.H1("WCAG 2.2 AA Auditrapport")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Gegeven", "Waarde"},
		Rows: [][]string{
			{"Opdrachtgever", orDash(r.Meta.Client)},
			{"Website", orDash(r.Meta.Website)},
			{"Datum", orDash(r.Meta.Date)},
			{"Versie", orDash(r.Meta.Version)},
			{"Inspecteur", orDash(r.Meta.Inspector)},
		},
	})
	md.PlainText("")
}

// writeExecutiveSummary writes the management summary.
func (w *MarkdownWriter) writeExecutiveSummary(md *markdown.Markdown, r *model.Report) {
	md.H2("Managementsamenvatting")
	md.PlainText("")
	md.PlainText(r.ExecutiveSummary)
	md.PlainText("")
}

// writeScores writes the score table, the result chart and notes.
func (w *MarkdownWriter) writeScores(md *markdown.Markdown, doc *Document) {
	r := doc.Report

	md.H2("Scores")
	md.PlainText("")

	rows := make([][]string, 0, 6)
	for _, row := range editionRows(r.Summary) {
		rows = append(rows, []string{row.label, fraction(row.score), percent(row.score)})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Onderdeel", "Voldoet", "Percentage"},
		Rows:   rows,
	})
	md.PlainText("")

	if r.CriteriaCount() > 0 {
		w.writePieChart(md, r)
	}

	if len(doc.Discrepancies) > 0 {
		lines := make([]string, len(doc.Discrepancies))
		for i, d := range doc.Discrepancies {
			lines[i] = fmt.Sprintf("%s: gerapporteerd %s, berekend %s", d.Path, fraction(d.Reported), fraction(d.Computed))
		}
		md.Note("De scores in de samenvatting zijn herberekend op basis van de afzonderlijke criteria. " +
			strings.Join(lines, "; ") + ".")
		md.PlainText("")
	}
	for _, warning := range doc.Warnings {
		md.Note(warning)
		md.PlainText("")
	}

	w.writeAlert(md, r)
}

// writePieChart writes a mermaid pie chart of the result distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, r *model.Report) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Verdeling resultaten"),
		piechart.WithShowData(true),
	)

	for _, result := range model.Results() {
		if n := r.CountByResult(result); n > 0 {
			chart.LabelAndIntValue(string(result), uint64(n))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an alert based on the number of failed criteria.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, r *model.Report) {
	failed := r.CountByResult(model.ResultFail)
	switch {
	case failed > 0 && failsLevelA(r):
		md.Cautionf("%d criteria voldoen niet, waaronder criteria van niveau A. De website voldoet niet aan WCAG 2.2 AA.", failed)
	case failed > 0:
		md.Warningf("%d criteria voldoen niet. De website voldoet niet volledig aan WCAG 2.2 AA.", failed)
	case r.CriteriaCount() == 0:
		md.Note("Het rapport bevat geen beoordeelde criteria.")
	default:
		md.Tip("Alle beoordeelde criteria voldoen of zijn niet van toepassing.")
	}
	md.PlainText("")
}

// failsLevelA reports whether any level A criterion failed.
func failsLevelA(r *model.Report) bool {
	for _, p := range r.Principles {
		for _, c := range p.Criteria {
			if c.Level == model.LevelA && c.Result == model.ResultFail {
				return true
			}
		}
	}
	return false
}

// writePrinciples writes a criteria table per principle followed by the findings.
func (w *MarkdownWriter) writePrinciples(md *markdown.Markdown, r *model.Report) {
	for _, p := range r.Principles {
		md.H2(fmt.Sprintf("Principe %s: %s", p.ID, p.Name))
		md.PlainText("")
		if p.Description != "" {
			md.PlainText(p.Description)
			md.PlainText("")
		}

		if len(p.Criteria) == 0 {
			md.PlainText("Geen criteria beoordeeld.")
			md.PlainText("")
			continue
		}

		rows := make([][]string, len(p.Criteria))
		for i, c := range p.Criteria {
			rows[i] = []string{c.ID, c.Name, string(c.Level), resultLabel(c)}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Criterium", "Naam", "Niveau", "Resultaat"},
			Rows:   rows,
		})
		md.PlainText("")

		for _, c := range p.Criteria {
			if c.Result != model.ResultFail {
				continue
			}
			w.writeFindings(md, c)
		}
	}
}

// writeFindings writes the findings of one failed criterion.
func (w *MarkdownWriter) writeFindings(md *markdown.Markdown, c model.Criterion) {
	md.H3(fmt.Sprintf("%s %s", c.ID, c.Name))
	md.PlainText("")
	if c.Description != "" {
		md.PlainText(c.Description)
		md.PlainText("")
	}

	if len(c.Findings) == 0 {
		md.PlainText("Geen bevindingen vastgelegd.")
		md.PlainText("")
		return
	}

	for i, f := range c.Findings {
		md.BulletList(
			fmt.Sprintf("Bevinding %d: %s", i+1, f.Description),
			"Locatie: "+orDash(f.Location),
			"Oplossing: "+orDash(f.Solution),
		)
		md.PlainText("")
		if f.TechnicalDetails != "" {
			md.Details("Technische details", f.TechnicalDetails)
			md.PlainText("")
		}
	}
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Rapport gegenereerd met [wcagaudit](https://github.com/nao1215/wcagaudit)*")
}
