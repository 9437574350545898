package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/nao1215/wcagaudit/internal/consistency"
	"github.com/nao1215/wcagaudit/internal/model"
)

// Comparison directions.
const (
	DirectionImproved  = "improved"
	DirectionWorsened  = "worsened"
	DirectionUnchanged = "unchanged"
)

// Comparison is the difference between two audit reports of the same site.
type Comparison struct {
	Previous model.Meta `json:"previous"`
	Current  model.Meta `json:"current"`

	// Direction compares the overall pass rate of both editions together.
	Direction string `json:"direction"`

	// Scores lists the recomputed summary lines of both reports.
	Scores []ScoreChange `json:"scores"`

	// Changed lists criteria whose result differs.
	Changed []CriterionChange `json:"changed"`

	// Added lists criteria only present in the current report.
	Added []CriterionChange `json:"added"`

	// Removed lists criteria only present in the previous report.
	Removed []CriterionChange `json:"removed"`

	// Unchanged counts criteria with the same result in both reports.
	Unchanged int `json:"unchanged"`
}

// ScoreChange is one summary line in both reports.
type ScoreChange struct {
	Label    string      `json:"label"`
	Previous model.Score `json:"previous"`
	Current  model.Score `json:"current"`
}

// Delta returns the change of the pass rate in percentage points.
func (s ScoreChange) Delta() float64 {
	return s.Current.Percentage() - s.Previous.Percentage()
}

// CriterionChange describes one criterion across two reports.
// Previous or Current is empty when the criterion is missing from that report.
type CriterionChange struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Level    model.Level  `json:"level"`
	Previous model.Result `json:"previous,omitempty"`
	Current  model.Result `json:"current,omitempty"`
}

// Compare compares two reports. Scores are recomputed from the criteria so
// a wrong summary in either report does not distort the comparison.
func Compare(previous, current *model.Report) (*Comparison, error) {
	if previous == nil || current == nil {
		return nil, ErrNilReport
	}

	prevSummary, _ := consistency.Compute(previous)
	currSummary, _ := consistency.Compute(current)

	c := &Comparison{
		Previous: previous.Meta,
		Current:  current.Meta,
		Changed:  []CriterionChange{},
		Added:    []CriterionChange{},
		Removed:  []CriterionChange{},
	}

	prevRows := editionRows(prevSummary)
	currRows := editionRows(currSummary)
	for i := range prevRows {
		c.Scores = append(c.Scores, ScoreChange{
			Label:    prevRows[i].label,
			Previous: prevRows[i].score,
			Current:  currRows[i].score,
		})
	}

	prevCriteria := criteriaByID(previous)
	seen := make(map[string]bool)
	for _, p := range current.Principles {
		for _, cr := range p.Criteria {
			if seen[cr.ID] {
				continue
			}
			seen[cr.ID] = true

			change := CriterionChange{ID: cr.ID, Name: cr.Name, Level: cr.Level, Current: cr.Result}
			old, ok := prevCriteria[cr.ID]
			switch {
			case !ok:
				c.Added = append(c.Added, change)
			case old.Result != cr.Result:
				change.Previous = old.Result
				c.Changed = append(c.Changed, change)
			default:
				c.Unchanged++
			}
		}
	}
	for _, p := range previous.Principles {
		for _, cr := range p.Criteria {
			if seen[cr.ID] {
				continue
			}
			seen[cr.ID] = true
			c.Removed = append(c.Removed, CriterionChange{ID: cr.ID, Name: cr.Name, Level: cr.Level, Previous: cr.Result})
		}
	}

	c.Direction = direction(overall(prevSummary), overall(currSummary))
	return c, nil
}

func criteriaByID(r *model.Report) map[string]model.Criterion {
	m := make(map[string]model.Criterion)
	for _, p := range r.Principles {
		for _, cr := range p.Criteria {
			if _, ok := m[cr.ID]; !ok {
				m[cr.ID] = cr
			}
		}
	}
	return m
}

func overall(s model.Summary) model.Score {
	return model.Score{
		Passed: s.WCAG21.Total.Passed + s.WCAG22.Total.Passed,
		Total:  s.WCAG21.Total.Total + s.WCAG22.Total.Total,
	}
}

func direction(previous, current model.Score) string {
	switch p, c := previous.Percentage(), current.Percentage(); {
	case c > p:
		return DirectionImproved
	case c < p:
		return DirectionWorsened
	default:
		return DirectionUnchanged
	}
}

// formatDelta formats a percentage point change with sign, e.g. "+12,5".
func formatDelta(delta float64) string {
	if delta == 0 {
		return "0"
	}
	return printer.Sprintf("%+.1f", delta)
}

func directionLabel(d string) string {
	switch d {
	case DirectionImproved:
		return "VERBETERD"
	case DirectionWorsened:
		return "VERSLECHTERD"
	default:
		return "ONGEWIJZIGD"
	}
}

// WriteComparisonJSON writes c as indented JSON.
func WriteComparisonJSON(w io.Writer, c *Comparison) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}

// WriteComparisonText writes c in human-readable form.
func WriteComparisonText(w io.Writer, c *Comparison) error {
	var sb strings.Builder

	sb.WriteString("VERGELIJKING AUDITRAPPORTEN\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	fmt.Fprintf(&sb, "Website:  %s\n", orDash(c.Current.Website))
	fmt.Fprintf(&sb, "Vorige:   %s (versie %s)\n", orDash(c.Previous.Date), orDash(c.Previous.Version))
	fmt.Fprintf(&sb, "Huidige:  %s (versie %s)\n", orDash(c.Current.Date), orDash(c.Current.Version))
	fmt.Fprintf(&sb, "\nResultaat: %s\n", directionLabel(c.Direction))

	sb.WriteString("\nSCORES\n")
	fmt.Fprintf(&sb, "  %-20s  %-10s  %-10s  %s\n", "", "Vorige", "Huidige", "Verschil")
	sb.WriteString("  " + strings.Repeat("-", 56) + "\n")
	for _, s := range c.Scores {
		fmt.Fprintf(&sb, "  %-20s  %-10s  %-10s  %s\n", s.Label, percent(s.Previous), percent(s.Current), formatDelta(s.Delta()))
	}

	writeChanges := func(title string, changes []CriterionChange) {
		if len(changes) == 0 {
			return
		}
		fmt.Fprintf(&sb, "\n%s (%d)\n", title, len(changes))
		for _, ch := range changes {
			fmt.Fprintf(&sb, "  %s %s (%s): %s -> %s\n", ch.ID, ch.Name, ch.Level, orDash(string(ch.Previous)), orDash(string(ch.Current)))
		}
	}
	writeChanges("GEWIJZIGDE CRITERIA", c.Changed)
	writeChanges("NIEUWE CRITERIA", c.Added)
	writeChanges("VERVALLEN CRITERIA", c.Removed)

	if c.Unchanged > 0 {
		fmt.Fprintf(&sb, "\nOngewijzigd: %d criteria\n", c.Unchanged)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteComparisonMarkdown writes c as Markdown.
func WriteComparisonMarkdown(w io.Writer, c *Comparison) error {
	md := markdown.NewMarkdown(w)

	md.H1("Vergelijking auditrapporten")
	md.PlainTextf("**Website:** %s", orDash(c.Current.Website))
	md.PlainText("")
	md.PlainTextf("**Resultaat:** %s", directionLabel(c.Direction))
	md.PlainText("")

	scoreRows := [][]string{
		{"Datum", orDash(c.Previous.Date), orDash(c.Current.Date), "-"},
	}
	for _, s := range c.Scores {
		scoreRows = append(scoreRows, []string{s.Label, percent(s.Previous), percent(s.Current), formatDelta(s.Delta())})
	}
	md.H2("Scores")
	md.Table(markdown.TableSet{
		Header: []string{"Onderdeel", "Vorige", "Huidige", "Verschil"},
		Rows:   scoreRows,
	})

	writeChanges := func(title string, changes []CriterionChange) {
		if len(changes) == 0 {
			return
		}
		rows := make([][]string, 0, len(changes))
		for _, ch := range changes {
			rows = append(rows, []string{ch.ID, ch.Name, string(ch.Level), orDash(string(ch.Previous)), orDash(string(ch.Current))})
		}
		md.H2(fmt.Sprintf("%s (%d)", title, len(changes)))
		md.Table(markdown.TableSet{
			Header: []string{"Criterium", "Naam", "Niveau", "Vorige", "Huidige"},
			Rows:   rows,
		})
	}
	writeChanges("Gewijzigde criteria", c.Changed)
	writeChanges("Nieuwe criteria", c.Added)
	writeChanges("Vervallen criteria", c.Removed)

	if c.Unchanged > 0 {
		md.HorizontalRule()
		md.PlainTextf("*%d criteria ongewijzigd*", c.Unchanged)
	}

	return md.Build()
}
