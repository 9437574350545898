package report

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nao1215/wcagaudit/internal/model"
)

// printer formats numbers the Dutch way ("66,7").
var printer = message.NewPrinter(language.Dutch)

// percent formats the pass rate of s, e.g. "66,7%". A score with no
// criteria has no rate and is shown as "-".
func percent(s model.Score) string {
	if s.Total == 0 {
		return "-"
	}
	return printer.Sprintf("%.1f%%", s.Percentage())
}

// fraction formats s as "passed / total".
func fraction(s model.Score) string {
	return printer.Sprintf("%d / %d", s.Passed, s.Total)
}

// resultLabel returns the display label for a criterion's result.
// The check mark is reserved for compliant criteria.
func resultLabel(c model.Criterion) string {
	switch {
	case c.Compliant():
		return "✅ " + string(model.ResultPass)
	case c.Result == model.ResultFail:
		return "❌ " + string(model.ResultFail)
	case c.Result == model.ResultNotApplicable:
		return "➖ " + string(model.ResultNotApplicable)
	default:
		return string(c.Result)
	}
}

// editionRows returns the score lines of the summary in display order.
func editionRows(s model.Summary) []struct {
	label string
	score model.Score
} {
	return []struct {
		label string
		score model.Score
	}{
		{"WCAG 2.1 niveau A", s.WCAG21.LevelA},
		{"WCAG 2.1 niveau AA", s.WCAG21.LevelAA},
		{"WCAG 2.1 totaal", s.WCAG21.Total},
		{"WCAG 2.2 niveau A", s.WCAG22.LevelA},
		{"WCAG 2.2 niveau AA", s.WCAG22.LevelAA},
		{"WCAG 2.2 totaal", s.WCAG22.Total},
	}
}

// orDash returns s, or "-" when s is empty.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
