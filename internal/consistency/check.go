package consistency

import (
	"fmt"

	"github.com/nao1215/wcagaudit/internal/model"
	"github.com/nao1215/wcagaudit/internal/wcag"
)

// Discrepancy is one summary score that did not match the criteria.
type Discrepancy struct {
	// Path is the JSON path of the score, e.g. summary.wcag21.levelA.
	Path string `json:"path"`

	// Reported is the score as returned by the service.
	Reported model.Score `json:"reported"`

	// Computed is the score derived from the criteria.
	Computed model.Score `json:"computed"`
}

// String implements fmt.Stringer.
func (d Discrepancy) String() string {
	return fmt.Sprintf("%s: reported %d/%d, computed %d/%d",
		d.Path, d.Reported.Passed, d.Reported.Total, d.Computed.Passed, d.Computed.Total)
}

// Result is the outcome of Check.
type Result struct {
	// Discrepancies lists every overwritten score in summary order.
	Discrepancies []Discrepancy

	// UnknownIDs lists criterion ids missing from the reference table.
	UnknownIDs []string
}

// Consistent reports whether the summary was already correct.
func (r Result) Consistent() bool {
	return len(r.Discrepancies) == 0
}

// Check recomputes r.Summary from the criteria and overwrites mismatching scores.
func Check(r *model.Report) Result {
	computed, unknown := Compute(r)

	var res Result
	res.UnknownIDs = unknown

	pairs := []struct {
		path     string
		reported *model.Score
		computed model.Score
	}{
		{"summary.wcag21.levelA", &r.Summary.WCAG21.LevelA, computed.WCAG21.LevelA},
		{"summary.wcag21.levelAA", &r.Summary.WCAG21.LevelAA, computed.WCAG21.LevelAA},
		{"summary.wcag21.total", &r.Summary.WCAG21.Total, computed.WCAG21.Total},
		{"summary.wcag22.levelA", &r.Summary.WCAG22.LevelA, computed.WCAG22.LevelA},
		{"summary.wcag22.levelAA", &r.Summary.WCAG22.LevelAA, computed.WCAG22.LevelAA},
		{"summary.wcag22.total", &r.Summary.WCAG22.Total, computed.WCAG22.Total},
	}
	for _, p := range pairs {
		if *p.reported == p.computed {
			continue
		}
		res.Discrepancies = append(res.Discrepancies, Discrepancy{
			Path:     p.path,
			Reported: *p.reported,
			Computed: p.computed,
		})
		*p.reported = p.computed
	}
	return res
}

// Compute derives the summary from the criteria of r without modifying it.
// It also returns the ids that are not in the reference table.
func Compute(r *model.Report) (model.Summary, []string) {
	var (
		s       model.Summary
		unknown []string
	)

	for _, p := range r.Principles {
		for _, c := range p.Criteria {
			edition := wcag.Edition21
			level := c.Level
			if ref, ok := wcag.Lookup(c.ID); ok {
				edition = ref.Edition
				level = ref.Level
			} else {
				unknown = append(unknown, c.ID)
			}

			e := &s.WCAG21
			if edition == wcag.Edition22 {
				e = &s.WCAG22
			}
			score := &e.LevelA
			if level == model.LevelAA {
				score = &e.LevelAA
			}

			score.Total++
			if passes(c.Result) {
				score.Passed++
			}
		}
	}

	for _, e := range []*model.Edition{&s.WCAG21, &s.WCAG22} {
		e.Total = model.Score{
			Passed: e.LevelA.Passed + e.LevelAA.Passed,
			Total:  e.LevelA.Total + e.LevelAA.Total,
		}
	}
	return s, unknown
}

func passes(r model.Result) bool {
	return r == model.ResultPass || r == model.ResultNotApplicable
}
