package model

// Level is the WCAG conformance level of a success criterion.
// Only A and AA are in scope for a WCAG 2.2 AA audit.
type Level string

const (
	// LevelA is WCAG conformance level A.
	LevelA Level = "A"

	// LevelAA is WCAG conformance level AA.
	LevelAA Level = "AA"
)

// Valid reports whether l is one of the supported levels.
func (l Level) Valid() bool {
	return l == LevelA || l == LevelAA
}

// Result is the verdict for a single success criterion.
// The values are the Dutch labels used in the report itself.
type Result string

const (
	// ResultPass means the criterion is satisfied.
	ResultPass Result = "Voldoet"

	// ResultFail means the criterion is not satisfied.
	ResultFail Result = "Voldoet niet"

	// ResultNotApplicable means the criterion does not apply to the audited pages.
	ResultNotApplicable Result = "Niet van toepassing"
)

// Valid reports whether r is one of the three enumerated results.
func (r Result) Valid() bool {
	switch r {
	case ResultPass, ResultFail, ResultNotApplicable:
		return true
	default:
		return false
	}
}

// Results returns all valid result values in display order.
func Results() []Result {
	return []Result{ResultPass, ResultFail, ResultNotApplicable}
}

// Report is the canonical audit result handed to the presentation layer.
// A Report is created once per generation request; the pipeline does not
// keep a reference to it after returning.
type Report struct {
	// Meta holds the title page information.
	Meta Meta `json:"meta"`

	// ExecutiveSummary is a short Dutch management summary.
	ExecutiveSummary string `json:"executiveSummary"`

	// Summary holds pass/total counts per WCAG edition and level.
	Summary Summary `json:"summary"`

	// Principles holds the per-principle criteria in report order.
	Principles []Principle `json:"principles"`
}

// Meta is the title page information of a report.
type Meta struct {
	Client    string `json:"client"`
	Website   string `json:"website"`
	Date      string `json:"date"`
	Version   string `json:"version"`
	Inspector string `json:"inspector"`
}

// Summary holds the aggregate scores for both WCAG editions.
type Summary struct {
	// WCAG21 counts criteria that already existed in WCAG 2.1.
	WCAG21 Edition `json:"wcag21"`

	// WCAG22 counts criteria introduced in WCAG 2.2.
	WCAG22 Edition `json:"wcag22"`
}

// Edition holds the scores of one WCAG edition.
type Edition struct {
	LevelA  Score `json:"levelA"`
	LevelAA Score `json:"levelAA"`
	Total   Score `json:"total"`
}

// Score is a passed/total pair. Total is never smaller than Passed.
type Score struct {
	Passed int `json:"passed"`
	Total  int `json:"total"`
}

// Percentage returns the pass rate in the range [0, 100].
// A score without criteria reports 0.
func (s Score) Percentage() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Passed) / float64(s.Total) * 100
}

// Principle is one of the four WCAG principles with its criteria.
type Principle struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Criteria    []Criterion `json:"criteria"`
}

// Criterion is one WCAG success criterion with its verdict.
type Criterion struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Level       Level     `json:"level"`
	Result      Result    `json:"result"`
	Findings    []Finding `json:"findings"`
}

// Compliant reports whether the criterion may be shown as compliant.
// A failed criterion without findings is still not compliant.
func (c Criterion) Compliant() bool {
	return c.Result == ResultPass
}

// Finding is one concrete defect backing a failed criterion.
type Finding struct {
	Description      string `json:"description"`
	Location         string `json:"location"`
	TechnicalDetails string `json:"technicalDetails"`
	Solution         string `json:"solution"`
}

// CriteriaCount returns the number of criteria across all principles.
func (r *Report) CriteriaCount() int {
	n := 0
	for _, p := range r.Principles {
		n += len(p.Criteria)
	}
	return n
}

// CountByResult returns how many criteria carry the given result.
func (r *Report) CountByResult(result Result) int {
	n := 0
	for _, p := range r.Principles {
		for _, c := range p.Criteria {
			if c.Result == result {
				n++
			}
		}
	}
	return n
}

// FindingCount returns the total number of findings in the report.
func (r *Report) FindingCount() int {
	n := 0
	for _, p := range r.Principles {
		for _, c := range p.Criteria {
			n += len(c.Findings)
		}
	}
	return n
}

// Criterion looks up a criterion by its id, e.g. "1.4.3".
func (r *Report) Criterion(id string) (Criterion, bool) {
	for _, p := range r.Principles {
		for _, c := range p.Criteria {
			if c.ID == id {
				return c, true
			}
		}
	}
	return Criterion{}, false
}
