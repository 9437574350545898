package consistency

import (
	"reflect"
	"testing"

	"github.com/nao1215/wcagaudit/internal/model"
)

func criterion(id string, level model.Level, result model.Result) model.Criterion {
	c := model.Criterion{ID: id, Name: id, Level: level, Result: result, Findings: []model.Finding{}}
	if result == model.ResultFail {
		c.Findings = []model.Finding{{Description: "probleem"}}
	}
	return c
}

func reportWith(criteria ...model.Criterion) *model.Report {
	return &model.Report{
		Meta:       model.Meta{Inspector: "J. Jansen"},
		Principles: []model.Principle{{ID: "1", Name: "Waarneembaar", Criteria: criteria}},
	}
}

func TestCheckConsistentReportUnchanged(t *testing.T) {
	t.Parallel()

	r := reportWith(criterion("1.1.1", model.LevelA, model.ResultPass))
	r.Summary.WCAG21.LevelA = model.Score{Passed: 1, Total: 1}
	r.Summary.WCAG21.Total = model.Score{Passed: 1, Total: 1}

	before := *r
	res := Check(r)

	if !res.Consistent() {
		t.Errorf("Check() discrepancies = %v, want none", res.Discrepancies)
	}
	if r.Summary != before.Summary {
		t.Errorf("summary changed: %+v -> %+v", before.Summary, r.Summary)
	}
}

func TestCompute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		criteria    []model.Criterion
		want        model.Summary
		wantUnknown []string
	}{
		{
			name: "pass and not applicable count as passed",
			criteria: []model.Criterion{
				criterion("1.1.1", model.LevelA, model.ResultPass),
				criterion("1.2.1", model.LevelA, model.ResultNotApplicable),
				criterion("1.3.1", model.LevelA, model.ResultFail),
				criterion("1.4.3", model.LevelAA, model.ResultFail),
			},
			want: model.Summary{
				WCAG21: model.Edition{
					LevelA:  model.Score{Passed: 2, Total: 3},
					LevelAA: model.Score{Passed: 0, Total: 1},
					Total:   model.Score{Passed: 2, Total: 4},
				},
			},
		},
		{
			name: "2.2 criteria go to the 2.2 bucket",
			criteria: []model.Criterion{
				criterion("2.4.11", model.LevelAA, model.ResultPass),
				criterion("2.5.8", model.LevelAA, model.ResultFail),
				criterion("3.3.7", model.LevelA, model.ResultNotApplicable),
				criterion("2.4.7", model.LevelAA, model.ResultPass),
			},
			want: model.Summary{
				WCAG21: model.Edition{
					LevelAA: model.Score{Passed: 1, Total: 1},
					Total:   model.Score{Passed: 1, Total: 1},
				},
				WCAG22: model.Edition{
					LevelA:  model.Score{Passed: 1, Total: 1},
					LevelAA: model.Score{Passed: 1, Total: 2},
					Total:   model.Score{Passed: 2, Total: 3},
				},
			},
		},
		{
			name: "reference level wins over declared level",
			criteria: []model.Criterion{
				criterion("1.4.3", model.LevelA, model.ResultPass),
			},
			want: model.Summary{
				WCAG21: model.Edition{
					LevelAA: model.Score{Passed: 1, Total: 1},
					Total:   model.Score{Passed: 1, Total: 1},
				},
			},
		},
		{
			name: "prefixed ids are recognized",
			criteria: []model.Criterion{
				criterion("SC 2.5.7", model.LevelAA, model.ResultPass),
			},
			want: model.Summary{
				WCAG22: model.Edition{
					LevelAA: model.Score{Passed: 1, Total: 1},
					Total:   model.Score{Passed: 1, Total: 1},
				},
			},
		},
		{
			name: "unknown ids use declared level in 2.1",
			criteria: []model.Criterion{
				criterion("9.9.9", model.LevelAA, model.ResultFail),
			},
			want: model.Summary{
				WCAG21: model.Edition{
					LevelAA: model.Score{Passed: 0, Total: 1},
					Total:   model.Score{Passed: 0, Total: 1},
				},
			},
			wantUnknown: []string{"9.9.9"},
		},
		{
			name: "no criteria",
			want: model.Summary{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, unknown := Compute(reportWith(tt.criteria...))
			if got != tt.want {
				t.Errorf("Compute() = %+v, want %+v", got, tt.want)
			}
			if !reflect.DeepEqual(unknown, tt.wantUnknown) {
				t.Errorf("unknown = %v, want %v", unknown, tt.wantUnknown)
			}
		})
	}
}

func TestCheckOverwritesAndReports(t *testing.T) {
	t.Parallel()

	r := reportWith(
		criterion("1.1.1", model.LevelA, model.ResultPass),
		criterion("1.4.3", model.LevelAA, model.ResultFail),
	)
	r.Summary.WCAG21.LevelA = model.Score{Passed: 1, Total: 1}
	r.Summary.WCAG21.LevelAA = model.Score{Passed: 1, Total: 1}
	r.Summary.WCAG21.Total = model.Score{Passed: 2, Total: 2}
	r.Summary.WCAG22.Total = model.Score{Passed: 5, Total: 9}

	res := Check(r)

	want := []Discrepancy{
		{Path: "summary.wcag21.levelAA", Reported: model.Score{Passed: 1, Total: 1}, Computed: model.Score{Passed: 0, Total: 1}},
		{Path: "summary.wcag21.total", Reported: model.Score{Passed: 2, Total: 2}, Computed: model.Score{Passed: 1, Total: 2}},
		{Path: "summary.wcag22.total", Reported: model.Score{Passed: 5, Total: 9}, Computed: model.Score{}},
	}
	if !reflect.DeepEqual(res.Discrepancies, want) {
		t.Errorf("Discrepancies = %+v, want %+v", res.Discrepancies, want)
	}
	if r.Summary.WCAG21.LevelAA != (model.Score{Passed: 0, Total: 1}) {
		t.Errorf("levelAA not overwritten: %+v", r.Summary.WCAG21.LevelAA)
	}
	if got := want[0].String(); got != "summary.wcag21.levelAA: reported 1/1, computed 0/1" {
		t.Errorf("String() = %q", got)
	}
}

func TestCheckIdempotent(t *testing.T) {
	t.Parallel()

	r := reportWith(
		criterion("1.1.1", model.LevelA, model.ResultFail),
		criterion("2.5.8", model.LevelAA, model.ResultPass),
		criterion("4.1.3", model.LevelAA, model.ResultNotApplicable),
	)
	r.Summary.WCAG21.LevelA = model.Score{Passed: 7, Total: 7}

	Check(r)
	once := *r
	once.Principles = append([]model.Principle(nil), r.Principles...)

	res := Check(r)
	if !res.Consistent() {
		t.Errorf("second Check() discrepancies = %v", res.Discrepancies)
	}
	if !reflect.DeepEqual(*r, once) {
		t.Errorf("second Check() changed the report")
	}
}
