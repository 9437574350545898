package validate

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/wcagaudit/internal/model"
)

func readFixture(t *testing.T) []byte {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("testdata", "report.json"))
	if err != nil {
		t.Fatalf("failed to read fixture: %v", err)
	}
	return data
}

// mutate decodes the fixture, applies fn and re-encodes it.
func mutate(t *testing.T, fn func(doc map[string]any)) []byte {
	t.Helper()

	var doc map[string]any
	if err := json.Unmarshal(readFixture(t), &doc); err != nil {
		t.Fatalf("failed to decode fixture: %v", err)
	}
	fn(doc)
	out, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}
	return out
}

func obj(v any) map[string]any { return v.(map[string]any) }
func arr(v any) []any          { return v.([]any) }

func firstCriterion(doc map[string]any, principle, criterion int) map[string]any {
	p := obj(arr(doc["principles"])[principle])
	return obj(arr(p["criteria"])[criterion])
}

func TestParseValid(t *testing.T) {
	t.Parallel()

	r, err := Parse(readFixture(t))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if r.Meta.Inspector != "J. Jansen" {
		t.Errorf("Meta.Inspector = %q", r.Meta.Inspector)
	}
	if len(r.Principles) != 2 {
		t.Fatalf("len(Principles) = %d, want 2", len(r.Principles))
	}
	c := r.Principles[0].Criteria[1]
	if c.Level != model.LevelAA || c.Result != model.ResultFail {
		t.Errorf("criterion 1.4.3 = %+v", c)
	}
	if len(c.Findings) != 1 || c.Findings[0].TechnicalDetails == "" {
		t.Errorf("findings = %+v", c.Findings)
	}
	if r.Summary.WCAG22.LevelAA != (model.Score{Passed: 1, Total: 1}) {
		t.Errorf("wcag22.levelAA = %+v", r.Summary.WCAG22.LevelAA)
	}
	if r.Principles[0].Criteria[0].Findings == nil {
		t.Error("empty findings decoded as nil")
	}
}

func TestParseWrapping(t *testing.T) {
	t.Parallel()

	body := string(readFixture(t))

	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "surrounding whitespace", raw: "\n\t  " + body + "\n\n"},
		{name: "json fence", raw: "```json\n" + body + "\n```"},
		{name: "bare fence", raw: "```\n" + body + "\n```\n"},
		{name: "unterminated fence", raw: "```json\n" + body, wantErr: true},
		{name: "other fence language", raw: "```yaml\n" + body + "\n```", wantErr: true},
		{name: "trailing text", raw: body + "\nIk hoop dat dit helpt!", wantErr: true},
		{name: "second document", raw: body + body, wantErr: true},
		{name: "leading text", raw: "Hier is het rapport: " + body, wantErr: true},
		{name: "empty", raw: "   ", wantErr: true},
		{name: "not json", raw: "Er ging iets mis", wantErr: true},
		{name: "array root", raw: "[]", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, err := Parse([]byte(tt.raw))
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedResponse) {
					t.Errorf("Parse() error = %v, want ErrMalformedResponse", err)
				}
				if r != nil {
					t.Error("Parse() returned a report on failure")
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if r.Meta.Inspector != "J. Jansen" {
				t.Errorf("Meta.Inspector = %q", r.Meta.Inspector)
			}
		})
	}
}

func TestParseSchemaViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mutate   func(doc map[string]any)
		wantPath string
	}{
		{
			name:     "missing meta.inspector",
			mutate:   func(doc map[string]any) { delete(obj(doc["meta"]), "inspector") },
			wantPath: "meta.inspector",
		},
		{
			name:     "missing executiveSummary",
			mutate:   func(doc map[string]any) { delete(doc, "executiveSummary") },
			wantPath: "executiveSummary",
		},
		{
			name:     "null meta.client",
			mutate:   func(doc map[string]any) { obj(doc["meta"])["client"] = nil },
			wantPath: "meta.client",
		},
		{
			name:     "meta.date not a string",
			mutate:   func(doc map[string]any) { obj(doc["meta"])["date"] = 20250601 },
			wantPath: "meta.date",
		},
		{
			name: "passed is a string",
			mutate: func(doc map[string]any) {
				obj(obj(obj(doc["summary"])["wcag21"])["levelA"])["passed"] = "1"
			},
			wantPath: "summary.wcag21.levelA.passed",
		},
		{
			name: "negative total",
			mutate: func(doc map[string]any) {
				s := obj(obj(obj(doc["summary"])["wcag22"])["total"])
				s["passed"] = 0
				s["total"] = -1
			},
			wantPath: "summary.wcag22.total.total",
		},
		{
			name: "fractional passed",
			mutate: func(doc map[string]any) {
				obj(obj(obj(doc["summary"])["wcag21"])["levelAA"])["passed"] = 0.5
			},
			wantPath: "summary.wcag21.levelAA.passed",
		},
		{
			name: "total below passed",
			mutate: func(doc map[string]any) {
				s := obj(obj(obj(doc["summary"])["wcag21"])["total"])
				s["passed"] = 3
				s["total"] = 2
			},
			wantPath: "summary.wcag21.total",
		},
		{
			name:     "missing wcag22",
			mutate:   func(doc map[string]any) { delete(obj(doc["summary"]), "wcag22") },
			wantPath: "summary.wcag22",
		},
		{
			name:     "principles not an array",
			mutate:   func(doc map[string]any) { doc["principles"] = map[string]any{} },
			wantPath: "principles",
		},
		{
			name:     "invalid level",
			mutate:   func(doc map[string]any) { firstCriterion(doc, 0, 1)["level"] = "AAA" },
			wantPath: "principles[0].criteria[1].level",
		},
		{
			name:     "english result value",
			mutate:   func(doc map[string]any) { firstCriterion(doc, 1, 0)["result"] = "Pass" },
			wantPath: "principles[1].criteria[0].result",
		},
		{
			name:     "missing findings",
			mutate:   func(doc map[string]any) { delete(firstCriterion(doc, 0, 0), "findings") },
			wantPath: "principles[0].criteria[0].findings",
		},
		{
			name: "findings on a passing criterion",
			mutate: func(doc map[string]any) {
				firstCriterion(doc, 0, 0)["findings"] = firstCriterion(doc, 0, 1)["findings"]
			},
			wantPath: "principles[0].criteria[0].findings",
		},
		{
			name: "finding missing solution",
			mutate: func(doc map[string]any) {
				f := obj(arr(firstCriterion(doc, 0, 1)["findings"])[0])
				delete(f, "solution")
			},
			wantPath: "principles[0].criteria[1].findings[0].solution",
		},
		{
			name: "criterion is not an object",
			mutate: func(doc map[string]any) {
				p := obj(arr(doc["principles"])[1])
				p["criteria"] = []any{"2.5.8"}
			},
			wantPath: "principles[1].criteria[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, err := Parse(mutate(t, tt.mutate))
			if r != nil {
				t.Error("Parse() returned a report on failure")
			}
			if !errors.Is(err, ErrMalformedResponse) {
				t.Fatalf("Parse() error = %v, want ErrMalformedResponse", err)
			}

			var pe *PathError
			if !errors.As(err, &pe) {
				t.Fatalf("Parse() error = %T, want *PathError", err)
			}
			if pe.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", pe.Path, tt.wantPath)
			}
			if !strings.Contains(err.Error(), tt.wantPath) {
				t.Errorf("error %q does not name the path", err)
			}
		})
	}
}

func TestParseFailWithoutFindings(t *testing.T) {
	t.Parallel()

	raw := mutate(t, func(doc map[string]any) {
		firstCriterion(doc, 0, 1)["findings"] = []any{}
	})

	r, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	c := r.Principles[0].Criteria[1]
	if c.Result != model.ResultFail || len(c.Findings) != 0 {
		t.Errorf("criterion = %+v", c)
	}
	if c.Compliant() {
		t.Error("failed criterion without findings reported as compliant")
	}
}

func TestParseIgnoresUnknownFields(t *testing.T) {
	t.Parallel()

	raw := mutate(t, func(doc map[string]any) {
		doc["generator"] = "gemini"
		obj(doc["meta"])["language"] = "nl"
	})
	if _, err := Parse(raw); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
}
