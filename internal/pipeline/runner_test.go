package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/nao1215/wcagaudit/internal/generator"
	"github.com/nao1215/wcagaudit/internal/model"
	"github.com/nao1215/wcagaudit/internal/request"
	"github.com/nao1215/wcagaudit/internal/targets"
	"github.com/nao1215/wcagaudit/internal/validate"
)

const consistentResponse = `{
  "meta": {"client": "Voorbeeld BV", "website": "https://example.nl", "date": "2025-06-01", "version": "1.0", "inspector": "J. Jansen"},
  "executiveSummary": "De website voldoet aan alle onderzochte criteria van niveau A. Er zijn geen problemen gevonden.",
  "summary": {
    "wcag21": {"levelA": {"passed": 1, "total": 1}, "levelAA": {"passed": 0, "total": 0}, "total": {"passed": 1, "total": 1}},
    "wcag22": {"levelA": {"passed": 0, "total": 0}, "levelAA": {"passed": 0, "total": 0}, "total": {"passed": 0, "total": 0}}
  },
  "principles": [
    {"id": "1", "name": "Waarneembaar", "description": "Informatie moet waarneembaar zijn.", "criteria": [
      {"id": "1.1.1", "name": "Niet-tekstuele content", "description": "Tekstalternatieven.", "level": "A", "result": "Voldoet", "findings": []}
    ]}
  ]
}`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunnerEndToEnd(t *testing.T) {
	t.Parallel()

	var brief string
	gen := generator.Func(func(_ context.Context, req request.Request) ([]byte, error) {
		brief = req.Brief
		return []byte(consistentResponse), nil
	})

	r := NewRunner(gen, quietLogger())
	report, job, err := r.Generate(context.Background(), []model.Target{{URL: "https://example.nl"}}, "J. Jansen")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if !strings.Contains(brief, "https://example.nl") || !strings.Contains(brief, "J. Jansen") {
		t.Errorf("brief missing url or inspector:\n%s", brief)
	}
	if !job.Consistency.Consistent() {
		t.Errorf("discrepancies = %v, want none", job.Consistency.Discrepancies)
	}
	if report.Summary.WCAG21.LevelA != (model.Score{Passed: 1, Total: 1}) {
		t.Errorf("levelA = %+v", report.Summary.WCAG21.LevelA)
	}
	if report.Meta.Inspector != "J. Jansen" {
		t.Errorf("inspector = %q", report.Meta.Inspector)
	}
	want := []string{"build-request", "generate", "validate", "consistency"}
	if strings.Join(job.PerformedSteps, ",") != strings.Join(want, ",") {
		t.Errorf("PerformedSteps = %v, want %v", job.PerformedSteps, want)
	}
}

func elevenTargets() []model.Target {
	list := make([]model.Target, targets.MaxTargets+1)
	for i := range list {
		list[i].URL = fmt.Sprintf("https://example.nl/pagina-%d", i)
	}
	return list
}

func TestRunnerFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		targets   []model.Target
		gen       generator.Func
		wantErr   error
		wantCalls int
	}{
		{
			name:    "empty submission never reaches the service",
			targets: []model.Target{{URL: "  "}},
			wantErr: targets.ErrEmptySubmission,
		},
		{
			name:    "too many targets never reach the service",
			targets: elevenTargets(),
			wantErr: targets.ErrCapacityExceeded,
		},
		{
			name:    "service failure",
			targets: []model.Target{{URL: "https://example.nl"}},
			gen: func(context.Context, request.Request) ([]byte, error) {
				return nil, generator.ErrServiceFailure
			},
			wantErr:   generator.ErrServiceFailure,
			wantCalls: 1,
		},
		{
			name:    "empty response",
			targets: []model.Target{{URL: "https://example.nl"}},
			gen: func(context.Context, request.Request) ([]byte, error) {
				return nil, nil
			},
			wantErr:   generator.ErrServiceFailure,
			wantCalls: 1,
		},
		{
			name:    "missing meta.inspector",
			targets: []model.Target{{URL: "https://example.nl"}},
			gen: func(context.Context, request.Request) ([]byte, error) {
				return []byte(strings.Replace(consistentResponse, `, "inspector": "J. Jansen"`, "", 1)), nil
			},
			wantErr:   validate.ErrMalformedResponse,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			calls := 0
			gen := generator.Func(func(ctx context.Context, req request.Request) ([]byte, error) {
				calls++
				if tt.gen == nil {
					return []byte(consistentResponse), nil
				}
				return tt.gen(ctx, req)
			})

			report, _, err := NewRunner(gen, quietLogger()).Generate(context.Background(), tt.targets, "")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Generate() error = %v, want %v", err, tt.wantErr)
			}
			if report != nil {
				t.Error("report returned on failure")
			}
			if calls != tt.wantCalls {
				t.Errorf("service called %d times, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestRunnerCorrectsSummary(t *testing.T) {
	t.Parallel()

	wrong := strings.Replace(consistentResponse,
		`"levelA": {"passed": 1, "total": 1}, "levelAA": {"passed": 0, "total": 0}, "total": {"passed": 1, "total": 1}`,
		`"levelA": {"passed": 3, "total": 4}, "levelAA": {"passed": 0, "total": 0}, "total": {"passed": 3, "total": 4}`, 1)

	r := NewRunner(generator.Static([]byte(wrong)), quietLogger())
	report, job, err := r.Generate(context.Background(), []model.Target{{URL: "https://example.nl"}}, "")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(job.Consistency.Discrepancies) != 2 {
		t.Errorf("discrepancies = %v, want 2", job.Consistency.Discrepancies)
	}
	if report.Summary.WCAG21.LevelA != (model.Score{Passed: 1, Total: 1}) {
		t.Errorf("levelA not corrected: %+v", report.Summary.WCAG21.LevelA)
	}
}

func TestRunnerSingleOutstanding(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})
	gen := generator.Func(func(context.Context, request.Request) ([]byte, error) {
		close(started)
		<-release
		return []byte(consistentResponse), nil
	})

	r := NewRunner(gen, quietLogger())
	list := []model.Target{{URL: "https://example.nl"}}

	done := make(chan error, 1)
	go func() {
		_, _, err := r.Generate(context.Background(), list, "")
		done <- err
	}()

	<-started
	if !r.Busy() {
		t.Error("Busy() = false while generating")
	}
	if _, _, err := r.Generate(context.Background(), list, ""); !errors.Is(err, ErrGenerationInProgress) {
		t.Errorf("second Generate() error = %v, want ErrGenerationInProgress", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first Generate() error = %v", err)
	}
	if r.Busy() {
		t.Error("Busy() = true after completion")
	}
}

func TestUserMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "service failure", err: generator.ErrServiceFailure, want: GenericFailureMessage},
		{name: "malformed", err: &validate.PathError{Path: "meta.inspector", Reason: "required field is missing"}, want: GenericFailureMessage},
		{name: "empty submission", err: targets.ErrEmptySubmission, want: "Vul ten minste één URL in."},
		{name: "busy", err: ErrGenerationInProgress, want: "Er wordt al een rapport gegenereerd. Wacht tot dit klaar is."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}

	if !IsGenerationFailure(&validate.PathError{}) || IsGenerationFailure(targets.ErrEmptySubmission) {
		t.Error("IsGenerationFailure misclassifies errors")
	}
	if !IsInputError(targets.ErrCapacityExceeded) || IsInputError(generator.ErrServiceFailure) {
		t.Error("IsInputError misclassifies errors")
	}
}
