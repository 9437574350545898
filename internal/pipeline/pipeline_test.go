package pipeline

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/nao1215/wcagaudit/internal/model"
)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, job *Job) error
	callCount int
}

// Do implements Step.Do.
func (m *mockStep) Do(ctx context.Context, job *Job) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, job)
	}
	return nil
}

// Name implements Step.Name.
func (m *mockStep) Name() string {
	return m.name
}

func TestPipelineNew(t *testing.T) {
	t.Parallel()

	p := New()
	if p.StepCount() != 0 {
		t.Errorf("expected 0 steps, got %d", p.StepCount())
	}
	if p.logger == nil {
		t.Error("expected default logger")
	}
}

func TestPipelineAddSteps(t *testing.T) {
	t.Parallel()

	p := New()
	p.AddStep(&mockStep{name: "a"})
	p.AddSteps(&mockStep{name: "b"}, &mockStep{name: "c"})

	if got := p.StepNames(); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("StepNames() = %v", got)
	}
}

func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("runs steps in order", func(t *testing.T) {
		t.Parallel()

		var order []string
		record := func(name string) *mockStep {
			return &mockStep{name: name, doFunc: func(context.Context, *Job) error {
				order = append(order, name)
				return nil
			}}
		}

		p := New()
		p.AddSteps(record("first"), record("second"), record("third"))

		job := &Job{}
		if err := p.Execute(context.Background(), job); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		want := []string{"first", "second", "third"}
		if !slices.Equal(order, want) {
			t.Errorf("order = %v, want %v", order, want)
		}
		if !slices.Equal(job.PerformedSteps, want) {
			t.Errorf("PerformedSteps = %v, want %v", job.PerformedSteps, want)
		}
	})

	t.Run("first error aborts and drops the report", func(t *testing.T) {
		t.Parallel()

		stepErr := errors.New("boom")
		setReport := &mockStep{name: "set", doFunc: func(_ context.Context, job *Job) error {
			job.Report = &model.Report{}
			return nil
		}}
		failing := &mockStep{name: "fail", doFunc: func(context.Context, *Job) error { return stepErr }}
		after := &mockStep{name: "after"}

		p := New()
		p.AddSteps(setReport, failing, after)

		job := &Job{}
		err := p.Execute(context.Background(), job)
		if !errors.Is(err, stepErr) {
			t.Errorf("Execute() error = %v, want %v", err, stepErr)
		}
		if after.callCount != 0 {
			t.Error("step after failure was executed")
		}
		if job.Report != nil {
			t.Error("partial report kept after failure")
		}
	})

	t.Run("cancelled context stops before next step", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		first := &mockStep{name: "first", doFunc: func(context.Context, *Job) error {
			cancel()
			return nil
		}}
		second := &mockStep{name: "second"}

		p := New()
		p.AddSteps(first, second)

		if err := p.Execute(ctx, &Job{}); !errors.Is(err, context.Canceled) {
			t.Errorf("Execute() error = %v, want context.Canceled", err)
		}
		if second.callCount != 0 {
			t.Error("second step ran after cancellation")
		}
	})
}
