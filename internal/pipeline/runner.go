package pipeline

import (
	"context"
	"log/slog"

	"golang.org/x/sync/semaphore"

	"github.com/nao1215/wcagaudit/internal/generator"
	"github.com/nao1215/wcagaudit/internal/model"
	"github.com/nao1215/wcagaudit/internal/request"
)

// Runner generates reports one at a time.
type Runner struct {
	pipeline *Pipeline
	sem      *semaphore.Weighted
	logger   *slog.Logger
}

// NewRunner creates a Runner with the default steps around gen.
func NewRunner(gen generator.Generator, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}

	p := New(WithLogger(logger))
	p.AddSteps(
		BuildRequestStep{},
		NewGenerateStep(gen),
		ValidateStep{},
		NewConsistencyStep(logger),
	)

	return &Runner{
		pipeline: p,
		sem:      semaphore.NewWeighted(1),
		logger:   logger,
	}
}

// Run executes job. It fails with ErrGenerationInProgress when another job
// is still running.
func (r *Runner) Run(ctx context.Context, job *Job) error {
	if !r.sem.TryAcquire(1) {
		return ErrGenerationInProgress
	}
	defer r.sem.Release(1)

	return r.pipeline.Execute(ctx, job)
}

// Generate produces a validated, consistency-checked report for list.
// The returned report is owned by the caller.
func (r *Runner) Generate(ctx context.Context, list []model.Target, inspector string, opts ...request.Option) (*model.Report, *Job, error) {
	job := &Job{
		Targets:        model.CloneTargets(list),
		Inspector:      inspector,
		RequestOptions: opts,
	}
	if err := r.Run(ctx, job); err != nil {
		return nil, job, err
	}
	return job.Report, job, nil
}

// Busy reports whether a generation is in flight.
func (r *Runner) Busy() bool {
	if !r.sem.TryAcquire(1) {
		return true
	}
	r.sem.Release(1)
	return false
}
