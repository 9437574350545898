package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/wcagaudit/internal/consistency"
	"github.com/nao1215/wcagaudit/internal/model"
	"github.com/nao1215/wcagaudit/internal/request"
)

// Job is the state of one generation request.
type Job struct {
	// Targets are the submitted audit targets.
	Targets []model.Target

	// Inspector is the requested inspector name, possibly empty.
	Inspector string

	// RequestOptions are passed to request.Build.
	RequestOptions []request.Option

	// Request is set by the build-request step.
	Request request.Request

	// Raw is the service response, set by the generate step.
	Raw []byte

	// Report is the parsed report, set by the validate step.
	Report *model.Report

	// Consistency is the summary check result, set by the consistency step.
	Consistency consistency.Result

	// LanguageWarning is set when the executive summary does not read as Dutch.
	LanguageWarning error

	// PerformedSteps lists the steps that completed, in order.
	PerformedSteps []string
}

// Warnings returns reader-facing notes about the generated report.
// The slice is never nil.
func (j *Job) Warnings() []string {
	warnings := []string{}
	if j.LanguageWarning != nil {
		warnings = append(warnings, j.LanguageWarning.Error())
	}
	return warnings
}

// Step defines the interface that all pipeline steps must implement.
type Step interface {
	// Do executes the step against job.
	// A returned error aborts the pipeline.
	Do(ctx context.Context, job *Job) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddStep after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all steps in sequence and stops at the first error.
// Cancellation is checked before each step. On error job.Report is cleared
// so no partial report escapes.
func (p *Pipeline) Execute(ctx context.Context, job *Job) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"reason", ctx.Err(),
			)
			job.Report = nil
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing step", "step", step.Name())

		if err := step.Do(ctx, job); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"error", err,
			)
			job.Report = nil
			return err
		}

		job.PerformedSteps = append(job.PerformedSteps, step.Name())
	}

	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
