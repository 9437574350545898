package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nao1215/wcagaudit/internal/consistency"
	"github.com/nao1215/wcagaudit/internal/generator"
	"github.com/nao1215/wcagaudit/internal/request"
	"github.com/nao1215/wcagaudit/internal/validate"
)

// BuildRequestStep turns the job's targets into a generation request.
type BuildRequestStep struct{}

// Name returns the step name.
func (BuildRequestStep) Name() string {
	return "build-request"
}

// Do executes the build-request step.
func (BuildRequestStep) Do(_ context.Context, job *Job) error {
	req, err := request.Build(job.Targets, job.Inspector, job.RequestOptions...)
	if err != nil {
		return err
	}
	job.Request = req
	return nil
}

// GenerateStep calls the generative service.
type GenerateStep struct {
	gen generator.Generator
}

// NewGenerateStep creates a generate step backed by gen.
func NewGenerateStep(gen generator.Generator) *GenerateStep {
	return &GenerateStep{gen: gen}
}

// Name returns the step name.
func (s *GenerateStep) Name() string {
	return "generate"
}

// Do executes the generate step.
func (s *GenerateStep) Do(ctx context.Context, job *Job) error {
	raw, err := s.gen.Generate(ctx, job.Request)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return fmt.Errorf("%w: empty response", generator.ErrServiceFailure)
	}
	job.Raw = raw
	return nil
}

// ValidateStep parses the raw response into a report.
type ValidateStep struct{}

// Name returns the step name.
func (ValidateStep) Name() string {
	return "validate"
}

// Do executes the validate step.
func (ValidateStep) Do(_ context.Context, job *Job) error {
	report, err := validate.Parse(job.Raw)
	if err != nil {
		return err
	}
	job.Report = report
	return nil
}

// ConsistencyStep recomputes the summary and checks the summary language.
// Neither check fails the job; both are logged as warnings.
type ConsistencyStep struct {
	logger *slog.Logger
}

// NewConsistencyStep creates a consistency step.
func NewConsistencyStep(logger *slog.Logger) *ConsistencyStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConsistencyStep{logger: logger}
}

// Name returns the step name.
func (s *ConsistencyStep) Name() string {
	return "consistency"
}

// Do executes the consistency step.
func (s *ConsistencyStep) Do(_ context.Context, job *Job) error {
	if job.Report == nil {
		return fmt.Errorf("%w: no report to check", validate.ErrMalformedResponse)
	}

	job.Consistency = consistency.Check(job.Report)
	for _, d := range job.Consistency.Discrepancies {
		s.logger.Warn("summary score corrected",
			"path", d.Path,
			"reported", fmt.Sprintf("%d/%d", d.Reported.Passed, d.Reported.Total),
			"computed", fmt.Sprintf("%d/%d", d.Computed.Passed, d.Computed.Total),
		)
	}
	if len(job.Consistency.UnknownIDs) > 0 {
		s.logger.Warn("criteria missing from WCAG reference table", "ids", job.Consistency.UnknownIDs)
	}

	if err := consistency.CheckLanguage(job.Report); err != nil {
		job.LanguageWarning = err
		s.logger.Warn("executive summary language check", "error", err)
	}
	return nil
}
