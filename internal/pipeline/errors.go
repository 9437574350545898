package pipeline

import (
	"errors"

	"github.com/nao1215/wcagaudit/internal/generator"
	"github.com/nao1215/wcagaudit/internal/targets"
	"github.com/nao1215/wcagaudit/internal/validate"
)

// ErrGenerationInProgress is returned when a generation is already running.
var ErrGenerationInProgress = errors.New("a report is already being generated")

// GenericFailureMessage is shown to users for every service or response failure.
const GenericFailureMessage = "Er is een fout opgetreden bij het genereren van het rapport."

// IsInputError reports whether err is caused by the caller's input.
func IsInputError(err error) bool {
	return errors.Is(err, targets.ErrEmptySubmission) ||
		errors.Is(err, targets.ErrCapacityExceeded)
}

// IsGenerationFailure reports whether err comes from the service call or its response.
func IsGenerationFailure(err error) bool {
	return errors.Is(err, generator.ErrServiceFailure) ||
		errors.Is(err, validate.ErrMalformedResponse)
}

// UserMessage returns the Dutch message to show for err.
// Service and response failures all map to GenericFailureMessage.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, targets.ErrEmptySubmission):
		return "Vul ten minste één URL in."
	case errors.Is(err, targets.ErrCapacityExceeded):
		return "Er kunnen maximaal 10 URL's tegelijk worden onderzocht."
	case errors.Is(err, ErrGenerationInProgress):
		return "Er wordt al een rapport gegenereerd. Wacht tot dit klaar is."
	default:
		return GenericFailureMessage
	}
}
