package validate

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse is returned when the service output does not match the report schema.
var ErrMalformedResponse = errors.New("malformed response")

// PathError describes a schema violation at a JSON path.
type PathError struct {
	// Path is the JSON path of the offending field.
	Path string

	// Reason explains what is wrong with the field.
	Reason string
}

// Error implements the error interface.
func (e *PathError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", ErrMalformedResponse, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrMalformedResponse, e.Path, e.Reason)
}

// Unwrap makes errors.Is(err, ErrMalformedResponse) hold.
func (e *PathError) Unwrap() error {
	return ErrMalformedResponse
}

func pathErrorf(path, format string, args ...any) *PathError {
	return &PathError{Path: path, Reason: fmt.Sprintf(format, args...)}
}
