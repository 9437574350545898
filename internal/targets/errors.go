package targets

import "errors"

// Target list errors. All of them are caller-input errors: they are returned
// before anything reaches the generation pipeline and are fixed by
// correcting the input.
var (
	// ErrCapacityExceeded is returned by Add when the list already holds MaxTargets entries.
	ErrCapacityExceeded = errors.New("target list is full: at most 10 targets are allowed")

	// ErrEmptySubmission is returned when no target has a non-blank URL.
	ErrEmptySubmission = errors.New("no eligible target: add at least one URL")

	// ErrLastTarget is returned by Remove when removing the only remaining entry.
	// The list is left unchanged.
	ErrLastTarget = errors.New("cannot remove the last target")
)
