package urlset

import "errors"

var (
	// ErrInvalidName is returned when a set name is empty or whitespace only.
	ErrInvalidName = errors.New("set name must not be empty")

	// ErrSetNotFound is returned when no saved set matches the given id or name.
	ErrSetNotFound = errors.New("saved set not found")
)
