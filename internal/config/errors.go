package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() so callers can use
// errors.Is() while users still get a readable message.
var (
	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidRequestsPerMinute is returned when the request quota is negative.
	// Use 0 to disable the client-side quota.
	ErrInvalidRequestsPerMinute = errors.New("invalid requests per minute: must be non-negative")

	// ErrInvalidStoreBackend is returned for an unknown store backend name.
	ErrInvalidStoreBackend = errors.New("invalid store backend: must be sqlite, file or postgres")

	// ErrMissingDatabaseURL is returned when the postgres backend is selected
	// without a connection URL.
	ErrMissingDatabaseURL = errors.New("postgres store requires a database URL: set WCAGAUDIT_DATABASE_URL or defaults.databaseURL")

	// ErrEmptyModel is returned when the model name is blank.
	ErrEmptyModel = errors.New("model must not be empty")
)
