package report

import "errors"

// ErrNilReport is returned when a writer receives a document without a report.
var ErrNilReport = errors.New("document has no report")
