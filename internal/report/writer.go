package report

import (
	"io"

	"github.com/nao1215/wcagaudit/internal/consistency"
	"github.com/nao1215/wcagaudit/internal/model"
)

// Document is what writers render.
type Document struct {
	// Report is the validated, consistency-checked report.
	Report *model.Report

	// Discrepancies lists summary scores that were corrected.
	Discrepancies []consistency.Discrepancy

	// Warnings are additional notes for the reader, e.g. a language warning.
	Warnings []string
}

// NewDocument wraps a report without notes.
func NewDocument(report *model.Report) *Document {
	return &Document{Report: report}
}

// Writer defines the interface for report output.
type Writer interface {
	// Write renders doc to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(doc *Document) (int, error)
}

// MultiWriter writes to multiple Writers in order.
// The CLI uses it to write a report file and a terminal summary at once.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the document to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(doc *Document) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(doc)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
