// Package report renders audit reports for people and tools.
//
// This package contains writers for different output formats:
//   - TextWriter: Dutch plain text for terminal display
//   - MarkdownWriter: Dutch Markdown with tables, alerts and a result chart
//   - JSONWriter: the canonical report JSON, readable by validate.Parse
//
// Writers receive a Document: the validated report plus the summary
// corrections and warnings collected while producing it. Text and Markdown
// output mention corrected summary scores so readers know the service's
// own totals were wrong.
//
// Only criteria with result "Voldoet" get the compliant badge. A failed
// criterion without findings is still shown as failed.
package report
