// Package validate turns the raw text returned by the generative service
// into a model.Report.
//
// Parsing is strict. Every required field must be present with the right
// JSON kind, scores must be non-negative integers with total >= passed,
// level and result must be one of their enumerated values, and nothing is
// defaulted. A criterion may only carry findings when its result is
// "Voldoet niet"; an empty findings list on a failed criterion is accepted.
//
// The service sometimes wraps its JSON in a Markdown ```json fence. Such a
// fence and surrounding whitespace are removed before parsing. Any other
// text before or after the JSON document is rejected.
//
// Every failure wraps ErrMalformedResponse. Field level failures are
// reported as *PathError, whose Path names the offending field, for
// example principles[0].criteria[2].level.
package validate
