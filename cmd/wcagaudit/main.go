// Package main provides the entry point for the wcagaudit CLI.
//
// wcagaudit produces Dutch WCAG 2.2 AA audit reports for a list of web
// addresses. The report is drafted by a generative model and then checked:
// the response must match the report schema and the summary scores are
// recomputed from the individual criteria.
//
// Usage:
//
//	wcagaudit generate https://example.nl
//	wcagaudit generate --set "Gemeente site"
//	wcagaudit sets list
//
// See --help for all available options.
package main

func main() {
	Execute()
}
