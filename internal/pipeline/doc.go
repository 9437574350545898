// Package pipeline runs the report generation steps in sequence.
//
// A Job carries the state of one generation request: the submitted
// targets, the built request, the raw service response, the parsed report
// and the consistency result. Steps receive the Job and fill in their part.
// The first failing step aborts the run, so a partial report is never
// produced.
//
// The default steps are:
//
//	build-request -> generate -> validate -> consistency
//
// Runner wraps the pipeline and allows only one outstanding generation at a
// time. A second call while one is in flight fails immediately with
// ErrGenerationInProgress.
package pipeline
