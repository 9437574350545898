// Package generator performs the external generative call that produces a
// report.
//
// A Generator receives a request.Request and returns the raw response text.
// It does not parse or validate the text; that is the job of package
// validate. Any failure of the call itself, including an empty response,
// is reported as ErrServiceFailure. Calls are never retried.
//
// Gemini is the production implementation on google.golang.org/genai. Once
// a call has been issued it runs to completion even if the caller's context
// is cancelled. A client-side rate limiter keeps the process within the
// configured requests-per-minute quota.
//
// Func adapts a plain function, which is how tests and the offline
// --response-file mode provide responses.
package generator
