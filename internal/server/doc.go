// Package server exposes report generation and the saved URL sets over HTTP.
//
// Routes:
//
//	GET    /healthz                 liveness probe
//	POST   /api/reports             generate a report for {targets, inspector}
//	GET    /api/sets                list saved sets, passwords removed
//	POST   /api/sets                save {name, targets} as a new set
//	DELETE /api/sets/{id}           delete a saved set
//	GET    /api/sets/{id}/targets   load a set as fresh targets
//
// Errors are JSON objects with a Dutch "error" message. Input errors map to
// 400, a generation already in flight to 409, and every service or response
// failure to 502 with the same generic message. Details of those failures
// are logged, never returned.
package server
