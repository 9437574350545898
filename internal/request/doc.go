// Package request builds the generation request for a WCAG audit report.
//
// A Request pairs a machine-checkable response schema, mirroring the
// model.Report JSON shape with its required fields and enumerations, with a
// Dutch natural-language brief for the generative service. The brief lists
// the audit addresses and the inspector name. Credentials only change the
// brief's assumptions: a target with a username or password is described
// as being behind a login, and the credential values themselves are never
// written into the request.
package request
