// Package wcag holds the static WCAG 2.2 reference data used by wcagaudit.
//
// The table maps every level A and AA success criterion to the WCAG edition
// that introduced it. The consistency checker relies on this mapping instead
// of on anything the generative service reports, so the table is versioned
// with the binary and never derived from a response.
package wcag
