// Package model defines the core data structures used throughout wcagaudit.
//
// This package contains the following main types:
//   - Target: One audited address with optional access credentials
//   - SavedSet: A named, persisted snapshot of a target list
//   - Report: The canonical structured audit result
//
// Models live in their own package because the store, the pipeline and the
// report writers all share them. Every type is JSON serializable; the JSON
// field names follow the schema the generative service is asked to produce.
package model
