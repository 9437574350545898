// Package targets implements the in-memory target list a user edits before
// requesting an audit.
//
// A List holds at most MaxTargets entries, each with a unique id. Mutations
// are serialized with a mutex so a host application may share one List per
// session between goroutines.
package targets
