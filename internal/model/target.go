package model

import (
	"strings"
	"time"
)

// Target is one audited address plus optional access credentials.
// Credentials are kept in plaintext; they only tell the generative service
// that pages behind a login are part of the audit.
type Target struct {
	// ID is an opaque token, unique within a target list.
	ID string `json:"id"`

	// URL is the address to audit. A target with a blank URL is kept
	// while editing but is never submitted.
	URL string `json:"url"`

	// Username is the optional login name for the target.
	Username string `json:"username,omitempty"`

	// Password is the optional login password for the target.
	Password string `json:"password,omitempty"`
}

// HasURL reports whether the target has a non-blank URL.
func (t Target) HasURL() bool {
	return strings.TrimSpace(t.URL) != ""
}

// HasCredentials reports whether a username or password is set.
func (t Target) HasCredentials() bool {
	return t.Username != "" || t.Password != ""
}

// SavedSet is a named, persisted snapshot of a target list.
type SavedSet struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Targets   []Target  `json:"urls"`
	CreatedAt time.Time `json:"createdAt"`
}

// CloneTargets returns a deep copy of targets.
func CloneTargets(targets []Target) []Target {
	if targets == nil {
		return nil
	}
	out := make([]Target, len(targets))
	copy(out, targets)
	return out
}
