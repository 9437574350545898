package targets

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/nao1215/wcagaudit/internal/model"
)

// MaxTargets is the maximum number of targets in one list.
const MaxTargets = 10

// Field names a mutable field of a target.
type Field string

const (
	// FieldURL addresses Target.URL.
	FieldURL Field = "url"

	// FieldUsername addresses Target.Username.
	FieldUsername Field = "username"

	// FieldPassword addresses Target.Password.
	FieldPassword Field = "password"
)

// IDFunc generates a fresh opaque target id.
type IDFunc func() string

// NewID returns a random UUID string. It is the default IDFunc.
func NewID() string {
	return uuid.NewString()
}

// List is an ordered list of targets with unique ids.
type List struct {
	mu      sync.Mutex
	targets []model.Target
	newID   IDFunc
}

// Option configures a List.
type Option func(*List)

// WithIDFunc replaces the id generator. Mostly useful in tests.
func WithIDFunc(fn IDFunc) Option {
	return func(l *List) {
		if fn != nil {
			l.newID = fn
		}
	}
}

// NewList creates an empty list.
func NewList(opts ...Option) *List {
	l := &List{
		targets: make([]model.Target, 0, MaxTargets),
		newID:   NewID,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Len returns the number of targets, including those with a blank URL.
func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.targets)
}

// Add appends t with a freshly generated id and returns the stored copy.
// Any id already set on t is ignored.
func (l *List) Add(t model.Target) (model.Target, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.targets) >= MaxTargets {
		return model.Target{}, ErrCapacityExceeded
	}

	t.ID = l.uniqueIDLocked()
	l.targets = append(l.targets, t)
	return t, nil
}

// uniqueIDLocked returns an id not yet present in the list.
// The caller must hold l.mu.
func (l *List) uniqueIDLocked() string {
	for {
		id := l.newID()
		if id != "" && l.indexLocked(id) < 0 {
			return id
		}
	}
}

// indexLocked returns the position of id or -1. The caller must hold l.mu.
func (l *List) indexLocked(id string) int {
	for i, t := range l.targets {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Remove deletes the target with the given id.
// Removing an unknown id is a no-op. Removing the only entry returns
// ErrLastTarget and leaves the list unchanged.
func (l *List) Remove(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexLocked(id)
	if i < 0 {
		return nil
	}
	if len(l.targets) == 1 {
		return ErrLastTarget
	}
	l.targets = append(l.targets[:i], l.targets[i+1:]...)
	return nil
}

// Update replaces one field of the target with the given id.
// The id and all other fields are preserved. Unknown ids and unknown
// fields are ignored and Update reports false.
func (l *List) Update(id string, field Field, value string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexLocked(id)
	if i < 0 {
		return false
	}

	switch field {
	case FieldURL:
		l.targets[i].URL = value
	case FieldUsername:
		l.targets[i].Username = value
	case FieldPassword:
		l.targets[i].Password = value
	default:
		return false
	}
	return true
}

// Get returns a copy of the target with the given id.
func (l *List) Get(id string) (model.Target, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexLocked(id)
	if i < 0 {
		return model.Target{}, false
	}
	return l.targets[i], true
}

// Snapshot returns a copy of all targets in order.
func (l *List) Snapshot() []model.Target {
	l.mu.Lock()
	defer l.mu.Unlock()
	return model.CloneTargets(l.targets)
}

// Replace swaps the list contents for targets. Every target receives a
// fresh id so the new contents never alias the source they were copied
// from. Entries beyond MaxTargets are rejected with ErrCapacityExceeded
// and the list is left unchanged.
func (l *List) Replace(targets []model.Target) error {
	if len(targets) > MaxTargets {
		return ErrCapacityExceeded
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.targets = make([]model.Target, 0, MaxTargets)
	for _, t := range targets {
		t.ID = l.uniqueIDLocked()
		l.targets = append(l.targets, t)
	}
	return nil
}

// Eligible returns the targets whose URL is not blank, in list order.
func (l *List) Eligible() []model.Target {
	return Eligible(l.Snapshot())
}

// Submission returns the eligible targets or ErrEmptySubmission when
// there are none.
func (l *List) Submission() ([]model.Target, error) {
	eligible := l.Eligible()
	if len(eligible) == 0 {
		return nil, ErrEmptySubmission
	}
	return eligible, nil
}

// Eligible filters targets down to those with a non-blank URL.
// URLs are trimmed in the returned copies.
func Eligible(targets []model.Target) []model.Target {
	out := make([]model.Target, 0, len(targets))
	for _, t := range targets {
		if !t.HasURL() {
			continue
		}
		t.URL = strings.TrimSpace(t.URL)
		out = append(out, t)
	}
	return out
}
