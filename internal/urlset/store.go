package urlset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/nao1215/wcagaudit/internal/database"
	"github.com/nao1215/wcagaudit/internal/model"
	"github.com/nao1215/wcagaudit/internal/targets"
)

// SlotName is the name of the single slot holding the JSON array of saved sets.
const SlotName = "wcag_saved_sets"

// Store is the persisted collection of saved URL sets.
// All methods are safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	slots  database.Slots
	sets   []model.SavedSet
	logger *slog.Logger
	now    func() time.Time
	newID  targets.IDFunc
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for recovered load failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock sets the function returning the creation time of new sets.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDFunc sets the generator for set ids and for target ids handed out by LoadSet.
func WithIDFunc(fn targets.IDFunc) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// Open creates a Store on slots and reads the persisted collection once.
func Open(ctx context.Context, slots database.Slots, opts ...Option) *Store {
	s := &Store{
		slots:  slots,
		logger: slog.Default(),
		now:    time.Now,
		newID:  targets.NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.sets = s.Load(ctx)
	return s
}

// Load reads the persisted collection from the slot.
// A missing or unreadable slot yields an empty collection; Load never fails.
// The in-memory collection is not modified.
func (s *Store) Load(ctx context.Context) []model.SavedSet {
	data, err := s.slots.Get(ctx, SlotName)
	if err != nil {
		if !errors.Is(err, database.ErrSlotNotFound) {
			s.logger.Warn("failed to read saved sets, starting empty", "error", err)
		}
		return []model.SavedSet{}
	}
	return s.decode(data)
}

// Reload replaces the in-memory collection with a fresh read of the slot,
// picking up sets written by other processes sharing the backend.
func (s *Store) Reload(ctx context.Context) {
	sets := s.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets = sets
}

// Save stores targets under name as a new set at the front of the collection.
// The set is prepended to the persisted collection, not to the in-memory
// copy, so sets saved meanwhile by another Store on the same slots survive.
// The whole collection is persisted before Save returns.
func (s *Store) Save(ctx context.Context, name string, list []model.Target) (model.SavedSet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.SavedSet{}, ErrInvalidName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	set := model.SavedSet{
		ID:        s.newID(),
		Name:      name,
		Targets:   model.CloneTargets(list),
		CreatedAt: s.now().UTC(),
	}
	if set.Targets == nil {
		set.Targets = []model.Target{}
	}

	var next []model.SavedSet
	err := s.update(ctx, func(current []model.SavedSet) ([]model.SavedSet, bool) {
		next = make([]model.SavedSet, 0, len(current)+1)
		next = append(next, set)
		next = append(next, current...)
		return next, true
	})
	if err != nil {
		return model.SavedSet{}, err
	}
	s.sets = next
	return cloneSet(set), nil
}

// Delete removes the set with id from the persisted collection.
// Deleting an unknown id is a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var next []model.SavedSet
	err := s.update(ctx, func(current []model.SavedSet) ([]model.SavedSet, bool) {
		next = current
		idx := indexOf(current, id)
		if idx < 0 {
			return nil, false
		}
		next = make([]model.SavedSet, 0, len(current)-1)
		next = append(next, current[:idx]...)
		next = append(next, current[idx+1:]...)
		return next, true
	})
	if err != nil {
		return err
	}
	s.sets = next
	return nil
}

// LoadSet returns deep copies of the targets of set id with fresh ids.
// The store itself is not modified.
func (s *Store) LoadSet(id string) ([]model.Target, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrSetNotFound, id)
	}

	out := model.CloneTargets(s.sets[idx].Targets)
	for i := range out {
		out[i].ID = s.newID()
	}
	if out == nil {
		out = []model.Target{}
	}
	return out, nil
}

// List returns a copy of the in-memory collection, newest first.
func (s *Store) List() []model.SavedSet {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.SavedSet, len(s.sets))
	for i, set := range s.sets {
		out[i] = cloneSet(set)
	}
	return out
}

// Find resolves a set by exact id, then by case-insensitive name.
// When several sets share a name the newest one wins.
func (s *Store) Find(idOrName string) (model.SavedSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexLocked(idOrName); idx >= 0 {
		return cloneSet(s.sets[idx]), nil
	}

	name := strings.TrimSpace(idOrName)
	for _, set := range s.sets {
		if strings.EqualFold(set.Name, name) {
			return cloneSet(set), nil
		}
	}
	return model.SavedSet{}, fmt.Errorf("%w: %s", ErrSetNotFound, idOrName)
}

func (s *Store) indexLocked(id string) int {
	return indexOf(s.sets, id)
}

func indexOf(sets []model.SavedSet, id string) int {
	for i, set := range sets {
		if set.ID == id {
			return i
		}
	}
	return -1
}

// decode parses the slot value. Corrupt data is logged and read as empty.
func (s *Store) decode(data []byte) []model.SavedSet {
	if data == nil {
		return []model.SavedSet{}
	}
	var sets []model.SavedSet
	if err := json.Unmarshal(data, &sets); err != nil {
		s.logger.Warn("saved sets are corrupt, starting empty", "error", err)
		return []model.SavedSet{}
	}
	if sets == nil {
		sets = []model.SavedSet{}
	}
	return sets
}

// update applies fn to the persisted collection under the slot lock and
// writes the result back when fn reports a change.
func (s *Store) update(ctx context.Context, fn func(current []model.SavedSet) ([]model.SavedSet, bool)) error {
	err := s.slots.Update(ctx, SlotName, func(data []byte) ([]byte, error) {
		next, changed := fn(s.decode(data))
		if !changed {
			return nil, nil
		}
		out, err := json.Marshal(next)
		if err != nil {
			return nil, fmt.Errorf("failed to encode saved sets: %w", err)
		}
		return out, nil
	})
	if err != nil {
		return fmt.Errorf("failed to persist saved sets: %w", err)
	}
	return nil
}

func cloneSet(set model.SavedSet) model.SavedSet {
	set.Targets = model.CloneTargets(set.Targets)
	return set
}
