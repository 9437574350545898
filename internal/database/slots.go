package database

import (
	"context"
	"strings"
)

// UpdateFunc computes the next value of a slot from its current value.
type UpdateFunc func(current []byte) ([]byte, error)

// Slots is a minimal key/value store holding one opaque value per name.
type Slots interface {
	// Get returns the value stored in slot name.
	// It returns ErrSlotNotFound when the slot has never been written.
	Get(ctx context.Context, name string) ([]byte, error)

	// Put atomically replaces the value stored in slot name.
	Put(ctx context.Context, name string, value []byte) error

	// Update reads slot name, passes its value to fn and stores the result,
	// holding a lock that keeps other writers of the slot out in between.
	// fn receives nil when the slot has never been written. A nil result
	// leaves the slot unchanged.
	Update(ctx context.Context, name string, fn UpdateFunc) error

	// Delete removes slot name. Deleting a missing slot is not an error.
	Delete(ctx context.Context, name string) error

	// Close releases the resources held by the store.
	Close() error
}

// validSlotName reports whether name can be used as a slot name.
func validSlotName(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && name != "." && name != ".."
}
