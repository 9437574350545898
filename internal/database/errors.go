package database

import "errors"

// ErrSlotNotFound is returned by Get when a slot has never been written.
var ErrSlotNotFound = errors.New("slot not found")

// ErrInvalidSlotName is returned when a slot name is empty or contains a path separator.
var ErrInvalidSlotName = errors.New("invalid slot name")
