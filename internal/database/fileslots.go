package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

const (
	// lockRetryInterval is the pause between attempts to take a slot lock.
	lockRetryInterval = 10 * time.Millisecond

	// staleLockAge is the age after which a lock file left by a crashed
	// process is removed.
	staleLockAge = 30 * time.Second
)

// FileSlots stores each slot as <dir>/<name>.json.
type FileSlots struct {
	dir string
}

// OpenFileSlots creates dir if needed and returns a file backed store.
func OpenFileSlots(dir string) (*FileSlots, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create slot directory: %w", err)
	}
	return &FileSlots{dir: dir}, nil
}

// Dir returns the directory holding the slot files.
func (f *FileSlots) Dir() string {
	return f.dir
}

func (f *FileSlots) path(name string) string {
	return filepath.Join(f.dir, name+".json")
}

// Get returns the value stored in slot name.
func (f *FileSlots) Get(_ context.Context, name string) ([]byte, error) {
	if !validSlotName(name) {
		return nil, ErrInvalidSlotName
	}
	data, err := os.ReadFile(f.path(name))
	if os.IsNotExist(err) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %s: %w", name, err)
	}
	return data, nil
}

// Put writes value to a temporary file and renames it over the slot file.
func (f *FileSlots) Put(_ context.Context, name string, value []byte) error {
	if !validSlotName(name) {
		return ErrInvalidSlotName
	}
	if err := writeFileAtomic(f.path(name), value); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", name, err)
	}
	return nil
}

// Update takes <name>.lock, applies fn to the current value and renames the
// result over the slot file before releasing the lock.
func (f *FileSlots) Update(ctx context.Context, name string, fn UpdateFunc) error {
	if !validSlotName(name) {
		return ErrInvalidSlotName
	}

	unlock, err := f.lock(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to lock slot %s: %w", name, err)
	}
	defer unlock()

	current, err := os.ReadFile(f.path(name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read slot %s: %w", name, err)
	}

	next, err := fn(current)
	if err != nil {
		return err
	}
	if next == nil {
		return nil
	}
	if err := writeFileAtomic(f.path(name), next); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", name, err)
	}
	return nil
}

// lock creates the lock file of slot name exclusively, waiting while another
// writer holds it.
func (f *FileSlots) lock(ctx context.Context, name string) (func(), error) {
	path := filepath.Join(f.dir, name+".lock")
	for {
		lf, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
		if err == nil {
			_ = lf.Close()
			return func() { _ = os.Remove(path) }, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, err
		}

		if info, statErr := os.Stat(path); statErr == nil && time.Since(info.ModTime()) > staleLockAge {
			_ = os.Remove(path)
			continue
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetryInterval):
		}
	}
}

// Delete removes the slot file.
func (f *FileSlots) Delete(_ context.Context, name string) error {
	if !validSlotName(name) {
		return ErrInvalidSlotName
	}
	if err := os.Remove(f.path(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete slot %s: %w", name, err)
	}
	return nil
}

// Close is a no-op for the file backend.
func (f *FileSlots) Close() error {
	return nil
}

// writeFileAtomic writes data next to path and renames it into place.
// Slot files may hold credentials, so they are readable by the owner only.
func writeFileAtomic(path string, data []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, path); err == nil {
		return nil
	}
	defer os.Remove(tmp)

	// Windows refuses to rename over an existing file.
	if runtime.GOOS == "windows" {
		_ = os.Remove(path)
	}
	return os.Rename(tmp, path)
}
