package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSlots(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		fs, err := OpenFileSlots(filepath.Join(t.TempDir(), "data"))
		if err != nil {
			t.Fatalf("OpenFileSlots() error = %v", err)
		}

		if _, err := fs.Get(ctx, "sets"); !errors.Is(err, ErrSlotNotFound) {
			t.Fatalf("Get() on empty store error = %v, want ErrSlotNotFound", err)
		}
		if err := fs.Put(ctx, "sets", []byte(`["a"]`)); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		if err := fs.Put(ctx, "sets", []byte(`["b"]`)); err != nil {
			t.Fatalf("second Put() error = %v", err)
		}

		got, err := fs.Get(ctx, "sets")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if string(got) != `["b"]` {
			t.Errorf("Get() = %q, want %q", got, `["b"]`)
		}

		if tmp, _ := filepath.Glob(filepath.Join(fs.Dir(), "*.tmp")); len(tmp) != 0 {
			t.Errorf("temporary files left behind: %v", tmp)
		}
	})

	t.Run("slot file is private", func(t *testing.T) {
		t.Parallel()

		fs, err := OpenFileSlots(t.TempDir())
		if err != nil {
			t.Fatalf("OpenFileSlots() error = %v", err)
		}
		if err := fs.Put(context.Background(), "sets", []byte(`[]`)); err != nil {
			t.Fatalf("Put() error = %v", err)
		}

		info, err := os.Stat(filepath.Join(fs.Dir(), "sets.json"))
		if err != nil {
			t.Fatalf("Stat() error = %v", err)
		}
		if perm := info.Mode().Perm(); perm&0o077 != 0 {
			t.Errorf("slot file mode = %o, want owner only", perm)
		}
	})

	t.Run("rejects path traversal", func(t *testing.T) {
		t.Parallel()

		fs, err := OpenFileSlots(t.TempDir())
		if err != nil {
			t.Fatalf("OpenFileSlots() error = %v", err)
		}
		for _, name := range []string{"", "..", "a/b", `a\b`} {
			if err := fs.Put(context.Background(), name, nil); !errors.Is(err, ErrInvalidSlotName) {
				t.Errorf("Put(%q) error = %v, want ErrInvalidSlotName", name, err)
			}
		}
	})

	t.Run("delete missing slot", func(t *testing.T) {
		t.Parallel()

		fs, err := OpenFileSlots(t.TempDir())
		if err != nil {
			t.Fatalf("OpenFileSlots() error = %v", err)
		}
		if err := fs.Delete(context.Background(), "sets"); err != nil {
			t.Errorf("Delete() error = %v", err)
		}
	})
}
