package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nao1215/wcagaudit/internal/request"
)

func TestFunc(t *testing.T) {
	t.Parallel()

	var got request.Request
	g := Func(func(_ context.Context, req request.Request) ([]byte, error) {
		got = req
		return []byte(`{}`), nil
	})

	raw, err := g.Generate(context.Background(), request.Request{Model: "m"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if string(raw) != `{}` {
		t.Errorf("Generate() = %q", raw)
	}
	if got.Model != "m" {
		t.Errorf("request not passed through: %+v", got)
	}
}

func TestStatic(t *testing.T) {
	t.Parallel()

	t.Run("returns raw", func(t *testing.T) {
		t.Parallel()

		raw, err := Static([]byte("x")).Generate(context.Background(), request.Request{})
		if err != nil || string(raw) != "x" {
			t.Errorf("Generate() = %q, %v", raw, err)
		}
	})

	t.Run("empty is a service failure", func(t *testing.T) {
		t.Parallel()

		_, err := Static(nil).Generate(context.Background(), request.Request{})
		if !errors.Is(err, ErrServiceFailure) {
			t.Errorf("Generate() error = %v, want ErrServiceFailure", err)
		}
	})
}

func TestFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	full := filepath.Join(dir, "response.json")
	empty := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(full, []byte(`{"meta":{}}`), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(empty, nil, 0600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{name: "reads file", path: full, want: `{"meta":{}}`},
		{name: "empty file", path: empty, wantErr: true},
		{name: "missing file", path: filepath.Join(dir, "missing.json"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			raw, err := File(tt.path).Generate(context.Background(), request.Request{})
			if tt.wantErr {
				if !errors.Is(err, ErrServiceFailure) {
					t.Errorf("Generate() error = %v, want ErrServiceFailure", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if string(raw) != tt.want {
				t.Errorf("Generate() = %q, want %q", raw, tt.want)
			}
		})
	}
}

func TestNewGeminiRequiresAPIKey(t *testing.T) {
	t.Parallel()

	_, err := NewGemini(context.Background(), "  ")
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("NewGemini() error = %v, want ErrMissingAPIKey", err)
	}
}

func TestNewLimiter(t *testing.T) {
	t.Parallel()

	if l := newLimiter(0); !l.Allow() || !l.Allow() {
		t.Error("disabled limiter should always allow")
	}

	l := newLimiter(1)
	if !l.Allow() {
		t.Error("first call should be allowed")
	}
	if l.Allow() {
		t.Error("second call within a minute should be limited")
	}
}

func TestGeminiWaitHonoursCancelledContext(t *testing.T) {
	t.Parallel()

	g := &Gemini{limiter: newLimiter(1)}
	g.limiter.Allow()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Generate(ctx, request.Request{})
	if !errors.Is(err, ErrServiceFailure) {
		t.Errorf("Generate() error = %v, want ErrServiceFailure", err)
	}
}
