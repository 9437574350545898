package generator

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/nao1215/wcagaudit/internal/request"
)

var (
	// ErrServiceFailure is returned when the generative call fails or returns no text.
	ErrServiceFailure = errors.New("generative service failure")

	// ErrMissingAPIKey is returned when no API key is configured.
	ErrMissingAPIKey = errors.New("missing API key")
)

// Generator produces the raw report text for a request.
type Generator interface {
	Generate(ctx context.Context, req request.Request) ([]byte, error)
}

// Func is a function that implements Generator.
type Func func(ctx context.Context, req request.Request) ([]byte, error)

// Generate calls f.
func (f Func) Generate(ctx context.Context, req request.Request) ([]byte, error) {
	return f(ctx, req)
}

// Static returns a Generator that always responds with raw.
func Static(raw []byte) Func {
	return func(context.Context, request.Request) ([]byte, error) {
		if len(raw) == 0 {
			return nil, fmt.Errorf("%w: empty response", ErrServiceFailure)
		}
		return raw, nil
	}
}

// File returns a Generator that responds with the contents of path.
// The file is read on every call.
func File(path string) Func {
	return func(context.Context, request.Request) ([]byte, error) {
		data, err := os.ReadFile(path) //nolint:gosec // path is provided by the user
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrServiceFailure, err)
		}
		if len(data) == 0 {
			return nil, fmt.Errorf("%w: %s is empty", ErrServiceFailure, path)
		}
		return data, nil
	}
}
