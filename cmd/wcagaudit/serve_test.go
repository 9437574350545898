package main

import (
	"errors"
	"testing"

	"github.com/nao1215/wcagaudit/internal/config"
	"github.com/nao1215/wcagaudit/internal/generator"
)

// TestNewServeCmd tests the serve command creation.
func TestNewServeCmd(t *testing.T) {
	t.Parallel()

	cmd := NewServeCmd()
	if cmd.Use != "serve" {
		t.Errorf("expected use 'serve', got %q", cmd.Use)
	}

	listen := cmd.Flags().Lookup("listen")
	if listen == nil {
		t.Fatal("expected listen flag")
	}
	if listen.DefValue != config.DefaultListenAddress {
		t.Errorf("expected default %q, got %q", config.DefaultListenAddress, listen.DefValue)
	}
	if cmd.Flags().Lookup("response-file") == nil {
		t.Error("expected response-file flag")
	}
}

// TestServeRequiresAPIKey tests that serve fails fast without credentials.
func TestServeRequiresAPIKey(t *testing.T) {
	t.Setenv(config.EnvAPIKey, "")
	env := newTestEnv(t, "")

	_, err := env.run(t, "serve", "--listen", "127.0.0.1:0")
	if !errors.Is(err, generator.ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}
