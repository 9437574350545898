package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// testEnv isolates a CLI run from the user's configuration and data.
type testEnv struct {
	dir        string
	configPath string
	dataDir    string
}

func newTestEnv(t *testing.T, configYAML string) *testEnv {
	t.Helper()

	dir := t.TempDir()
	env := &testEnv{
		dir:        dir,
		configPath: filepath.Join(dir, ".wcagaudit"),
		dataDir:    filepath.Join(dir, "data"),
	}
	if configYAML == "" {
		configYAML = "defaults:\n  store: file\n"
	}
	if err := os.WriteFile(env.configPath, []byte(configYAML), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return env
}

// run executes the root command with the isolation flags prepended.
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	full := append([]string{"--config", e.configPath, "--data-dir", e.dataDir}, args...)

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(full)
	err := cmd.Execute()
	return out.String(), err
}

func testdataPath(t *testing.T, name string) string {
	t.Helper()
	path, err := filepath.Abs(filepath.Join("testdata", name))
	if err != nil {
		t.Fatal(err)
	}
	return path
}
