package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the name of the config file looked up in the working
// and home directories.
const DefaultConfigFile = ".wcagaudit"

// XDGConfigFile is the configuration file name inside the XDG config directory.
const XDGConfigFile = "config.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// LoadConfigFile reads defaults and per-host credentials from the YAML file
// at path. A missing file yields ErrConfigNotFound so callers can decide
// whether that matters.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the user or FindConfigFile
	if os.IsNotExist(err) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, err
	}

	f := &File{}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if f.Sites == nil {
		f.Sites = map[string]SiteConfig{}
	}
	return f, nil
}

// FindConfigFile returns configPath when it is set and exists. Without an
// explicit path it tries ./.wcagaudit, ~/.wcagaudit and
// $XDG_CONFIG_HOME/wcagaudit/config.yaml. It returns "" when nothing exists.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		return firstExisting(configPath)
	}
	return firstExisting(searchPaths()...)
}

// searchPaths lists the implicit config locations, most specific first.
func searchPaths() []string {
	var paths []string
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, DefaultConfigFile))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, DefaultConfigFile))
	}
	return append(paths, filepath.Join(XDGConfigDir(), XDGConfigFile))
}

func firstExisting(paths ...string) string {
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}
