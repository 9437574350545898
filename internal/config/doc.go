// Package config provides configuration structures and utilities for wcagaudit.
// It defines the report generation options, the saved-set storage settings
// and the optional .wcagaudit YAML file with defaults and per-site
// credentials.
package config
