package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/wcagaudit/internal/config"
	"github.com/nao1215/wcagaudit/internal/database"
	"github.com/nao1215/wcagaudit/internal/generator"
	wclog "github.com/nao1215/wcagaudit/internal/log"
	"github.com/nao1215/wcagaudit/internal/model"
	"github.com/nao1215/wcagaudit/internal/request"
	"github.com/nao1215/wcagaudit/internal/targets"
	"github.com/nao1215/wcagaudit/internal/urlset"
)

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a sanitizing logger on stderr.
func setupLogger(verbose bool) *slog.Logger {
	return wclog.NewSecureLogger(os.Stderr, verbose)
}

// stringFlag returns the value of a local or inherited flag, or "" when the
// command does not define it.
func stringFlag(cmd *cobra.Command, name string) string {
	if cmd.Flags().Lookup(name) == nil {
		return ""
	}
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return v
}

// loadConfig builds a Config from the config file, the global flags and the
// environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)
	cfg.ConfigFilePath = stringFlag(cmd, "config")

	// If the user explicitly specified a config file path, error if not found.
	// Otherwise silently continue without one.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.ApplyFile(file)
	case explicitConfigPath:
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	// Flags win over the file.
	if store := stringFlag(cmd, "store"); store != "" {
		cfg.Store = config.StoreBackend(strings.ToLower(store))
	}
	if dir := stringFlag(cmd, "data-dir"); dir != "" {
		cfg.DataDir = dir
	}

	cfg.LoadEnv()
	return cfg, nil
}

// openStore opens the saved-set store on the configured backend.
// The returned slots must be closed by the caller.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*urlset.Store, database.Slots, error) {
	var (
		slots database.Slots
		err   error
	)
	switch cfg.Store {
	case config.StoreFile:
		slots, err = database.OpenFileSlots(cfg.DataDir)
	case config.StorePostgres:
		slots, err = database.OpenPostgres(ctx, cfg.DatabaseURL)
	default:
		slots, err = database.Open(ctx, cfg.DataDir, database.DefaultOptions())
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open saved-set store: %w", err)
	}
	logger.Debug("saved-set store opened", "backend", cfg.Store, "dir", cfg.DataDir)

	return urlset.Open(ctx, slots, urlset.WithLogger(logger)), slots, nil
}

// newGenerator returns the offline replay generator when a response file
// is configured and the Gemini client otherwise.
func newGenerator(ctx context.Context, cfg *config.Config, logger *slog.Logger) (generator.Generator, error) {
	if cfg.ResponseFile != "" {
		logger.Debug("replaying saved response", "file", cfg.ResponseFile)
		return generator.File(cfg.ResponseFile), nil
	}
	gen, err := generator.NewGemini(ctx, cfg.APIKey,
		generator.WithLogger(logger),
		generator.WithRequestsPerMinute(cfg.RequestsPerMinute),
	)
	if errors.Is(err, generator.ErrMissingAPIKey) {
		return nil, fmt.Errorf("%w: set %s or use --response-file", err, config.EnvAPIKey)
	}
	return gen, err
}

// requestOptions turns the configured hints into request options.
func requestOptions(cfg *config.Config) []request.Option {
	return []request.Option{
		request.WithClient(cfg.Client),
		request.WithVersion(cfg.Version),
		request.WithModel(cfg.Model),
	}
}

// authEntry is one --auth url=user:pass value.
type authEntry struct {
	url      string
	username string
	password string
}

// parseAuth parses a url=user:pass value. The URL is normalized.
// The URL may carry a query string with '=' in it, so the credentials start
// after the first '=' whose following user name holds no '='. User names
// therefore cannot contain '=' or ':'; passwords can contain both.
func parseAuth(value string) (authEntry, error) {
	rawURL, creds, ok := splitAuth(value)
	if !ok || strings.TrimSpace(rawURL) == "" {
		return authEntry{}, fmt.Errorf("invalid --auth value %q: expected url=user:pass", value)
	}
	username, password, _ := strings.Cut(creds, ":")
	normalized, err := targets.NormalizeURL(rawURL)
	if err != nil {
		return authEntry{}, fmt.Errorf("invalid --auth url %q: %w", rawURL, err)
	}
	return authEntry{url: normalized, username: username, password: password}, nil
}

func splitAuth(value string) (rawURL, creds string, ok bool) {
	for i, r := range value {
		if r != '=' {
			continue
		}
		user, _, _ := strings.Cut(value[i+1:], ":")
		if !strings.Contains(user, "=") {
			return value[:i], value[i+1:], true
		}
	}
	return "", "", false
}

// buildTargets collects the target list from saved-set targets, URL
// arguments and --auth values. Configured site credentials fill targets
// that have none.
func buildTargets(base []model.Target, urls, auth []string, file *config.File) (*targets.List, error) {
	list := targets.NewList()
	if err := list.Replace(base); err != nil {
		return nil, err
	}

	for _, raw := range urls {
		normalized, err := targets.NormalizeURL(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid URL %q: %w", raw, err)
		}
		if _, err := list.Add(model.Target{URL: normalized}); err != nil {
			return nil, err
		}
	}

	for _, value := range auth {
		entry, err := parseAuth(value)
		if err != nil {
			return nil, err
		}
		matched := false
		for _, t := range list.Snapshot() {
			if !sameURL(t.URL, entry.url) {
				continue
			}
			list.Update(t.ID, targets.FieldUsername, entry.username)
			list.Update(t.ID, targets.FieldPassword, entry.password)
			matched = true
		}
		if !matched {
			return nil, fmt.Errorf("--auth %s does not match any URL", entry.url)
		}
	}

	if file != nil {
		if err := list.Replace(file.ApplyCredentials(list.Snapshot())); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func sameURL(a, b string) bool {
	na, err := targets.NormalizeURL(a)
	if err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSuffix(na, "/"), strings.TrimSuffix(b, "/"))
}
