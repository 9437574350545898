package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "wcagaudit"

	// DefaultModel is the Gemini model used for report generation.
	DefaultModel = "gemini-2.5-flash"

	// DefaultRequestsPerMinute keeps the process well within the free Gemini quota.
	DefaultRequestsPerMinute = 10

	// DefaultListenAddress is the address of the HTTP API.
	DefaultListenAddress = ":8080"

	// EnvAPIKey is the environment variable holding the Gemini API key.
	EnvAPIKey = "GEMINI_API_KEY"

	// EnvDatabaseURL is the environment variable holding the PostgreSQL URL.
	EnvDatabaseURL = "WCAGAUDIT_DATABASE_URL"
)

// StoreBackend selects where saved URL sets are kept.
type StoreBackend string

const (
	// StoreSQLite keeps saved sets in a SQLite database.
	StoreSQLite StoreBackend = "sqlite"

	// StoreFile keeps saved sets in a JSON file.
	StoreFile StoreBackend = "file"

	// StorePostgres keeps saved sets in a shared PostgreSQL database.
	StorePostgres StoreBackend = "postgres"
)

// Valid reports whether b names a known backend.
func (b StoreBackend) Valid() bool {
	return b == StoreSQLite || b == StoreFile || b == StorePostgres
}

// Config holds all configuration options for wcagaudit.
// It is populated from CLI flags, the config file and the environment, and
// passed through the application rather than kept in global state.
type Config struct {
	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, FindConfigFile searches the usual locations.
	ConfigFilePath string

	// File is the loaded configuration file, or nil when none was found.
	File *File

	// Inspector is the name put in meta.inspector.
	Inspector string

	// Client is the client organisation hint for meta.client.
	Client string

	// Version is the report version hint for meta.version.
	Version string

	// Model is the Gemini model name.
	Model string

	// APIKey authenticates against the Gemini API.
	// It is read from the environment, never from flags.
	APIKey string

	// RequestsPerMinute is the client-side quota. 0 disables it.
	RequestsPerMinute int

	// Store selects the saved-set backend.
	Store StoreBackend

	// DataDir is the directory holding the saved-set store.
	// Defaults to the XDG data directory (~/.local/share/wcagaudit on Linux).
	DataDir string

	// DatabaseURL is the PostgreSQL connection URL used by StorePostgres.
	DatabaseURL string

	// JSONReport enables JSON report output instead of human-readable format.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of human-readable format.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// ResponseFile replays a saved service response instead of calling Gemini.
	ResponseFile string

	// ListenAddress is the address the HTTP API listens on.
	ListenAddress string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Model:             DefaultModel,
		RequestsPerMinute: DefaultRequestsPerMinute,
		Store:             StoreSQLite,
		DataDir:           XDGDataDir(),
		ListenAddress:     DefaultListenAddress,
	}
}

// XDGDataDir returns the XDG data directory for wcagaudit.
// On Linux: ~/.local/share/wcagaudit
// On macOS: ~/Library/Application Support/wcagaudit
// On Windows: %LOCALAPPDATA%\wcagaudit
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for wcagaudit.
// On Linux: ~/.config/wcagaudit
// On macOS: ~/Library/Application Support/wcagaudit
// On Windows: %APPDATA%\wcagaudit
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// ApplyFile copies the file's defaults into fields that are still unset.
// Values given on the command line always win.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	c.File = f

	d := f.Defaults
	if c.Inspector == "" {
		c.Inspector = d.Inspector
	}
	if c.Client == "" {
		c.Client = d.Client
	}
	if d.Model != "" && (c.Model == "" || c.Model == DefaultModel) {
		c.Model = d.Model
	}
	if d.Store != "" && c.Store == StoreSQLite {
		c.Store = d.Store
	}
	if d.DataDir != "" && (c.DataDir == "" || c.DataDir == XDGDataDir()) {
		c.DataDir = d.DataDir
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = d.DatabaseURL
	}
	if d.RequestsPerMinute != nil && c.RequestsPerMinute == DefaultRequestsPerMinute {
		c.RequestsPerMinute = *d.RequestsPerMinute
	}
}

// LoadEnv reads the API key and database URL from the environment when
// they are not set yet.
func (c *Config) LoadEnv() {
	if c.APIKey == "" {
		c.APIKey = strings.TrimSpace(os.Getenv(EnvAPIKey))
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = strings.TrimSpace(os.Getenv(EnvDatabaseURL))
	}
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.RequestsPerMinute < 0 {
		return ErrInvalidRequestsPerMinute
	}

	if !c.Store.Valid() {
		return ErrInvalidStoreBackend
	}

	if c.Store == StorePostgres && c.DatabaseURL == "" {
		return ErrMissingDatabaseURL
	}

	if strings.TrimSpace(c.Model) == "" {
		return ErrEmptyModel
	}

	return nil
}
