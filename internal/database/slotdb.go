package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver
)

// DBFileName is the SQLite database file name inside the data directory.
const DBFileName = "wcagaudit.db"

//go:embed migrations
var migrationsFS embed.FS

// SlotDB stores slots in a SQLite table.
type SlotDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures SlotDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a SlotDB in dbDir and applies pending migrations.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(ctx context.Context, dbDir string, opts Options) (*SlotDB, error) {
	dbPath := filepath.Join(dbDir, DBFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a new file, mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}
	// Another process may hold the write lock (serve and sets save).
	dsn += "&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if opts.EnableWAL {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := migrate(ctx, db, goose.DialectSQLite3, "sqlite"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &SlotDB{db: db, dbPath: dbPath}, nil
}

// migrate applies the embedded goose migrations of dialect from
// migrations/<dir>.
func migrate(ctx context.Context, db *sql.DB, dialect goose.Dialect, dir string) error {
	fsys, err := fs.Sub(migrationsFS, "migrations/"+dir)
	if err != nil {
		return err
	}

	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return err
	}

	_, err = provider.Up(ctx)
	return err
}

// Path returns the database file path.
func (s *SlotDB) Path() string {
	return s.dbPath
}

// Close closes the database connection.
func (s *SlotDB) Close() error {
	return s.db.Close()
}

// Get returns the value stored in slot name.
func (s *SlotDB) Get(ctx context.Context, name string) ([]byte, error) {
	if !validSlotName(name) {
		return nil, ErrInvalidSlotName
	}

	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE name = ?`, name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %s: %w", name, err)
	}
	return value, nil
}

const upsertSlotSQLite = `
	INSERT INTO slots (name, value) VALUES (?, ?)
	ON CONFLICT(name) DO UPDATE SET
		value = excluded.value,
		updated_at = CURRENT_TIMESTAMP
	`

// Put replaces the value stored in slot name with a single UPSERT.
func (s *SlotDB) Put(ctx context.Context, name string, value []byte) error {
	if !validSlotName(name) {
		return ErrInvalidSlotName
	}
	if _, err := s.db.ExecContext(ctx, upsertSlotSQLite, name, value); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", name, err)
	}
	return nil
}

// Update runs fn inside a BEGIN IMMEDIATE transaction so that writers in
// other processes wait until the new value is committed.
func (s *SlotDB) Update(ctx context.Context, name string, fn UpdateFunc) (err error) {
	if !validSlotName(name) {
		return ErrInvalidSlotName
	}

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "BEGIN IMMEDIATE"); err != nil {
		return fmt.Errorf("failed to lock slot %s: %w", name, err)
	}
	defer func() {
		if err != nil {
			_, _ = conn.ExecContext(context.WithoutCancel(ctx), "ROLLBACK")
		}
	}()

	var current []byte
	err = conn.QueryRowContext(ctx, `SELECT value FROM slots WHERE name = ?`, name).Scan(&current)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to read slot %s: %w", name, err)
	}

	next, err := fn(current)
	if err != nil {
		return err
	}
	if next != nil {
		if _, err = conn.ExecContext(ctx, upsertSlotSQLite, name, next); err != nil {
			return fmt.Errorf("failed to write slot %s: %w", name, err)
		}
	}

	if _, err = conn.ExecContext(ctx, "COMMIT"); err != nil {
		return fmt.Errorf("failed to commit slot %s: %w", name, err)
	}
	return nil
}

// Delete removes slot name.
func (s *SlotDB) Delete(ctx context.Context, name string) error {
	if !validSlotName(name) {
		return ErrInvalidSlotName
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM slots WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", name, err)
	}
	return nil
}
