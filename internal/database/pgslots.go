package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PGSlots stores slots in a PostgreSQL table. It lets several API
// instances share one saved-set store.
type PGSlots struct {
	pool *pgxpool.Pool
	db   *sql.DB
}

// OpenPostgres connects to the database at url and applies pending migrations.
func OpenPostgres(ctx context.Context, url string) (*PGSlots, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("invalid database url: %w", err)
	}
	cfg.MaxConns = 4
	cfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)
	if err := migrate(ctx, db, goose.DialectPostgres, "postgres"); err != nil {
		_ = db.Close()
		pool.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &PGSlots{pool: pool, db: db}, nil
}

// Close closes the connection pool.
func (p *PGSlots) Close() error {
	err := p.db.Close()
	p.pool.Close()
	return err
}

// Get returns the value stored in slot name.
func (p *PGSlots) Get(ctx context.Context, name string) ([]byte, error) {
	if !validSlotName(name) {
		return nil, ErrInvalidSlotName
	}

	var value []byte
	err := p.pool.QueryRow(ctx, `SELECT value FROM slots WHERE name = $1`, name).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %s: %w", name, err)
	}
	return value, nil
}

const upsertSlotPostgres = `
	INSERT INTO slots (name, value) VALUES ($1, $2)
	ON CONFLICT (name) DO UPDATE SET
		value = EXCLUDED.value,
		updated_at = now()
	`

// Put replaces the value stored in slot name with a single UPSERT.
func (p *PGSlots) Put(ctx context.Context, name string, value []byte) error {
	if !validSlotName(name) {
		return ErrInvalidSlotName
	}
	if _, err := p.pool.Exec(ctx, upsertSlotPostgres, name, value); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", name, err)
	}
	return nil
}

// Update runs fn in a transaction holding an advisory lock on name, so
// instances sharing the database apply their changes one after another.
// The lock also covers slots that do not exist yet, which FOR UPDATE cannot.
func (p *PGSlots) Update(ctx context.Context, name string, fn UpdateFunc) error {
	if !validSlotName(name) {
		return ErrInvalidSlotName
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(context.WithoutCancel(ctx)) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, name); err != nil {
		return fmt.Errorf("failed to lock slot %s: %w", name, err)
	}

	var current []byte
	err = tx.QueryRow(ctx, `SELECT value FROM slots WHERE name = $1`, name).Scan(&current)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed to read slot %s: %w", name, err)
	}

	next, err := fn(current)
	if err != nil {
		return err
	}
	if next != nil {
		if _, err := tx.Exec(ctx, upsertSlotPostgres, name, next); err != nil {
			return fmt.Errorf("failed to write slot %s: %w", name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit slot %s: %w", name, err)
	}
	return nil
}

// Delete removes slot name.
func (p *PGSlots) Delete(ctx context.Context, name string) error {
	if !validSlotName(name) {
		return ErrInvalidSlotName
	}
	if _, err := p.pool.Exec(ctx, `DELETE FROM slots WHERE name = $1`, name); err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", name, err)
	}
	return nil
}
