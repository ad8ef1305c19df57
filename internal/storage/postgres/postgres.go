// Package postgres implements storage.Store on a PostgreSQL table.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/XSAM/otelsql"
	"github.com/cursedbuild/storefront/internal/config"
	"github.com/cursedbuild/storefront/internal/storage"
	"github.com/cursedbuild/storefront/internal/utils"

	_ "github.com/lib/pq"
)

const schema = `
		CREATE TABLE IF NOT EXISTS storage_entries(
		key VARCHAR(255) PRIMARY KEY,
		value BYTEA NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

type Postgres struct {
	DB *sql.DB
}

// Open connects through an otelsql-instrumented driver, pings, and ensures the schema.
func Open(ctx context.Context, cfg config.Database) (*Postgres, error) {

	db, err := otelsql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if err := db.PingContext(dbCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	p := New(db)
	if err := p.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return p, nil
}

func New(db *sql.DB) *Postgres {
	return &Postgres{DB: db}
}

var _ storage.Store = (*Postgres)(nil)

func (p *Postgres) EnsureSchema(ctx context.Context) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if _, err := p.DB.ExecContext(dbCtx, schema); err != nil {
		return fmt.Errorf("failed to create storage_entries: %w", err)
	}

	return nil
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, bool, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var value []byte

	query := `SELECT value FROM storage_entries WHERE key = $1`

	err := p.DB.QueryRowContext(dbCtx, query, key).Scan(&value)
	if err != nil {

		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("failed to get key %s from postgres: %w", key, err)
	}

	return value, true, nil
}

func (p *Postgres) Set(ctx context.Context, key string, value []byte) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO storage_entries(key, value, updated_at)
		VALUES($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`

	if _, err := p.DB.ExecContext(dbCtx, query, key, value); err != nil {
		return fmt.Errorf("failed to set key %s in postgres: %w", key, err)
	}

	return nil
}

func (p *Postgres) Delete(ctx context.Context, key string) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if _, err := p.DB.ExecContext(dbCtx, `DELETE FROM storage_entries WHERE key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete key %s from postgres: %w", key, err)
	}

	return nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.DB.PingContext(ctx)
}

func (p *Postgres) Close() error {
	return p.DB.Close()
}
