// Package db provides PostgreSQL storage for screened candidates.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL is empty")
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// schemaDDL creates the candidates table and its lookup index.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS candidates (
	id               UUID PRIMARY KEY,
	job_id           UUID,
	filename         TEXT,
	content_hash     TEXT,
	name             TEXT NOT NULL,
	email            TEXT,
	phone            TEXT,
	github           TEXT,
	linkedin         TEXT,
	extracted_skills TEXT[] NOT NULL DEFAULT '{}',
	match_score      DOUBLE PRECISION,
	decision         TEXT,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_candidates_job_id ON candidates (job_id, match_score DESC);
`

// EnsureSchema creates the tables this package needs if they do not exist.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
