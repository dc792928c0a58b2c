// Package database opens the PostgreSQL pool and bootstraps the schema.
package database

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

//go:embed schema.sql
var schema string

// RecountAssignedSQL resets assigned_count on every typology of project $1
// from the locations that currently reference it.
const RecountAssignedSQL = `
UPDATE typologies t
SET assigned_count = (
        SELECT COUNT(*) FROM locations l
        WHERE l.project_id = t.project_id AND l.assigned_typology_id = t.id),
    updated_at = NOW()
WHERE t.project_id = $1`

// Open connects to PostgreSQL, verifies the connection and applies the schema.
func Open(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// migrate applies the idempotent schema. Open is the only caller.
func migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// IsDuplicateKey reports whether err is a unique constraint violation (23505).
func IsDuplicateKey(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// IsForeignKeyViolation reports whether err is a foreign key violation (23503).
func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}
