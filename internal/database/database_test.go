package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	dup := fmt.Errorf("insert typology: %w", &pq.Error{Code: "23505"})
	fk := &pq.Error{Code: "23503"}

	assert.True(t, IsDuplicateKey(dup))
	assert.False(t, IsDuplicateKey(fk))
	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsForeignKeyViolation(errors.New("23503")))
}

func TestSchemaEmbedded(t *testing.T) {
	assert.Contains(t, schema, "CREATE TABLE IF NOT EXISTS locations")
	assert.Contains(t, schema, "UNIQUE (project_id, floor, position)")
}

const unreachable = "postgres://obra@127.0.0.1:1/obra?sslmode=disable&connect_timeout=1"

func TestOpenStopsAtPing(t *testing.T) {
	db, err := Open(context.Background(), unreachable)
	assert.Nil(t, db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping postgres")
	assert.NotContains(t, err.Error(), "apply schema")
}

func TestMigrateWrapsExecError(t *testing.T) {
	db, err := sql.Open("postgres", unreachable)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	err = migrate(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apply schema")
}
