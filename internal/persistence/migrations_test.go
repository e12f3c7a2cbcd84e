package persistence

import (
	"context"
	"database/sql"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRunMigrations_NilPool(t *testing.T) {
	called := false
	orig := gooseUp
	t.Cleanup(func() { gooseUp = orig })
	gooseUp = func(ctx context.Context, db *sql.DB, dir string) error {
		called = true
		return nil
	}

	require.NoError(t, RunMigrations(context.Background(), nil, zap.NewNop()))
	assert.False(t, called)
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := fs.ReadDir(migrationFS, migrationsDir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, "00001_create_quote_audit.sql", entries[0].Name())
}

func TestNilHandles(t *testing.T) {
	var pg *Postgres
	assert.False(t, pg.Enabled())
	assert.Nil(t, pg.PoolHandle())
	assert.Error(t, pg.Ping(context.Background()))

	var m *Mongo
	assert.Error(t, m.Ping(context.Background()))

	var r *Redis
	assert.Error(t, r.Ping(context.Background()))
}
