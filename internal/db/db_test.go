package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_AppliesMigrations(t *testing.T) {
	d, err := Open("file:dbmigrate?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	v, err := Version(d)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	var n int
	require.NoError(t, d.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n))
	assert.Zero(t, n)
}

func TestOpen_IsIdempotent(t *testing.T) {
	dsn := "file:dbreopen?mode=memory&cache=shared"
	first, err := Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = first.Close() })

	_, err = first.Exec(`INSERT INTO users (first_name, last_name) VALUES ('John', 'Doe')`)
	require.NoError(t, err)

	// Reopening while the shared cache is alive must not reapply or wipe anything.
	second, err := Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	var n int
	require.NoError(t, second.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestRollbackLast(t *testing.T) {
	d, err := Open("file:dbrollback?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	require.NoError(t, RollbackLast(d))

	v, err := Version(d)
	require.NoError(t, err)
	assert.Equal(t, 0, v)

	_, err = d.Exec(`SELECT COUNT(*) FROM users`)
	assert.Error(t, err, "users table should be gone")

	// Nothing left to roll back.
	assert.NoError(t, RollbackLast(d))
}
