package postgres

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func TestLoadMigrations_SortsByVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/10_add_index.sql":     {Data: []byte("CREATE INDEX x ON accounts (email);")},
		"migrations/2_groups.sql":         {Data: []byte("CREATE TABLE groups ();")},
		"migrations/1_initial_schema.sql": {Data: []byte("CREATE TABLE accounts ();")},
		"migrations/README.txt":           {Data: []byte("not sql")},
		"migrations/draft.sql":            {Data: []byte("ignored")},
		"migrations/next_add_columns.sql": {Data: []byte("ignored")},
	}

	migrations, err := loadMigrations(fsys)
	require.NoError(t, err)
	require.Len(t, migrations, 3)

	require.Equal(t, 1, migrations[0].version)
	require.Equal(t, "1_initial_schema.sql", migrations[0].name)
	require.Equal(t, "CREATE TABLE accounts ();", migrations[0].sql)
	require.Equal(t, 2, migrations[1].version)
	require.Equal(t, 10, migrations[2].version)
}

func TestLoadMigrations_Embedded(t *testing.T) {
	migrations, err := loadMigrations(migrationsFS)
	require.NoError(t, err)
	require.NotEmpty(t, migrations)
	require.Equal(t, 1, migrations[0].version)
	require.Contains(t, migrations[0].sql, "CREATE TABLE IF NOT EXISTS accounts")
}
