package backend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wolfeidau/gatehouse/internal/store/memory"
)

func TestOpen_Memory(t *testing.T) {
	stores, err := Open(context.Background(), StoreFlags{StoreType: StoreTypeMemory})
	require.NoError(t, err)
	defer stores.Close()

	require.IsType(t, &memory.AccountStore{}, stores.Accounts)
	require.IsType(t, &memory.GroupStore{}, stores.Groups)
	require.Nil(t, stores.Pool())
}

func TestOpen_PostgresRequiresConnString(t *testing.T) {
	_, err := Open(context.Background(), StoreFlags{StoreType: StoreTypePostgres})
	require.ErrorContains(t, err, "connection string is required")
}

func TestOpen_Unsupported(t *testing.T) {
	_, err := Open(context.Background(), StoreFlags{StoreType: "dynamodb"})
	require.Error(t, err)
}

func TestPostgresFlags_PoolConfig(t *testing.T) {
	flags := PostgresFlags{ConnString: "postgres://localhost/gatehouse", MaxConns: 4, AutoMigrate: true}

	cfg := flags.PoolConfig()
	require.Equal(t, "postgres://localhost/gatehouse", cfg.ConnString)
	require.Equal(t, int32(4), cfg.MaxConns)
	require.True(t, cfg.AutoMigrate)
}
