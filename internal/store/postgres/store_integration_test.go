//go:build integration

package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/wolfeidau/gatehouse/internal/models"
	"github.com/wolfeidau/gatehouse/internal/store"
)

func setupPostgresContainer(t *testing.T, ctx context.Context) (*pgxpool.Pool, func()) {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connString := fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, port.Port())

	pool, err := NewPool(ctx, &PoolConfig{ConnString: connString, AutoMigrate: true})
	require.NoError(t, err)

	cleanup := func() {
		pool.Close()
		_ = container.Terminate(ctx)
	}

	return pool, cleanup
}

func TestIntegration_Stores(t *testing.T) {
	ctx := context.Background()
	pool, cleanup := setupPostgresContainer(t, ctx)
	defer cleanup()

	accounts := NewAccountStore(pool)
	groups := NewGroupStore(pool)

	admin := &models.Account{
		ID:           uuid.Must(uuid.NewV7()),
		Email:        models.StringPtr("admin@example.com"),
		PasswordHash: "hash",
		IsActive:     true,
		IsStaff:      true,
		IsSuperuser:  true,
	}

	t.Run("migrations are idempotent", func(t *testing.T) {
		require.NoError(t, RunMigrations(ctx, pool))
	})

	t.Run("create and read account", func(t *testing.T) {
		require.NoError(t, accounts.Create(ctx, admin))

		got, err := accounts.GetByLogin(ctx, models.LoginFieldEmail, "admin@example.com")
		require.NoError(t, err)
		require.Equal(t, admin.ID, got.ID)
		require.Nil(t, got.Phone)
		require.True(t, got.IsSuperuser)

		exists, err := accounts.Exists(ctx, models.LoginFieldEmail, "admin@example.com")
		require.NoError(t, err)
		require.True(t, exists)
	})

	t.Run("duplicate email maps to conflict", func(t *testing.T) {
		dup := &models.Account{
			ID:           uuid.Must(uuid.NewV7()),
			Email:        models.StringPtr("admin@example.com"),
			PasswordHash: "hash",
		}

		err := accounts.Create(ctx, dup)

		var conflict *store.ConflictError
		require.True(t, errors.As(err, &conflict))
		require.Equal(t, "email", conflict.Field)
	})

	t.Run("superuser without staff is rejected", func(t *testing.T) {
		bad := &models.Account{
			ID:           uuid.Must(uuid.NewV7()),
			Email:        models.StringPtr("bad@example.com"),
			PasswordHash: "hash",
			IsSuperuser:  true,
		}
		require.Error(t, accounts.Create(ctx, bad))
	})

	t.Run("get missing account", func(t *testing.T) {
		_, err := accounts.Get(ctx, uuid.Must(uuid.NewV7()))
		require.Equal(t, store.ErrAccountNotFound, err)
	})

	t.Run("list with search", func(t *testing.T) {
		list, err := accounts.List(ctx, store.ListAccountsOptions{Search: "ADMIN", StaffOnly: true, Limit: 10})
		require.NoError(t, err)
		require.Len(t, list, 1)
	})

	t.Run("group lifecycle", func(t *testing.T) {
		group := &models.Group{ID: uuid.Must(uuid.NewV7()), Name: "editors"}
		require.NoError(t, groups.Create(ctx, group))
		require.Equal(t, store.ErrGroupAlreadyExists,
			groups.Create(ctx, &models.Group{ID: uuid.Must(uuid.NewV7()), Name: "editors"}))

		require.NoError(t, groups.AddMember(ctx, group.ID, admin.ID))
		require.NoError(t, groups.AddMember(ctx, group.ID, admin.ID))
		require.Equal(t, store.ErrAccountNotFound, groups.AddMember(ctx, group.ID, uuid.Must(uuid.NewV7())))

		members, err := groups.Members(ctx, group.ID)
		require.NoError(t, err)
		require.Equal(t, []uuid.UUID{admin.ID}, members)

		require.NoError(t, groups.Delete(ctx, group.ID))
		_, err = groups.Members(ctx, group.ID)
		require.Equal(t, store.ErrGroupNotFound, err)
	})
}
