package commands

import (
	"context"
	"fmt"

	"github.com/wolfeidau/gatehouse/internal/backend"
	"github.com/wolfeidau/gatehouse/internal/store/postgres"
)

// MigrateCmd applies the embedded schema migrations to PostgreSQL.
type MigrateCmd struct {
	Postgres backend.PostgresFlags `embed:"" prefix:"postgres-"`
}

func (c *MigrateCmd) Run(ctx context.Context, globals *Globals) error {
	if err := c.Postgres.Validate(); err != nil {
		return err
	}

	cfg := c.Postgres.PoolConfig()
	cfg.AutoMigrate = false

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	globals.reporter().Successf("Database migrations applied")
	return nil
}
