// Package backend opens the account and group stores selected on the command line.
package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/gatehouse/internal/store"
	"github.com/wolfeidau/gatehouse/internal/store/memory"
	"github.com/wolfeidau/gatehouse/internal/store/postgres"
)

const (
	StoreTypeMemory   = "memory"
	StoreTypePostgres = "postgres"
)

// StoreFlags selects the store implementation. The memory stores live only as
// long as the process that opened them.
type StoreFlags struct {
	StoreType string        `help:"store type (memory or postgres)" default:"postgres" env:"GATEHOUSE_STORE_TYPE" enum:"memory,postgres"`
	Postgres  PostgresFlags `embed:"" prefix:"postgres-"`
}

// PostgresFlags configure the shared connection pool.
type PostgresFlags struct {
	ConnString string `help:"PostgreSQL connection string" env:"POSTGRES_CONNECTION_STRING"`

	MaxConns        int32 `help:"maximum number of connections in pool" default:"10"`
	MinConns        int32 `help:"minimum number of connections in pool" default:"1"`
	MaxConnLifetime int32 `help:"maximum connection lifetime in seconds" default:"3600"`
	MaxConnIdleTime int32 `help:"maximum connection idle time in seconds" default:"1800"`
	StartupTimeout  int32 `help:"seconds to wait for the database to accept connections" default:"30" env:"GATEHOUSE_POSTGRES_STARTUP_TIMEOUT"`

	AutoMigrate bool `help:"run database migrations on startup" default:"false" env:"GATEHOUSE_POSTGRES_AUTO_MIGRATE"`
}

func (f *PostgresFlags) Validate() error {
	if f.ConnString == "" {
		return errors.New("PostgreSQL connection string is required (--postgres-conn-string or POSTGRES_CONNECTION_STRING)")
	}
	return nil
}

// PoolConfig converts the flags into a pool configuration.
func (f *PostgresFlags) PoolConfig() *postgres.PoolConfig {
	return &postgres.PoolConfig{
		ConnString:      f.ConnString,
		MaxConns:        f.MaxConns,
		MinConns:        f.MinConns,
		MaxConnLifetime: f.MaxConnLifetime,
		MaxConnIdleTime: f.MaxConnIdleTime,
		StartupTimeout:  f.StartupTimeout,
		AutoMigrate:     f.AutoMigrate,
	}
}

// Stores bundles the stores of one process. Close releases the pool, if any.
type Stores struct {
	Accounts store.AccountStore
	Groups   store.GroupStore

	pool *pgxpool.Pool
}

// Pool returns the PostgreSQL pool, or nil for the memory backend.
func (s *Stores) Pool() *pgxpool.Pool {
	return s.pool
}

func (s *Stores) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Open creates the stores selected by flags.
func Open(ctx context.Context, flags StoreFlags) (*Stores, error) {
	switch flags.StoreType {
	case StoreTypePostgres:
		if err := flags.Postgres.Validate(); err != nil {
			return nil, err
		}

		pool, err := postgres.NewPool(ctx, flags.Postgres.PoolConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to create connection pool: %w", err)
		}

		log.Info().Bool("auto_migrate", flags.Postgres.AutoMigrate).Msg("Using PostgreSQL stores with shared connection pool")

		return &Stores{
			Accounts: postgres.NewAccountStore(pool),
			Groups:   postgres.NewGroupStore(pool),
			pool:     pool,
		}, nil

	case StoreTypeMemory, "":
		accounts := memory.NewAccountStore()

		log.Info().Msg("Using in-memory stores")

		return &Stores{
			Accounts: accounts,
			Groups:   memory.NewGroupStore(accounts),
		}, nil

	default:
		return nil, fmt.Errorf("unsupported store type %q", flags.StoreType)
	}
}
