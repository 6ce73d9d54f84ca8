package commands

import (
	"context"
	"io"
	"os"

	"github.com/wolfeidau/gatehouse/internal/backend"
	"github.com/wolfeidau/gatehouse/internal/bootstrap"
	"github.com/wolfeidau/gatehouse/internal/config"
	"github.com/wolfeidau/gatehouse/internal/identity"
	"github.com/wolfeidau/gatehouse/internal/report"
)

type Globals struct {
	Debug    bool
	Version  string
	Settings *config.Settings

	// Out receives operator lines and tables. Defaults to stdout.
	Out io.Writer

	// Stores overrides the store flags; it is left open after the command.
	Stores *backend.Stores
}

// StoreFlags selects the database the commands write to. Every command runs in
// its own process, so only PostgreSQL keeps accounts between invocations.
type StoreFlags struct {
	Postgres backend.PostgresFlags `embed:"" prefix:"postgres-"`
}

func (g *Globals) out() io.Writer {
	if g.Out != nil {
		return g.Out
	}
	return os.Stdout
}

func (g *Globals) reporter() *report.Reporter {
	if g.Out != nil {
		return report.NoColor(g.Out)
	}
	return report.Stdout()
}

// openStores returns the injected stores or opens the PostgreSQL stores. The
// returned func releases what was opened here.
func (g *Globals) openStores(ctx context.Context, flags StoreFlags) (*backend.Stores, func(), error) {
	if g.Stores != nil {
		return g.Stores, func() {}, nil
	}

	stores, err := backend.Open(ctx, backend.StoreFlags{
		StoreType: backend.StoreTypePostgres,
		Postgres:  flags.Postgres,
	})
	if err != nil {
		return nil, nil, err
	}
	return stores, stores.Close, nil
}

func (g *Globals) newSeeder(stores *backend.Stores) (*bootstrap.Seeder, error) {
	return bootstrap.NewSeeder(bootstrap.Config{
		Creator:  identity.NewCreator(stores.Accounts, g.Settings.LoginField),
		Reporter: g.reporter(),
		Debug:    g.Settings.Debug,
	})
}
