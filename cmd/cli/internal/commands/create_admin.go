package commands

import (
	"context"

	"github.com/wolfeidau/gatehouse/internal/bootstrap"
	"github.com/wolfeidau/gatehouse/internal/config"
)

// CreateAdminCmd seeds the privileged account from ADMIN_LOGIN, ADMIN_EMAIL and ADMIN_PASSWORD.
type CreateAdminCmd struct {
	Store StoreFlags `embed:""`
}

func (c *CreateAdminCmd) Run(ctx context.Context, globals *Globals) error {
	creds, err := config.LoadAdminCredentials()
	if err != nil {
		return err
	}

	stores, release, err := globals.openStores(ctx, c.Store)
	if err != nil {
		return err
	}
	defer release()

	seeder, err := globals.newSeeder(stores)
	if err != nil {
		return err
	}

	if _, err := seeder.SeedAdmin(ctx, creds); bootstrap.IsFatal(err) {
		return err
	}

	return nil
}
