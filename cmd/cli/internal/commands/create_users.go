package commands

import (
	"context"

	"github.com/wolfeidau/gatehouse/internal/bootstrap"
)

// CreateUsersCmd imports accounts from a JSON or YAML list. It only runs in development.
type CreateUsersCmd struct {
	File  string     `help:"batch file, .json or .yaml (defaults to USERS_JSON_PATH)" type:"path"`
	Store StoreFlags `embed:""`
}

func (c *CreateUsersCmd) Run(ctx context.Context, globals *Globals) error {
	path := c.File
	if path == "" {
		path = globals.Settings.UsersJSONPath
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

	if _, err := seeder.ImportUsers(ctx, path); bootstrap.IsFatal(err) {
		return err
	}

	return nil
}
