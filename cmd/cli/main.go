package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/gatehouse/cmd/cli/internal/commands"
	"github.com/wolfeidau/gatehouse/internal/config"
	"github.com/wolfeidau/gatehouse/internal/logger"
)

var (
	version = "dev"
	cli     struct {
		CreateAdmin commands.CreateAdminCmd `cmd:"" name:"create-admin" help:"Create the admin superuser from ADMIN_LOGIN, ADMIN_EMAIL and ADMIN_PASSWORD"`
		CreateUsers commands.CreateUsersCmd `cmd:"" name:"create-users" help:"Create users from a JSON or YAML file (development only)"`
		Users       commands.UsersCmd       `cmd:"" help:"Inspect accounts"`
		Groups      commands.GroupsCmd      `cmd:"" help:"Manage permission groups"`
		Migrate     commands.MigrateCmd     `cmd:"" help:"Apply database migrations"`
		Debug       bool                    `help:"Enable debug mode."`
		Version     kong.VersionFlag
	}
)

func main() {
	// .env must be loaded before kong resolves env tags
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := kong.Parse(&cli,
		kong.Name("gatehouse"),
		kong.Description("Account bootstrap and administration."),
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))

	log.Logger = logger.Setup(cli.Debug)

	settings, err := config.Load()
	cmd.FatalIfErrorf(err)

	err = cmd.Run(&commands.Globals{Debug: cli.Debug, Version: version, Settings: settings})
	cmd.FatalIfErrorf(err)
}
