package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/gatehouse/cmd/server/internal/commands"
	"github.com/wolfeidau/gatehouse/internal/config"
	"github.com/wolfeidau/gatehouse/internal/logger"
)

var (
	version = "dev"
	cli     struct {
		Debug   bool `help:"Enable debug mode."`
		Version kong.VersionFlag
		Serve   commands.ServeCmd `cmd:"" help:"Start the HTTP API server"`
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
		kong.Name("gatehouse-server"),
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
