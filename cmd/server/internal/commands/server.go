package commands

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	httpapi "github.com/wolfeidau/gatehouse/internal/http"
	"github.com/wolfeidau/gatehouse/internal/logger"
	"github.com/wolfeidau/gatehouse/internal/telemetry"
)

type ServeCmd struct {
	Listen string `help:"HTTP server listen address (defaults to 0.0.0.0 on DOCKER_PORT)" env:"GATEHOUSE_LISTEN"`

	CORSOrigins []string `help:"allowed CORS origins for API requests" default:"http://localhost:3000" env:"GATEHOUSE_CORS_ORIGINS"`

	Tracing     bool    `help:"enable OpenTelemetry tracing and metrics export" default:"false" env:"GATEHOUSE_TRACING"`
	SampleRatio float64 `help:"fraction of root traces to sample" default:"1.0" env:"GATEHOUSE_TRACE_SAMPLE_RATIO"`

	ShutdownTimeout time.Duration `help:"graceful shutdown timeout" default:"10s" env:"GATEHOUSE_SHUTDOWN_TIMEOUT"`
}

func (c *ServeCmd) Run(ctx context.Context, globals *Globals) error {
	log := logger.Setup(globals.Debug || globals.Settings.Debug)

	log.Info().
		Str("version", globals.Version).
		Str("environment", globals.Settings.Environment).
		Bool("debug", globals.Settings.Debug).
		Msg("Starting server")

	if c.Tracing {
		log.Info().Msg("Tracing is enabled")
		shutdown, err := telemetry.InitTelemetry(ctx, telemetry.Config{
			ServiceName: "gatehouse-server",
			Version:     globals.Version,
			SampleRatio: c.SampleRatio,
		})
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize telemetry, continuing without it")
			shutdown = func(ctx context.Context) error { return nil }
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("Failed to shutdown telemetry")
			}
		}()
	}

	handler := httpapi.NewHandler(httpapi.Options{
		AllowedHosts: globals.Settings.AllowedHosts,
		CORSOrigins:  c.CORSOrigins,
		Logger:       log,
		Metrics:      telemetry.GetMetrics(),
		Tracing:      c.Tracing,
	})

	addr := c.Listen
	if addr == "" {
		addr = net.JoinHostPort("0.0.0.0", strconv.Itoa(globals.Settings.Port))
	}

	srv := configureHTTPServer(addr, handler)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Strs("allowed_hosts", globals.Settings.AllowedHosts).Msg("Starting HTTP server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), c.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown http server: %w", err)
	}

	return nil
}
