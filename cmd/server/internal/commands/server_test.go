package commands

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wolfeidau/gatehouse/internal/config"
)

func TestConfigureHTTPServer(t *testing.T) {
	srv := configureHTTPServer("127.0.0.1:8000", http.NotFoundHandler())

	require.Equal(t, "127.0.0.1:8000", srv.Addr)
	require.Equal(t, 5*time.Second, srv.ReadHeaderTimeout)
	require.Equal(t, 8*1024, srv.MaxHeaderBytes)
}

func TestServeCmd_ShutsDownOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	cmd := &ServeCmd{
		Listen:          "127.0.0.1:0",
		CORSOrigins:     []string{"http://localhost:3000"},
		SampleRatio:     1,
		ShutdownTimeout: time.Second,
	}
	globals := &Globals{
		Version: "test",
		Settings: &config.Settings{
			Environment:  "development",
			Port:         8000,
			AllowedHosts: []string{"localhost"},
		},
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Run(ctx, globals)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
