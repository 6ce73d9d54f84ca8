package commands

import (
	"net/http"
	"time"

	"github.com/wolfeidau/gatehouse/internal/config"
)

type Globals struct {
	Debug    bool
	Version  string
	Settings *config.Settings
}

func configureHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
		MaxHeaderBytes:    8 * 1024, // 8KiB
	}
}
