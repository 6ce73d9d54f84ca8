package http

import (
	"net/http"
	"time"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/wolfeidau/gatehouse/internal/logger"
	"github.com/wolfeidau/gatehouse/internal/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Options configures the HTTP surface.
type Options struct {
	AllowedHosts []string
	CORSOrigins  []string
	Logger       zerolog.Logger
	Metrics      *telemetry.Metrics

	// Tracing wraps the handler with otelhttp.
	Tracing bool

	// Now defaults to time.Now.
	Now func() time.Time
}

// NewHandler builds the routed handler with its middleware chain. The order,
// outermost first, is tracing, request logging, client IP, allowed hosts and CORS.
func NewHandler(opts Options) http.Handler {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	mux := http.NewServeMux()
	mux.Handle("GET /api/v1/ping", PingHandler(opts.Now, opts.Metrics))

	var handler http.Handler = mux
	handler = withCORS(opts.CORSOrigins, handler)
	handler = AllowedHostsMiddleware(opts.AllowedHosts, opts.Metrics)(handler)
	handler = ClientIPMiddleware()(handler)
	handler = logger.Requests(opts.Logger)(handler)

	if opts.Tracing {
		handler = otelhttp.NewHandler(handler, "gatehouse",
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		)
	}

	return handler
}

func withCORS(allowedOrigins []string, h http.Handler) http.Handler {
	middleware := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization"},
		MaxAge:         300,
	})
	return middleware.Handler(h)
}
