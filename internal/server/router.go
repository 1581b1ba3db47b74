package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/telhawk-systems/ocsf-mcp/internal/handlers"
	"github.com/telhawk-systems/ocsf-mcp/internal/logging"
	"github.com/telhawk-systems/ocsf-mcp/internal/middleware"
	"github.com/telhawk-systems/ocsf-mcp/internal/ratelimit"
)

// Options carries the optional parts of the middleware stack. A nil Verifier
// disables bearer-token checks; a nil RateLimiter disables throttling.
type Options struct {
	Logger      *logging.Logger
	RateLimiter ratelimit.RateLimiter
	Verifier    *middleware.TokenVerifier
	CORSOrigins []string
}

// NewRouter constructs the HTTP API. Health and metrics stay outside the
// rate limit and auth checks applied to /tools.
func NewRouter(h *handlers.ToolHandler, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}
	limiter := opts.RateLimiter
	if limiter == nil {
		limiter = &ratelimit.NoOpRateLimiter{}
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger.Logger))
	r.Use(chimw.Recoverer)
	if len(opts.CORSOrigins) > 0 {
		r.Use(middleware.CORS(middleware.DefaultCORSConfig(opts.CORSOrigins)))
	}

	r.Get("/healthz", h.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/tools", func(r chi.Router) {
		r.Use(middleware.RateLimit(limiter, logger.Logger))
		if opts.Verifier != nil {
			r.Use(middleware.BearerAuth(opts.Verifier, logger.Logger))
		}
		r.Get("/", h.ListTools)
		r.Post("/{name}", h.CallTool)
	})

	return r
}
