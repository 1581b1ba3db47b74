package middleware

import (
	"log/slog"
	"net"
	"net/http"

	"github.com/telhawk-systems/ocsf-mcp/internal/httputil"
	"github.com/telhawk-systems/ocsf-mcp/internal/ratelimit"
)

// RateLimit throttles requests per client IP. Limiter failures are logged and the
// request is let through.
func RateLimit(limiter ratelimit.RateLimiter, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r)
			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				logger.ErrorContext(r.Context(), "rate limiter unavailable",
					slog.String("error", err.Error()),
					slog.String("ip", key))
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				w.Header().Set("Retry-After", "1")
				httputil.WriteError(w, http.StatusTooManyRequests, "rate_limited", "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
