// internal/httpapi/server.go
package httpapi

import (
	"net/http"

	"card-advisor/internal/common/config"
	"card-advisor/internal/common/logger"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewServeMux assembles the service routes with their middleware chain.
// limiter may be nil when rate limiting is disabled.
func NewServeMux(handler *Handler, limiter *RateLimiter, log logger.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("/v1/parse-input", withLimiter(limiter,
		instrument("parse-input", log, http.HandlerFunc(handler.ParseInput))))
	mux.Handle("/v1/recommend", withLimiter(limiter,
		instrument("recommend", log, http.HandlerFunc(handler.Recommend))))

	mux.Handle("/healthz", http.HandlerFunc(handler.Healthz))
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

// NewHTTPServer builds the http.Server with the configured timeouts.
func NewHTTPServer(cfg config.ServerConfig, mux *http.ServeMux) *http.Server {
	return &http.Server{
		Addr:         cfg.Address,
		Handler:      mux,
		ReadTimeout:  config.GetDuration(cfg.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.WriteTimeout),
		IdleTimeout:  config.GetDuration(cfg.IdleTimeout),
	}
}

func withLimiter(limiter *RateLimiter, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}
	return RateLimitMiddleware(limiter, next)
}
