// internal/httpapi/middleware.go
package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"card-advisor/internal/common/logger"
	"card-advisor/internal/common/metrics"

	"github.com/google/uuid"
)

// statusRecorder captures the response code for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument wraps a handler with request-id assignment, access logging,
// and prometheus request metrics for one route.
func instrument(route string, log logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		w.Header().Set("X-Request-ID", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		metrics.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())

		log.Info("request handled", map[string]interface{}{
			"requestId": requestID,
			"route":     route,
			"method":    r.Method,
			"status":    rec.status,
			"elapsedMs": elapsed.Milliseconds(),
		})
	})
}
