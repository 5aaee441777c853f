// internal/middleware/requestlog.go
//
// Zap request logger.  One INFO line per request with method, path,
// status, duration, and a UA summary when the requestinfo middleware
// ran upstream.
package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/scanberry/harbor/internal/requestinfo"
)

// statusRecorder captures the status code written by the handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// RequestLog wraps next with request logging.
func RequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		fields := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).String(),
		}
		if info := requestinfo.FromContext(r.Context()); info != nil {
			fields = append(fields, "browser", info.UA.Browser, "device", info.UA.Device)
		}
		zap.S().Infow("request", fields...)
	})
}
