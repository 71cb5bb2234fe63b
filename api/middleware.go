package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/CreativeUnicorns/receiptprefs"
)

// LoggerMiddleware logs one line per request. Server errors are logged at
// Warn, everything else at Info.
func LoggerMiddleware(logger receiptprefs.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				args := []any{
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"latency_ms", float64(time.Since(start).Microseconds()) / 1000.0,
					"request_id", middleware.GetReqID(r.Context()),
				}
				if ww.Status() >= http.StatusInternalServerError {
					logger.Warn("Served request", args...)
					return
				}
				logger.Info("Served request", args...)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
