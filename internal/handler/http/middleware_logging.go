package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-doc-vault/internal/logger"
)

// withLogging writes one access-log record per request: method, URI, final
// status, response size and elapsed time. It wraps the response writer to
// observe what the inner handlers wrote; the record goes through the
// request-scoped logger so it carries the trace identifier.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		lw := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(lw, r)

		logger.FromRequest(r).Info().
			Str("uri", r.RequestURI).
			Str("method", r.Method).
			Int("status", lw.status).
			Dur("duration", time.Since(start)).
			Int("size", lw.size).
			Send()
	})
}
