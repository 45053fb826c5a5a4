package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/cityinfo-api/internal/api/shared"
	"github.com/phrazzld/cityinfo-api/internal/platform/logger"
)

// NewTraceMiddleware puts a trace ID and a logger carrying it into the
// request context and echoes the ID in the X-Trace-ID response header.
// A well-formed X-Trace-ID from the client is reused; anything else is
// replaced with a fresh ID.
func NewTraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID, ok := shared.NormalizeTraceID(r.Header.Get(shared.TraceIDHeader))
			if !ok {
				traceID = shared.NewTraceID()
			}

			log := base.With(slog.String("trace_id", traceID))
			ctx := logger.WithLogger(shared.WithTraceID(r.Context(), traceID), log)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			w.Header().Set(shared.TraceIDHeader, traceID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
