package middlewarex

import (
	"log/slog"
	"net/http"

	"github.com/rs/xid"

	"nft_tracker/pkg/contextx"
	"nft_tracker/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const (
	headerNameTraceID = "X-Trace-Id"
	maxTraceIDLen     = 64
)

// TraceID takes the trace id from the X-Trace-Id header or generates one and
// echoes it back in the response. Oversized client ids are replaced.
func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(headerNameTraceID)
		if traceID == "" || len(traceID) > maxTraceIDLen {
			traceID = xid.New().String()
		}

		w.Header().Set(headerNameTraceID, traceID)

		next.ServeHTTP(w, r.WithContext(contextx.WithTraceID(r.Context(), contextx.TraceID(traceID))))
	})
}

// Logger stores a request scoped logger in the context. It must run after TraceID.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		attrs := []any{
			logx.Stringer(logx.FieldURL, r.URL),
			slog.String(logx.FieldHTTPMethod, r.Method),
			slog.String(logx.FieldIP, r.RemoteAddr),
		}

		if traceID, err := contextx.TraceIDFromContext(ctx); err == nil {
			attrs = append(attrs, logx.Stringer(logx.FieldTraceID, traceID))
		} else {
			logger(ctx).Warn("request without trace id", logx.Error(err))
		}

		ctx = contextx.WithLogger(ctx, logger(ctx).With(attrs...))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
